package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hush/internal/diag"
	"hush/internal/source"
)

// styles holds the colour formatters of the pretty renderer.
type styles struct {
	errorSev *color.Color
	warnSev  *color.Color
	infoSev  *color.Color
	message  *color.Color
	gutter   *color.Color
	caret    *color.Color
	note     *color.Color
}

// newStyles builds formatters; enabled overrides terminal detection both ways.
func newStyles(enabled bool) *styles {
	s := &styles{
		errorSev: color.New(color.Bold, color.FgHiRed),
		warnSev:  color.New(color.Bold, color.FgHiYellow),
		infoSev:  color.New(color.Bold, color.FgHiCyan),
		message:  color.New(color.Bold),
		gutter:   color.New(color.FgHiBlue),
		caret:    color.New(color.Bold, color.FgHiRed),
		note:     color.New(color.Bold, color.FgHiGreen),
	}
	for _, c := range []*color.Color{s.errorSev, s.warnSev, s.infoSev, s.message, s.gutter, s.caret, s.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *styles) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return s.errorSev
	case diag.SevWarning:
		return s.warnSev
	default:
		return s.infoSev
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	error[SYN2001]: message
//	 --> path:line:col
//	  |
//	1 | if (
//	  |     ^
//	  = note: path:line:col: text
//
// Диагностики без span печатаются одной строкой заголовка.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	st := newStyles(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, st, d, fs, opts)
	}
}

func prettyOne(w io.Writer, st *styles, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := st.severity(d.Severity)
	fmt.Fprintf(w, "%s%s\n",
		sev.Sprintf("%s[%s]", d.Severity.Label(), d.Code.ID()),
		st.message.Sprint(": "+diag.SanitizeMessage(d.Message)))

	f := fileOf(fs, d.Primary)
	gutterWidth := 0
	if f != nil {
		start := f.LineCol(d.Primary.Start)
		last := min(lastLine(f), start.Line+uint32(max(opts.Context, 0)))
		gutterWidth = len(strconv.FormatUint(uint64(last), 10))
		pad := strings.Repeat(" ", gutterWidth)

		fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, st.gutter.Sprint("-->"),
			f.FormatPath(opts.PathMode.mode(), fs.BaseDir()), start.Line, start.Col)
		fmt.Fprintf(w, "%s %s\n", pad, st.gutter.Sprint("|"))
		writeSnippet(w, st, f, d.Primary, opts, gutterWidth)
	}

	if !opts.ShowNotes {
		return
	}
	pad := strings.Repeat(" ", gutterWidth)
	for _, n := range d.Notes {
		text := diag.SanitizeMessage(n.Msg)
		if nf := fileOf(fs, n.Span); nf != nil {
			pos := nf.LineCol(n.Span.Start)
			text = fmt.Sprintf("%s:%d:%d: %s", nf.FormatPath(opts.PathMode.mode(), fs.BaseDir()), pos.Line, pos.Col, text)
		}
		fmt.Fprintf(w, "%s %s %s %s\n", pad, st.gutter.Sprint("="), st.note.Sprint("note:"), text)
	}
}

// writeSnippet печатает строки контекста и подчёркивание под первой строкой span.
func writeSnippet(w io.Writer, st *styles, f *source.File, sp source.Span, opts PrettyOpts, gutterWidth int) {
	start := f.LineCol(sp.Start)
	end := f.LineCol(sp.End)
	ctx := uint32(max(opts.Context, 0))

	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(lastLine(f), start.Line+ctx)

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", st.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}

		line := f.GetLine(ln)
		col := min(int(start.Col)-1, len(line))
		stop := len(line)
		if end.Line == start.Line {
			stop = min(int(end.Col)-1, len(line))
		}
		width := 1
		if stop > col {
			width = max(runewidth.StringWidth(line[col:stop]), 1)
		}
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", st.gutter.Sprintf("%*s |", gutterWidth, ""),
			caretPadding(line[:col]), st.caret.Sprint(marks))
	}
}

// caretPadding повторяет ширину префикса строки, сохраняя табы.
func caretPadding(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || sp.File == source.NoFileID {
		return nil
	}
	return fs.Get(sp.File)
}

func lastLine(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		return ^uint32(0)
	}
	return n
}
