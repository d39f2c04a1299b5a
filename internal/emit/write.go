package emit

import (
	"unicode/utf8"

	"hush/internal/source"
)

// Writer accumulates emitted code and tracks the generated line and column
// so that source-map segments can be recorded while printing.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool

	// позиция в сгенерированном тексте, 0-based; колонка в UTF-16 единицах
	line int
	col  int

	smap *mapBuilder
}

// NewWriter creates a writer; smap may be nil when no map is requested.
func NewWriter(opt Options, sizeHint int, smap *mapBuilder) *Writer {
	return &Writer{
		opt:  opt.withDefaults(),
		buf:  make([]byte, 0, sizeHint),
		smap: smap,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
		w.col += w.indentLevel
	} else {
		spaceCount := w.indentLevel * w.opt.IndentWidth
		for range spaceCount {
			w.buf = append(w.buf, ' ')
		}
		w.col += spaceCount
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first if a new line has just started.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.advance(s)
}

// WriteByte writes a single ASCII byte.
func (w *Writer) WriteByte(b byte) error {
	w.writeIndent()
	w.buf = append(w.buf, b)
	if b == '\n' {
		w.line++
		w.col = 0
		w.atLineStart = true
		return nil
	}
	w.col++
	w.atLineStart = false
	return nil
}

// advance moves the generated position past s. Literals may span lines
// (template quasis) and hold non-ASCII text.
func (w *Writer) advance(s string) {
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c == '\n' {
				w.line++
				w.col = 0
			} else {
				w.col++
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		w.col += utf16Len(r)
		i += size
	}
	w.atLineStart = s[len(s)-1] == '\n'
}

// Space writes a single space unless the output already ends with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	_ = w.WriteByte(' ')
}

// Newline writes a newline unless the output already ends with one.
func (w *Writer) Newline() {
	if len(w.buf) == 0 {
		return
	}
	if w.buf[len(w.buf)-1] != '\n' {
		_ = w.WriteByte('\n')
	}
	w.atLineStart = true
}

func (w *Writer) IndentPush() {
	w.indentLevel++
}

func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Mark records that the next byte written originates at sp.Start.
func (w *Writer) Mark(sp source.Span) {
	if w.smap == nil || sp.IsZero() {
		return
	}
	w.writeIndent()
	w.smap.add(w.line, w.col, sp)
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
