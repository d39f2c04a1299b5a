package diagfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"hush/internal/diag"
	"hush/internal/source"
)

func newBag(diags ...*diag.Diagnostic) *diag.Bag {
	bag := diag.NewBag(0)
	for _, d := range diags {
		bag.Add(d)
	}
	return bag
}

func prettyString(bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	var sb strings.Builder
	Pretty(&sb, bag, fs, opts)
	return sb.String()
}

func TestPrettyUnexpectedEnd(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte("if (\n"))
	bag := newBag(diag.NewError(diag.SynExpectExpression, source.Span{File: id, Start: 4, End: 4}, "expected expression"))

	want := "error[SYN2002]: expected expression\n" +
		" --> test.js:1:5\n" +
		"  |\n" +
		"1 | if (\n" +
		"  |     ^\n"
	assert.Equal(t, want, prettyString(bag, fs, PrettyOpts{}))
}

func TestPrettyContextAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("ctx.js", []byte("a;\nb(;\nc;"))
	d := diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 5, End: 6}, "unexpected ';'").
		WithNote(source.Span{File: id, Start: 3, End: 4}, "call starts here")

	want := "error[SYN2001]: unexpected ';'\n" +
		" --> ctx.js:2:3\n" +
		"  |\n" +
		"1 | a;\n" +
		"2 | b(;\n" +
		"  |   ^\n" +
		"3 | c;\n" +
		"  = note: ctx.js:2:1: call starts here\n"
	assert.Equal(t, want, prettyString(newBag(d), fs, PrettyOpts{Context: 1, ShowNotes: true}))

	hidden := prettyString(newBag(d), fs, PrettyOpts{})
	assert.NotContains(t, hidden, "note:")
}

func TestPrettyCaretWidth(t *testing.T) {
	fs := source.NewFileSet()
	wide := fs.AddVirtual("wide.js", []byte("x = '日本';"))
	tab := fs.AddVirtual("tab.js", []byte("\tfoo("))

	out := prettyString(newBag(
		diag.NewError(diag.LexUnknownChar, source.Span{File: wide, Start: 4, End: 12}, "wide"),
		diag.NewError(diag.SynUnclosedParen, source.Span{File: tab, Start: 4, End: 5}, "tab"),
	), fs, PrettyOpts{})

	assert.Contains(t, out, "1 | x = '日本';\n  |     ^~~~~~\n")
	assert.Contains(t, out, "1 | \tfoo(\n  | \t   ^\n")
	assert.Contains(t, out, "^~~~~~\n\nerror[SYN2005]: tab\n")
}

func TestPrettySpanlessDiagnostic(t *testing.T) {
	d := diag.NewError(diag.EmitInvalidNode, source.Span{}, "dangling expression id 7").
		WithNote(source.Span{}, "tree was modified")
	out := prettyString(newBag(d), source.NewFileSet(), PrettyOpts{ShowNotes: true})
	assert.Equal(t, "error[EMT4001]: dangling expression id 7\n = note: tree was modified\n", out)
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.js", []byte("x"))
	bag := newBag(diag.New(diag.SevWarning, diag.RewriteSkipped, source.Span{File: id, Start: 0, End: 1}, "skipped"))

	assert.Contains(t, prettyString(bag, fs, PrettyOpts{Color: true}), "\x1b[")
	assert.NotContains(t, prettyString(bag, fs, PrettyOpts{Color: false}), "\x1b[")
	assert.True(t, strings.HasPrefix(prettyString(bag, fs, PrettyOpts{}), "warning[RWR3002]: skipped"))
}

func TestPrettyTruncatesWideLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("long.js", []byte("abcdefghijklmnop"))
	bag := newBag(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "x"))
	assert.Contains(t, prettyString(bag, fs, PrettyOpts{Width: 5}), "1 | abcd…\n")
}
