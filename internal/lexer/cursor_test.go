package lexer

import (
	"testing"

	"hush/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatalf("expected EOF")
	}
	if cursor.Bump() != 0 || cursor.Peek() != 0 {
		t.Fatalf("reading past EOF must return 0")
	}
}

func TestCursorMarkResetMatch(t *testing.T) {
	cursor := NewCursor(createFile(">>>= x"))
	m := cursor.Mark()
	if !cursor.Match(">>>=") {
		t.Fatalf("Match failed")
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 4 {
		t.Fatalf("span = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Match(">>>>") {
		t.Fatalf("Match must not consume on mismatch")
	}
	if cursor.Off != 0 {
		t.Fatalf("Off moved to %d", cursor.Off)
	}
	if cursor.PeekAt(5) != 'x' || cursor.PeekAt(6) != 0 {
		t.Fatalf("PeekAt out of expectations")
	}
	cursor.Advance(100)
	if !cursor.EOF() {
		t.Fatalf("Advance must clamp to Limit")
	}
}
