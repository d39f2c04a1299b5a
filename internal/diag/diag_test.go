package diag

import (
	"testing"

	"hush/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(New(SevInfo, RewriteApplied, source.Span{}, "info")) {
		t.Fatalf("first Add must succeed")
	}
	if bag.HasErrors() {
		t.Fatalf("info must not count as error")
	}
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 1}, "boom"))
	if bag.Add(NewError(SynUnexpectedToken, source.Span{File: 1}, "dropped")) {
		t.Fatalf("Add past the limit must fail")
	}
	if !bag.Full() || bag.ErrorCount() != 1 {
		t.Fatalf("Full=%v ErrorCount=%d", bag.Full(), bag.ErrorCount())
	}

	unlimited := NewBag(0)
	for range 100 {
		unlimited.Add(NewError(SynUnexpectedToken, source.Span{}, "x"))
	}
	if unlimited.Len() != 100 {
		t.Fatalf("unlimited bag kept %d items", unlimited.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SynExpectExpression, source.Span{File: 1, Start: 9, End: 10}, "late"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 2, End: 3}, "early"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 2, End: 3}, "early again"))
	bag.Sort()
	bag.Dedup()

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(items))
	}
	if items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("unexpected order: %q, %q", items[0].Message, items[1].Message)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SynExpectSemicolon, source.Span{File: 1}, "expected ';'").
		WithNote(source.Span{File: 1, Start: 4, End: 5}, "statement starts here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit must be idempotent, bag has %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("note lost")
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		RewriteApplied:     "RWR3001",
		EmitInvalidNode:    "EMT4001",
		BoundarySerialize:  "BND5001",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown codes must fall back to the generic title")
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("src/app.js", []byte("a\nb\n"))
	anon := fs.AddVirtual("", []byte("x"))

	diags := []*Diagnostic{
		NewError(SynUnexpectedToken, source.Span{File: file, Start: 2, End: 3}, "second\nline").
			WithNote(source.Span{File: file, Start: 0, End: 1}, "opened here"),
		NewError(EmitInvalidNode, source.Span{}, "no location"),
		NewError(SynExpectExpression, source.Span{File: anon, Start: 1, End: 1}, "anon"),
	}

	want := "error EMT4001 no location\n" +
		"error SYN2002 <anon>:1:2 anon\n" +
		"note SYN2001 src/app.js:1:1 opened here\n" +
		"error SYN2001 src/app.js:2:1 second line"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}
