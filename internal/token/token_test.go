package token_test

import (
	"testing"

	"hush/internal/source"
	"hush/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsKeywordRange(t *testing.T) {
	for _, k := range []token.Kind{token.KwBreak, token.KwVoid, token.KwTypeof, token.KwNull} {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.NumberLit, token.Plus, token.EOF} {
		if tok(k).IsKeyword() {
			t.Fatalf("%v must NOT be keyword", k)
		}
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.NumberLit, token.StringLit, token.RegExpLit, token.KwNull, token.KwTrue} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	if tok(token.Ident).IsLiteral() {
		t.Fatalf("Ident must NOT be literal")
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"void":     token.KwVoid,
		"function": token.KwFunction,
		"null":     token.KwNull,
		"typeof":   token.KwTypeof,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}
	// контекстные слова остаются идентификаторами
	for _, word := range []string{"let", "async", "await", "of", "console", "Void"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("LookupKeyword(%q) must not match", word)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := token.QuestionDot.String(); got != "?." {
		t.Errorf("QuestionDot.String() = %q", got)
	}
	if got := token.KwVoid.String(); got != "void" {
		t.Errorf("KwVoid.String() = %q", got)
	}
	if got := token.Kind(250).String(); got != "Kind(250)" {
		t.Errorf("out of range String() = %q", got)
	}
}

func TestNewlineBefore(t *testing.T) {
	plain := token.Token{Kind: token.Ident, Leading: []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}}
	if plain.NewlineBefore() {
		t.Errorf("space trivia must not count as newline")
	}
	nl := token.Token{Kind: token.Ident, Leading: []token.Trivia{{Kind: token.TriviaNewline, Text: "\n"}}}
	if !nl.NewlineBefore() {
		t.Errorf("newline trivia not detected")
	}
	block := token.Token{Kind: token.Ident, Leading: []token.Trivia{{Kind: token.TriviaBlockComment, Text: "/* a\n b */"}}}
	if !block.NewlineBefore() {
		t.Errorf("multi-line block comment must count as newline")
	}
}
