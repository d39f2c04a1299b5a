package token

import (
	"strings"

	"hush/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string, template, regexp or keyword literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, BigIntLit, StringLit, NoSubstTemplate, TemplateHead, RegExpLit,
		KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwBreak && t.Kind <= KwNull
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is an identifier or a reserved word.
// Property names after '.' and in object literals accept both.
func (t Token) IsWord() bool { return t.IsIdent() || t.IsKeyword() }

// NewlineBefore reports whether a line terminator separates the token from
// the previous one. Automatic semicolon insertion depends on it.
func (t Token) NewlineBefore() bool {
	for _, tv := range t.Leading {
		switch tv.Kind {
		case TriviaNewline:
			return true
		case TriviaBlockComment:
			if strings.ContainsAny(tv.Text, "\n\r\u2028\u2029") {
				return true
			}
		}
	}
	return false
}
