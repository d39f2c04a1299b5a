package lexer

import (
	"hush/internal/source"
	"hush/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
	lx.scanHashbang()
	return lx
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF. A '/' is always returned as Slash or
// SlashAssign; the parser calls RescanRegExp where a regular expression may start.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
		tok.Leading = lx.takeHold()
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// возможный Unicode идентификатор; иначе сообщим о неизвестном символе
		tok = lx.scanIdentOrKeyword()

	case ch == '#':
		tok = lx.scanPrivateName()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		tok = lx.scanTemplate(lx.cursor.Mark(), true)

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// RescanRegExp re-reads a Slash or SlashAssign token as a regular
// expression literal. Any peeked token is discarded.
func (lx *Lexer) RescanRegExp(tok token.Token) token.Token {
	lx.look = nil
	lx.cursor.Reset(Mark(tok.Span.Start))
	re := lx.scanRegExp()
	re.Leading = tok.Leading
	return re
}

// RescanTemplateContinuation re-reads an RBrace token that closes a
// template substitution as TemplateMiddle or TemplateTail.
func (lx *Lexer) RescanTemplateContinuation(tok token.Token) token.Token {
	lx.look = nil
	start := Mark(tok.Span.Start)
	lx.cursor.Reset(start)
	lx.cursor.Bump() // '}'
	cont := lx.scanTemplate(start, false)
	cont.Leading = tok.Leading
	return cont
}

// File returns the unit being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := lx.hold
	lx.hold = nil
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, m Mark) token.Token {
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
