package lexer

import (
	"hush/internal/diag"
	"hush/internal/token"
)

// scanIdentOrKeyword сканирует IdentifierName и проверяет через LookupKeyword.
// Token.Text: ровно исходный срез, escape-последовательности не раскрываются.
// Идентификатор с escape-последовательностью никогда не считается ключевым словом.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	escaped := false
	first := true

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			if !lx.scanIdentEscape() {
				return lx.invalidFrom(start, diag.LexBadEscape, "invalid escape in identifier")
			}
			escaped = true
		case b < utf8RuneSelf:
			if !isIdentContinueByte(b) || (first && isDec(b)) {
				goto done
			}
			lx.cursor.Bump()
		default:
			r, _ := lx.peekRune()
			if (first && !isIdentStartRune(r)) || (!first && !isIdentContinueRune(r)) {
				goto done
			}
			lx.bumpRune()
		}
		first = false
	}

done:
	if first {
		// ни одного символа идентификатора: неизвестный символ
		lx.bumpRune()
		return lx.invalidFrom(start, diag.LexUnknownChar, "unknown character")
	}
	tok := lx.emit(token.Ident, start)
	if !escaped {
		if k, ok := token.LookupKeyword(tok.Text); ok {
			tok.Kind = k
		}
	}
	return tok
}

// scanIdentEscape consumes \uXXXX or \u{X...}.
func (lx *Lexer) scanIdentEscape() bool {
	if lx.cursor.PeekAt(1) != 'u' {
		return false
	}
	lx.cursor.Advance(2)
	return lx.scanUnicodeEscapeBody()
}

// scanUnicodeEscapeBody consumes the part after "\u".
func (lx *Lexer) scanUnicodeEscapeBody() bool {
	if lx.cursor.Eat('{') {
		digits := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		return digits > 0 && lx.cursor.Eat('}')
	}
	for range 4 {
		if !isHex(lx.cursor.Peek()) {
			return false
		}
		lx.cursor.Bump()
	}
	return true
}

// scanPrivateName сканирует #name внутри классов.
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	b := lx.cursor.Peek()
	if !isIdentStartByte(b) && b < utf8RuneSelf && b != '\\' {
		return lx.invalidFrom(start, diag.LexUnknownChar, "unexpected '#'")
	}
	name := lx.scanIdentOrKeyword()
	if name.Kind == token.Invalid {
		return name
	}
	return lx.emit(token.PrivateName, start)
}

func (lx *Lexer) invalidFrom(start Mark, code diag.Code, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.errLex(code, tok.Span, msg)
	return tok
}
