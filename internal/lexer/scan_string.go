package lexer

import (
	"hush/internal/diag"
	"hush/internal/token"
)

// scanString сканирует '...' или "...". Escape-последовательности проверяются
// поверхностно; перевод строки допустим только после '\'.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case b == '\\':
			lx.cursor.Bump()
			if !lx.scanEscape() {
				return lx.invalidFrom(start, diag.LexBadEscape, "invalid escape sequence in string literal")
			}
		case b == '\n' || b == '\r':
			return lx.invalidFrom(start, diag.LexUnterminatedString, "newline in string literal")
		default:
			lx.bumpRune()
		}
	}
	return lx.invalidFrom(start, diag.LexUnterminatedString, "unterminated string literal")
}

// scanEscape consumes the part of an escape sequence after '\'.
func (lx *Lexer) scanEscape() bool {
	if lx.cursor.EOF() {
		return false
	}
	switch lx.cursor.Peek() {
	case 'x':
		lx.cursor.Bump()
		if !isHex(lx.cursor.PeekAt(0)) || !isHex(lx.cursor.PeekAt(1)) {
			return false
		}
		lx.cursor.Advance(2)
		return true
	case 'u':
		lx.cursor.Bump()
		return lx.scanUnicodeEscapeBody()
	}
	// line continuation or any single character
	if n := lx.newlineLen(); n > 0 {
		lx.cursor.Advance(n)
		return true
	}
	lx.bumpRune()
	return true
}

// scanTemplate сканирует часть шаблонной строки от start до '`' или '${'.
// head=true: start указывает на открывающий '`'; иначе на '}' продолжения.
// Escape-последовательности в шаблонах не проверяются: tagged templates
// допускают любые.
func (lx *Lexer) scanTemplate(start Mark, head bool) token.Token {
	if head {
		lx.cursor.Bump() // '`'
	}
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '`':
			lx.cursor.Bump()
			if head {
				return lx.emit(token.NoSubstTemplate, start)
			}
			return lx.emit(token.TemplateTail, start)
		case '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		case '$':
			if lx.cursor.PeekAt(1) == '{' {
				lx.cursor.Advance(2)
				if head {
					return lx.emit(token.TemplateHead, start)
				}
				return lx.emit(token.TemplateMiddle, start)
			}
			lx.cursor.Bump()
		default:
			lx.bumpRune()
		}
	}
	return lx.invalidFrom(start, diag.LexUnterminatedTemplate, "unterminated template literal")
}
