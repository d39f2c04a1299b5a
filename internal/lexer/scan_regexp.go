package lexer

import (
	"hush/internal/diag"
	"hush/internal/token"
)

// scanRegExp сканирует /body/flags. Внутри класса [...] '/' не завершает литерал.
func (lx *Lexer) scanRegExp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	for {
		if lx.cursor.EOF() || lx.newlineLen() > 0 {
			return lx.invalidFrom(start, diag.LexUnterminatedRegExp, "unterminated regular expression")
		}
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.newlineLen() > 0 {
				continue
			}
			lx.bumpRune()
			continue
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			lx.cursor.Bump()
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			return lx.emit(token.RegExpLit, start)
		}
		lx.bumpRune()
	}
}
