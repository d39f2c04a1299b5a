package lexer

import (
	"hush/internal/diag"
	"hush/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 017, 1.0, .5, 1., 1e-3, 10n.
// Token.Text: исходный срез; значение не вычисляется.
// Неверные формы: репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.NumberLit

	// ведущая точка: формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.scanDigits(isDec)
		goto exponent
	}

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Advance(2)
			if lx.scanDigits(digit) == 0 {
				return lx.invalidFrom(start, diag.LexBadNumber, "expected digits after base prefix")
			}
			goto suffix
		}
	}

	lx.scanDigits(isDec)

	// дробная часть: "1." тоже число
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.scanDigits(isDec)
		goto exponent
	}

	// BigInt допустим только у целых
	if lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		kind = token.BigIntLit
		goto suffix
	}

exponent:
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if lx.scanDigits(isDec) == 0 {
			return lx.invalidFrom(start, diag.LexBadNumber, "expected digit after exponent")
		}
	}

suffix:
	if kind == token.NumberLit && lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		kind = token.BigIntLit
	}
	// идентификатор сразу после числа запрещён: 3in, 1px
	if b := lx.cursor.Peek(); isIdentStartByte(b) || b == '\\' {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.invalidFrom(start, diag.LexBadNumber, "identifier starts immediately after numeric literal")
	}
	return lx.emit(kind, start)
}

// scanDigits consumes digits and '_' separators, returning the number of digits.
func (lx *Lexer) scanDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_' && n > 0 && digit(lx.cursor.PeekAt(1)):
		default:
			return n
		}
		lx.cursor.Bump()
	}
}
