package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = 0x80

// ===== Работа с рунами поверх Cursor =====

// peekRune декодирует руну в текущей позиции
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Advance(usz)
}

// spaceLen returns the byte length of a whitespace character at the cursor, 0 if none.
func (lx *Lexer) spaceLen() uint32 {
	switch lx.cursor.Peek() {
	case ' ', '\t', '\v', '\f':
		return 1
	}
	r, sz := lx.peekRune()
	if sz > 1 && (r == 0xFEFF || r == 0x00A0 || (unicode.Is(unicode.Zs, r))) {
		return uint32(sz)
	}
	return 0
}

// newlineLen returns the byte length of a line terminator at the cursor, 0 if none.
func (lx *Lexer) newlineLen() uint32 {
	switch lx.cursor.Peek() {
	case '\n':
		return 1
	case '\r':
		if lx.cursor.PeekAt(1) == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		// U+2028 / U+2029 в UTF-8: E2 80 A8 / E2 80 A9
		if lx.cursor.PeekAt(1) == 0x80 {
			if b := lx.cursor.PeekAt(2); b == 0xA8 || b == 0xA9 {
				return 3
			}
		}
	}
	return 0
}

// ===== Классификаторы =====

// ASCII fast-path для идентификаторов; Unicode: через isIdentStartRune/Continue.
func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}
func isIdentStartRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r) ||
		r == 0x200C || r == 0x200D
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}
