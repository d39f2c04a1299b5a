package lexer

import (
	"hush/internal/diag"
	"hush/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - пробелы, табы и прочие пробельные символы коалесцируются в один TriviaSpace
//   - подряд идущие переводы строк (\n, \r\n, \r, U+2028, U+2029): в один TriviaNewline
//   - //... до конца строки -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()

		if n := lx.spaceLen(); n > 0 {
			for n > 0 {
				lx.cursor.Advance(n)
				n = lx.spaceLen()
			}
			lx.hold = append(lx.hold, lx.trivia(token.TriviaSpace, start))
			continue
		}

		if n := lx.newlineLen(); n > 0 {
			for n > 0 {
				lx.cursor.Advance(n)
				n = lx.newlineLen()
			}
			lx.hold = append(lx.hold, lx.trivia(token.TriviaNewline, start))
			continue
		}

		if lx.cursor.Peek() == '/' && lx.scanCommentIntoHold() {
			continue
		}
		break
	}
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		lx.cursor.Advance(2)
		for !lx.cursor.EOF() && lx.newlineLen() == 0 {
			lx.cursor.Bump()
		}
		lx.hold = append(lx.hold, lx.trivia(token.TriviaLineComment, start))
		return true

	case '*':
		lx.cursor.Advance(2)
		closed := false
		for !lx.cursor.EOF() {
			if lx.cursor.Match("*/") {
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		tv := lx.trivia(token.TriviaBlockComment, start)
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, tv.Span, "unterminated block comment")
		}
		lx.hold = append(lx.hold, tv)
		return true
	}
	return false
}

// scanHashbang keeps a leading "#!..." line as trivia of the first token.
func (lx *Lexer) scanHashbang() {
	if lx.cursor.PeekAt(0) != '#' || lx.cursor.PeekAt(1) != '!' {
		return
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.newlineLen() == 0 {
		lx.cursor.Bump()
	}
	lx.hold = append(lx.hold, lx.trivia(token.TriviaHashbang, start))
}

func (lx *Lexer) trivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
