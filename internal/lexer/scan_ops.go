package lexer

import (
	"hush/internal/diag"
	"hush/internal/token"
)

type opSpelling struct {
	text string
	kind token.Kind
}

// Жадность: сначала длинные последовательности, затем короткие.
var multiOps = []opSpelling{
	{">>>=", token.UShrAssign},
	{"...", token.DotDotDot},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"**=", token.StarStarAssign},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{">>>", token.UShr},
	{"&&=", token.AndAndAssign},
	{"||=", token.OrOrAssign},
	{"??=", token.QuestionQuestionAssign},
	{"=>", token.FatArrow},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"??", token.QuestionQuestion},
	{"**", token.StarStar},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var singleOps = [256]token.Kind{
	'{': token.LBrace,
	'}': token.RBrace,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'.': token.Dot,
	';': token.Semicolon,
	',': token.Comma,
	'<': token.Lt,
	'>': token.Gt,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'!': token.Bang,
	'~': token.Tilde,
	'?': token.Question,
	':': token.Colon,
	'=': token.Assign,
	'@': token.At,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// "?.": но не в "a?.5:b"
	if lx.cursor.Peek() == '?' && lx.cursor.PeekAt(1) == '.' && !isDec(lx.cursor.PeekAt(2)) {
		lx.cursor.Advance(2)
		return lx.emit(token.QuestionDot, start)
	}

	for _, op := range multiOps {
		if lx.cursor.Match(op.text) {
			return lx.emit(op.kind, start)
		}
	}

	ch := lx.cursor.Bump()
	if k := singleOps[ch]; k != token.Invalid {
		return lx.emit(k, start)
	}
	return lx.invalidFrom(start, diag.LexUnknownChar, "unknown character")
}
