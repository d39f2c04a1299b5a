package token

import "strconv"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier, including contextual words.
	Ident
	// PrivateName represents a class private name such as #field.
	PrivateName

	// reserved words; KwBreak and KwNull bound the range used by IsKeyword
	KwBreak      // break
	KwCase       // case
	KwCatch      // catch
	KwClass      // class
	KwConst      // const
	KwContinue   // continue
	KwDebugger   // debugger
	KwDefault    // default
	KwDelete     // delete
	KwDo         // do
	KwElse       // else
	KwExport     // export
	KwExtends    // extends
	KwFinally    // finally
	KwFor        // for
	KwFunction   // function
	KwIf         // if
	KwImport     // import
	KwIn         // in
	KwInstanceof // instanceof
	KwNew        // new
	KwReturn     // return
	KwSuper      // super
	KwSwitch     // switch
	KwThis       // this
	KwThrow      // throw
	KwTry        // try
	KwTypeof     // typeof
	KwVar        // var
	KwVoid       // void
	KwWhile      // while
	KwWith       // with
	KwTrue       // true
	KwFalse      // false
	KwNull       // null

	// NumberLit: numeric literal.
	NumberLit
	// BigIntLit: bigint literal such as 10n.
	BigIntLit
	// StringLit: single or double quoted string.
	StringLit
	// NoSubstTemplate: template without substitutions: `abc`.
	NoSubstTemplate
	// TemplateHead: template start up to the first ${.
	TemplateHead
	// TemplateMiddle: template part between } and ${.
	TemplateMiddle
	// TemplateTail: template part from } to the closing backtick.
	TemplateTail
	// RegExpLit: regular expression literal /re/flags.
	RegExpLit

	LBrace                 // {
	RBrace                 // }
	LParen                 // (
	RParen                 // )
	LBracket               // [
	RBracket               // ]
	Dot                    // .
	DotDotDot              // ...
	Semicolon              // ;
	Comma                  // ,
	Lt                     // <
	Gt                     // >
	LtEq                   // <=
	GtEq                   // >=
	EqEq                   // ==
	BangEq                 // !=
	EqEqEq                 // ===
	BangEqEq               // !==
	Plus                   // +
	Minus                  // -
	Star                   // *
	Slash                  // /
	Percent                // %
	StarStar               // **
	PlusPlus               // ++
	MinusMinus             // --
	Shl                    // <<
	Shr                    // >>
	UShr                   // >>>
	Amp                    // &
	Pipe                   // |
	Caret                  // ^
	Bang                   // !
	Tilde                  // ~
	AndAnd                 // &&
	OrOr                   // ||
	QuestionQuestion       // ??
	Question               // ?
	QuestionDot            // ?.
	Colon                  // :
	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	SlashAssign            // /=
	PercentAssign          // %=
	StarStarAssign         // **=
	ShlAssign              // <<=
	ShrAssign              // >>=
	UShrAssign             // >>>=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	AndAndAssign           // &&=
	OrOrAssign             // ||=
	QuestionQuestionAssign // ??=
	FatArrow               // =>
	At                     // @
)

var kindNames = [...]string{
	Invalid:                "Invalid",
	EOF:                    "EOF",
	Ident:                  "Ident",
	PrivateName:            "PrivateName",
	KwBreak:                "break",
	KwCase:                 "case",
	KwCatch:                "catch",
	KwClass:                "class",
	KwConst:                "const",
	KwContinue:             "continue",
	KwDebugger:             "debugger",
	KwDefault:              "default",
	KwDelete:               "delete",
	KwDo:                   "do",
	KwElse:                 "else",
	KwExport:               "export",
	KwExtends:              "extends",
	KwFinally:              "finally",
	KwFor:                  "for",
	KwFunction:             "function",
	KwIf:                   "if",
	KwImport:               "import",
	KwIn:                   "in",
	KwInstanceof:           "instanceof",
	KwNew:                  "new",
	KwReturn:               "return",
	KwSuper:                "super",
	KwSwitch:               "switch",
	KwThis:                 "this",
	KwThrow:                "throw",
	KwTry:                  "try",
	KwTypeof:               "typeof",
	KwVar:                  "var",
	KwVoid:                 "void",
	KwWhile:                "while",
	KwWith:                 "with",
	KwTrue:                 "true",
	KwFalse:                "false",
	KwNull:                 "null",
	NumberLit:              "NumberLit",
	BigIntLit:              "BigIntLit",
	StringLit:              "StringLit",
	NoSubstTemplate:        "NoSubstTemplate",
	TemplateHead:           "TemplateHead",
	TemplateMiddle:         "TemplateMiddle",
	TemplateTail:           "TemplateTail",
	RegExpLit:              "RegExpLit",
	LBrace:                 "{",
	RBrace:                 "}",
	LParen:                 "(",
	RParen:                 ")",
	LBracket:               "[",
	RBracket:               "]",
	Dot:                    ".",
	DotDotDot:              "...",
	Semicolon:              ";",
	Comma:                  ",",
	Lt:                     "<",
	Gt:                     ">",
	LtEq:                   "<=",
	GtEq:                   ">=",
	EqEq:                   "==",
	BangEq:                 "!=",
	EqEqEq:                 "===",
	BangEqEq:               "!==",
	Plus:                   "+",
	Minus:                  "-",
	Star:                   "*",
	Slash:                  "/",
	Percent:                "%",
	StarStar:               "**",
	PlusPlus:               "++",
	MinusMinus:             "--",
	Shl:                    "<<",
	Shr:                    ">>",
	UShr:                   ">>>",
	Amp:                    "&",
	Pipe:                   "|",
	Caret:                  "^",
	Bang:                   "!",
	Tilde:                  "~",
	AndAnd:                 "&&",
	OrOr:                   "||",
	QuestionQuestion:       "??",
	Question:               "?",
	QuestionDot:            "?.",
	Colon:                  ":",
	Assign:                 "=",
	PlusAssign:             "+=",
	MinusAssign:            "-=",
	StarAssign:             "*=",
	SlashAssign:            "/=",
	PercentAssign:          "%=",
	StarStarAssign:         "**=",
	ShlAssign:              "<<=",
	ShrAssign:              ">>=",
	UShrAssign:             ">>>=",
	AmpAssign:              "&=",
	PipeAssign:             "|=",
	CaretAssign:            "^=",
	AndAndAssign:           "&&=",
	OrOrAssign:             "||=",
	QuestionQuestionAssign: "??=",
	FatArrow:               "=>",
	At:                     "@",
}

// String returns the source spelling for operators and keywords, the kind name otherwise.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
