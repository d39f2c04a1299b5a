package ast

type UnaryOp uint8

const (
	UnaryNeg    UnaryOp = iota // -x
	UnaryPlus                  // +x
	UnaryNot                   // !x
	UnaryBitNot                // ~x
	UnaryTypeof                // typeof x
	UnaryVoid                  // void x
	UnaryDelete                // delete x
	UnaryAwait                 // await x
)

var unaryText = [...]string{
	UnaryNeg:    "-",
	UnaryPlus:   "+",
	UnaryNot:    "!",
	UnaryBitNot: "~",
	UnaryTypeof: "typeof",
	UnaryVoid:   "void",
	UnaryDelete: "delete",
	UnaryAwait:  "await",
}

func (op UnaryOp) String() string { return unaryText[op] }

// IsKeyword reports whether the operator is spelled as a word and needs a space before its operand.
func (op UnaryOp) IsKeyword() bool { return op >= UnaryTypeof }

type UpdateOp uint8

const (
	UpdateInc UpdateOp = iota // ++
	UpdateDec                 // --
)

func (op UpdateOp) String() string {
	if op == UpdateDec {
		return "--"
	}
	return "++"
}

type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryExp
	BinaryShl
	BinaryShr
	BinaryUShr
	BinaryBitAnd
	BinaryBitOr
	BinaryBitXor
	BinaryLt
	BinaryGt
	BinaryLtEq
	BinaryGtEq
	BinaryEq
	BinaryNotEq
	BinaryStrictEq
	BinaryStrictNotEq
	BinaryIn
	BinaryInstanceof
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryCoalesce
)

var binaryText = [...]string{
	BinaryAdd:         "+",
	BinarySub:         "-",
	BinaryMul:         "*",
	BinaryDiv:         "/",
	BinaryMod:         "%",
	BinaryExp:         "**",
	BinaryShl:         "<<",
	BinaryShr:         ">>",
	BinaryUShr:        ">>>",
	BinaryBitAnd:      "&",
	BinaryBitOr:       "|",
	BinaryBitXor:      "^",
	BinaryLt:          "<",
	BinaryGt:          ">",
	BinaryLtEq:        "<=",
	BinaryGtEq:        ">=",
	BinaryEq:          "==",
	BinaryNotEq:       "!=",
	BinaryStrictEq:    "===",
	BinaryStrictNotEq: "!==",
	BinaryIn:          "in",
	BinaryInstanceof:  "instanceof",
	BinaryLogicalAnd:  "&&",
	BinaryLogicalOr:   "||",
	BinaryCoalesce:    "??",
}

func (op BinaryOp) String() string { return binaryText[op] }

// IsKeyword reports whether the operator is a word (in, instanceof).
func (op BinaryOp) IsKeyword() bool { return op == BinaryIn || op == BinaryInstanceof }

type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignExp
	AssignShl
	AssignShr
	AssignUShr
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignLogicalAnd
	AssignLogicalOr
	AssignCoalesce
)

var assignText = [...]string{
	AssignPlain:      "=",
	AssignAdd:        "+=",
	AssignSub:        "-=",
	AssignMul:        "*=",
	AssignDiv:        "/=",
	AssignMod:        "%=",
	AssignExp:        "**=",
	AssignShl:        "<<=",
	AssignShr:        ">>=",
	AssignUShr:       ">>>=",
	AssignBitAnd:     "&=",
	AssignBitOr:      "|=",
	AssignBitXor:     "^=",
	AssignLogicalAnd: "&&=",
	AssignLogicalOr:  "||=",
	AssignCoalesce:   "??=",
}

func (op AssignOp) String() string { return assignText[op] }

type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	default:
		return "var"
	}
}
