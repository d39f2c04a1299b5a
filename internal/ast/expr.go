package ast

import (
	"hush/internal/source"
)

type ExprKind uint8

const (
	ExprIdent       ExprKind = iota // foo
	ExprLit                         // 1, "s", /re/, true, null
	ExprThis                        // this
	ExprSuper                       // super
	ExprPrivateName                 // #x (class keys and `#x in obj`)
	ExprTemplate                    // `a${b}`, tag`a`
	ExprArray                       // [a, , ...b]
	ExprObject                      // {a, b: 1, [k]: v, m() {}, ...o}
	ExprFunction                    // function f() {}
	ExprArrow                       // (a) => a
	ExprClass                       // class A extends B {}
	ExprMember                      // a.b, a?.b, a.#b
	ExprIndex                       // a[b], a?.[b]
	ExprCall                        // f(a), f?.(a)
	ExprNew                         // new F(a)
	ExprUnary                       // -a, void a, await a
	ExprUpdate                      // a++, --a
	ExprBinary                      // a + b, a && b
	ExprAssign                      // a = b, a += b
	ExprConditional                 // a ? b : c
	ExprSequence                    // a, b
	ExprSpread                      // ...a
	ExprYield                       // yield a, yield* a
	ExprParen                       // (a)
	ExprMeta                        // new.target, import.meta
	ExprImportCall                  // import(x)
)

var exprKindNames = [...]string{
	ExprIdent:       "Ident",
	ExprLit:         "Lit",
	ExprThis:        "This",
	ExprSuper:       "Super",
	ExprPrivateName: "PrivateName",
	ExprTemplate:    "Template",
	ExprArray:       "Array",
	ExprObject:      "Object",
	ExprFunction:    "Function",
	ExprArrow:       "Arrow",
	ExprClass:       "Class",
	ExprMember:      "Member",
	ExprIndex:       "Index",
	ExprCall:        "Call",
	ExprNew:         "New",
	ExprUnary:       "Unary",
	ExprUpdate:      "Update",
	ExprBinary:      "Binary",
	ExprAssign:      "Assign",
	ExprConditional: "Conditional",
	ExprSequence:    "Sequence",
	ExprSpread:      "Spread",
	ExprYield:       "Yield",
	ExprParen:       "Paren",
	ExprMeta:        "Meta",
	ExprImportCall:  "ImportCall",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr?"
}

// Expr is a tagged node: Kind selects the payload arena Payload indexes into.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

type LitKind uint8

const (
	LitNumber LitKind = iota
	LitBigInt
	LitString
	LitRegExp
	LitTrue
	LitFalse
	LitNull
)

// ExprLiteralData keeps the literal exactly as written.
type ExprLiteralData struct {
	Kind LitKind
	Raw  string
}

type ExprPrivateNameData struct {
	Name source.StringID // без '#'
}

// ExprTemplateData: Quasis are the raw text pieces between substitutions,
// len(Quasis) == len(Exprs)+1. Tag is NoExprID for untagged templates.
type ExprTemplateData struct {
	Tag    ExprID
	Quasis []string
	Exprs  []ExprID
}

// ExprArrayData: holes are NoExprID.
type ExprArrayData struct {
	Elems         []ExprID
	TrailingComma bool
}

type PropKind uint8

const (
	PropInit      PropKind = iota // key: value
	PropShorthand                 // key (value is the same ident, or key = default in patterns)
	PropMethod                    // key() {}
	PropGetter                    // get key() {}
	PropSetter                    // set key(v) {}
	PropSpread                    // ...value
)

// Property is an object literal member. Key is an ExprIdent, ExprLit or
// ExprPrivateName for plain keys, any expression when Computed.
type Property struct {
	Kind     PropKind
	Span     source.Span
	Key      ExprID
	Computed bool
	Value    ExprID
}

type ExprObjectData struct {
	Props []Property
}

// Param is a formal parameter: a binding pattern with an optional default
// (ExprAssign) or a rest element (ExprSpread).
type Param struct {
	Pattern ExprID
}

type ExprFunctionData struct {
	Name      source.StringID
	NameSpan  source.Span
	Async     bool
	Generator bool
	Params    []Param
	Body      StmtID // StmtBlock
}

// ExprArrowData: exactly one of Body (block) and Expr is set.
type ExprArrowData struct {
	Async  bool
	Params []Param
	Body   StmtID
	Expr   ExprID
}

type ClassMemberKind uint8

const (
	ClassMethod ClassMemberKind = iota
	ClassGetter
	ClassSetter
	ClassField
	ClassStaticBlock
)

// ClassMember: Value is the method function or the field initializer
// (NoExprID for a bare field); Body is used only for static blocks.
type ClassMember struct {
	Kind     ClassMemberKind
	Span     source.Span
	Static   bool
	Key      ExprID
	Computed bool
	Value    ExprID
	Body     StmtID
}

type ExprClassData struct {
	Name     source.StringID
	NameSpan source.Span
	Super    ExprID
	Members  []ClassMember
}

// ExprMemberData is `Target.Name`. Optional marks `?.`, Private marks `.#name`.
type ExprMemberData struct {
	Target   ExprID
	Name     source.StringID
	NameSpan source.Span
	Optional bool
	Private  bool
}

type ExprIndexData struct {
	Target   ExprID
	Index    ExprID
	Optional bool
}

type ExprCallData struct {
	Callee   ExprID
	Args     []ExprID
	Optional bool
}

// ExprNewData: HasArgs is false for `new F` without parentheses.
type ExprNewData struct {
	Callee  ExprID
	Args    []ExprID
	HasArgs bool
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprUpdateData struct {
	Op      UpdateOp
	Prefix  bool
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprAssignData struct {
	Op    AssignOp
	Left  ExprID
	Right ExprID
}

type ExprConditionalData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprSequenceData struct {
	Exprs []ExprID
}

type ExprSpreadData struct {
	Arg ExprID
}

type ExprYieldData struct {
	Arg      ExprID
	Delegate bool
}

type ExprParenData struct {
	Inner ExprID
}

// ExprMetaData is `Meta.Prop`: new.target or import.meta.
type ExprMetaData struct {
	Meta source.StringID
	Prop source.StringID
}

type ExprImportCallData struct {
	Arg     ExprID
	Options ExprID
}
