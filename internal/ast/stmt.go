package ast

import (
	"hush/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtVar
	StmtFunction
	StmtClass
	StmtBlock
	StmtEmpty
	StmtIf
	StmtFor
	StmtForIn
	StmtForOf
	StmtWhile
	StmtDoWhile
	StmtReturn
	StmtThrow
	StmtBreak
	StmtContinue
	StmtTry
	StmtSwitch
	StmtLabeled
	StmtDebugger
	StmtWith
	StmtImport
	StmtExportNamed
	StmtExportDecl
	StmtExportDefault
	StmtExportAll
)

var stmtKindNames = [...]string{
	StmtExpr:          "Expr",
	StmtVar:           "Var",
	StmtFunction:      "Function",
	StmtClass:         "Class",
	StmtBlock:         "Block",
	StmtEmpty:         "Empty",
	StmtIf:            "If",
	StmtFor:           "For",
	StmtForIn:         "ForIn",
	StmtForOf:         "ForOf",
	StmtWhile:         "While",
	StmtDoWhile:       "DoWhile",
	StmtReturn:        "Return",
	StmtThrow:         "Throw",
	StmtBreak:         "Break",
	StmtContinue:      "Continue",
	StmtTry:           "Try",
	StmtSwitch:        "Switch",
	StmtLabeled:       "Labeled",
	StmtDebugger:      "Debugger",
	StmtWith:          "With",
	StmtImport:        "Import",
	StmtExportNamed:   "ExportNamed",
	StmtExportDecl:    "ExportDecl",
	StmtExportDefault: "ExportDefault",
	StmtExportAll:     "ExportAll",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt?"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtExprData struct {
	Expr ExprID
}

// VarDecl is one declarator; Target is a binding pattern.
type VarDecl struct {
	Span   source.Span
	Target ExprID
	Init   ExprID
}

type StmtVarData struct {
	Kind  VarKind
	Decls []VarDecl
}

// StmtDeclData wraps a function or class expression used as a declaration.
type StmtDeclData struct {
	Decl ExprID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// StmtForData: Init is a StmtVar, a StmtExpr or NoStmtID.
type StmtForData struct {
	Init   StmtID
	Test   ExprID
	Update ExprID
	Body   StmtID
}

// StmtForInOfData: the loop head is either a declaration (LeftDecl) or an
// assignment target (LeftExpr).
type StmtForInOfData struct {
	LeftDecl StmtID
	LeftExpr ExprID
	Right    ExprID
	Body     StmtID
	Await    bool
}

// StmtWhileData serves both while and do-while.
type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtArgData serves return and throw.
type StmtArgData struct {
	Arg ExprID
}

// StmtJumpData serves break and continue.
type StmtJumpData struct {
	Label source.StringID
}

// StmtTryData: HasCatch with Param == NoExprID is `catch {}` without binding.
type StmtTryData struct {
	Block     StmtID
	HasCatch  bool
	Param     ExprID
	Handler   StmtID
	Finalizer StmtID
}

// SwitchCase: Test is NoExprID for `default:`.
type SwitchCase struct {
	Span source.Span
	Test ExprID
	Body []StmtID
}

type StmtSwitchData struct {
	Disc  ExprID
	Cases []SwitchCase
}

type StmtLabeledData struct {
	Label source.StringID
	Body  StmtID
}

type StmtWithData struct {
	Object ExprID
	Body   StmtID
}

// ModuleSpec is one `a as b` pair of an import or export clause. Names keep
// their source spelling, which may be a string literal.
type ModuleSpec struct {
	Name  string
	Alias string // "" без `as`
}

// StmtImportData: `import Default, * as Namespace from "Source"` or
// `import Default, {Named} from "Source"`; bare `import "Source"` has no bindings.
type StmtImportData struct {
	Default    string
	Namespace  string
	HasNamed   bool
	Named      []ModuleSpec
	Source     string
	Attributes ExprID
}

// StmtExportNamedData: `export {Specs}` with an optional `from "Source"`.
type StmtExportNamedData struct {
	Specs  []ModuleSpec
	Source string
}

// StmtExportDefaultData: exactly one of Decl and Expr is set.
type StmtExportDefaultData struct {
	Decl StmtID
	Expr ExprID
}

// StmtExportAllData: `export * [as Alias] from "Source"`.
type StmtExportAllData struct {
	Alias  string
	Source string
}
