package ast

import (
	"hush/internal/source"
)

// StmtExportDeclData: `export` in front of a var, function or class declaration.
type StmtExportDeclData struct {
	Decl StmtID
}

// Stmts manages allocation of statements and their per-kind payloads.
type Stmts struct {
	Arena          *Arena[Stmt]
	ExprStmts      *Arena[StmtExprData]
	Vars           *Arena[StmtVarData]
	Decls          *Arena[StmtDeclData]
	Blocks         *Arena[StmtBlockData]
	Ifs            *Arena[StmtIfData]
	Fors           *Arena[StmtForData]
	ForInOfs       *Arena[StmtForInOfData]
	Whiles         *Arena[StmtWhileData]
	Args           *Arena[StmtArgData]
	Jumps          *Arena[StmtJumpData]
	Tries          *Arena[StmtTryData]
	Switches       *Arena[StmtSwitchData]
	Labeleds       *Arena[StmtLabeledData]
	Withs          *Arena[StmtWithData]
	Imports        *Arena[StmtImportData]
	ExportNameds   *Arena[StmtExportNamedData]
	ExportDecls    *Arena[StmtExportDeclData]
	ExportDefaults *Arena[StmtExportDefaultData]
	ExportAlls     *Arena[StmtExportAllData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	rare := capHint/16 + 1
	return &Stmts{
		Arena:          NewArena[Stmt](capHint),
		ExprStmts:      NewArena[StmtExprData](capHint),
		Vars:           NewArena[StmtVarData](capHint),
		Decls:          NewArena[StmtDeclData](rare),
		Blocks:         NewArena[StmtBlockData](capHint),
		Ifs:            NewArena[StmtIfData](capHint),
		Fors:           NewArena[StmtForData](rare),
		ForInOfs:       NewArena[StmtForInOfData](rare),
		Whiles:         NewArena[StmtWhileData](rare),
		Args:           NewArena[StmtArgData](capHint),
		Jumps:          NewArena[StmtJumpData](rare),
		Tries:          NewArena[StmtTryData](rare),
		Switches:       NewArena[StmtSwitchData](rare),
		Labeleds:       NewArena[StmtLabeledData](rare),
		Withs:          NewArena[StmtWithData](rare),
		Imports:        NewArena[StmtImportData](rare),
		ExportNameds:   NewArena[StmtExportNamedData](rare),
		ExportDecls:    NewArena[StmtExportDeclData](rare),
		ExportDefaults: NewArena[StmtExportDefaultData](rare),
		ExportAlls:     NewArena[StmtExportAllData](rare),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewSimple creates a statement without payload (empty, debugger).
func (s *Stmts) NewSimple(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, NoPayloadID)
}

func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	payload := s.ExprStmts.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprStmts.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewVar(span source.Span, kind VarKind, decls []VarDecl) StmtID {
	payload := s.Vars.Allocate(StmtVarData{Kind: kind, Decls: decls})
	return s.new(StmtVar, span, PayloadID(payload))
}

func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtVar {
		return nil, false
	}
	return s.Vars.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewDecl(span source.Span, kind StmtKind, decl ExprID) StmtID {
	payload := s.Decls.Allocate(StmtDeclData{Decl: decl})
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) Decl(id StmtID) (*StmtDeclData, bool) {
	stmt := s.Get(id)
	if stmt == nil || (stmt.Kind != StmtFunction && stmt.Kind != StmtClass) {
		return nil, false
	}
	return s.Decls.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(payload))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	payload := s.Fors.Allocate(data)
	return s.new(StmtFor, span, PayloadID(payload))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewForInOf(span source.Span, kind StmtKind, data StmtForInOfData) StmtID {
	payload := s.ForInOfs.Allocate(data)
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) ForInOf(id StmtID) (*StmtForInOfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || (stmt.Kind != StmtForIn && stmt.Kind != StmtForOf) {
		return nil, false
	}
	return s.ForInOfs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewWhile(span source.Span, kind StmtKind, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || (stmt.Kind != StmtWhile && stmt.Kind != StmtDoWhile) {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewArg(span source.Span, kind StmtKind, arg ExprID) StmtID {
	payload := s.Args.Allocate(StmtArgData{Arg: arg})
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) Arg(id StmtID) (*StmtArgData, bool) {
	stmt := s.Get(id)
	if stmt == nil || (stmt.Kind != StmtReturn && stmt.Kind != StmtThrow) {
		return nil, false
	}
	return s.Args.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewJump(span source.Span, kind StmtKind, label source.StringID) StmtID {
	payload := s.Jumps.Allocate(StmtJumpData{Label: label})
	return s.new(kind, span, PayloadID(payload))
}

func (s *Stmts) Jump(id StmtID) (*StmtJumpData, bool) {
	stmt := s.Get(id)
	if stmt == nil || (stmt.Kind != StmtBreak && stmt.Kind != StmtContinue) {
		return nil, false
	}
	return s.Jumps.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	payload := s.Tries.Allocate(data)
	return s.new(StmtTry, span, PayloadID(payload))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtTry {
		return nil, false
	}
	return s.Tries.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewSwitch(span source.Span, disc ExprID, cases []SwitchCase) StmtID {
	payload := s.Switches.Allocate(StmtSwitchData{Disc: disc, Cases: cases})
	return s.new(StmtSwitch, span, PayloadID(payload))
}

func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtSwitch {
		return nil, false
	}
	return s.Switches.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewLabeled(span source.Span, label source.StringID, body StmtID) StmtID {
	payload := s.Labeleds.Allocate(StmtLabeledData{Label: label, Body: body})
	return s.new(StmtLabeled, span, PayloadID(payload))
}

func (s *Stmts) Labeled(id StmtID) (*StmtLabeledData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLabeled {
		return nil, false
	}
	return s.Labeleds.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewWith(span source.Span, object ExprID, body StmtID) StmtID {
	payload := s.Withs.Allocate(StmtWithData{Object: object, Body: body})
	return s.new(StmtWith, span, PayloadID(payload))
}

func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWith {
		return nil, false
	}
	return s.Withs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewImport(span source.Span, data StmtImportData) StmtID {
	payload := s.Imports.Allocate(data)
	return s.new(StmtImport, span, PayloadID(payload))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtImport {
		return nil, false
	}
	return s.Imports.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExportNamed(span source.Span, data StmtExportNamedData) StmtID {
	payload := s.ExportNameds.Allocate(data)
	return s.new(StmtExportNamed, span, PayloadID(payload))
}

func (s *Stmts) ExportNamed(id StmtID) (*StmtExportNamedData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExportNamed {
		return nil, false
	}
	return s.ExportNameds.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExportDecl(span source.Span, decl StmtID) StmtID {
	payload := s.ExportDecls.Allocate(StmtExportDeclData{Decl: decl})
	return s.new(StmtExportDecl, span, PayloadID(payload))
}

func (s *Stmts) ExportDecl(id StmtID) (*StmtExportDeclData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExportDecl {
		return nil, false
	}
	return s.ExportDecls.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExportDefault(span source.Span, data StmtExportDefaultData) StmtID {
	payload := s.ExportDefaults.Allocate(data)
	return s.new(StmtExportDefault, span, PayloadID(payload))
}

func (s *Stmts) ExportDefault(id StmtID) (*StmtExportDefaultData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExportDefault {
		return nil, false
	}
	return s.ExportDefaults.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExportAll(span source.Span, alias, src string) StmtID {
	payload := s.ExportAlls.Allocate(StmtExportAllData{Alias: alias, Source: src})
	return s.new(StmtExportAll, span, PayloadID(payload))
}

func (s *Stmts) ExportAll(id StmtID) (*StmtExportAllData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExportAll {
		return nil, false
	}
	return s.ExportAlls.Get(uint32(stmt.Payload)), true
}
