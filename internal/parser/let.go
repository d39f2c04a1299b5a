package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/source"
	"hush/internal/token"
)

// parseVarStmt: var/const объявление с завершающей ';'.
func (p *Parser) parseVarStmt(kind ast.VarKind) (ast.StmtID, bool) {
	kwTok := p.advance()
	return p.finishVarStmt(kind, kwTok)
}

// finishVarStmt: ключевое слово уже съедено.
func (p *Parser) finishVarStmt(kind ast.VarKind, kwTok token.Token) (ast.StmtID, bool) {
	stmt, ok := p.parseVarDeclarations(kind, kwTok.Span, false)
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	p.arenas.Stmts.Get(stmt).Span = p.spanFrom(kwTok.Span)
	return stmt, true
}

// parseVarDeclarations разбирает список деклараторов. В заголовке for
// инициализатор может отсутствовать (for-in/of), проверку делает вызывающий.
func (p *Parser) parseVarDeclarations(kind ast.VarKind, start source.Span, inForHead bool) (ast.StmtID, bool) {
	var decls []ast.VarDecl
	for {
		target, ok := p.parseBindingTarget()
		if !ok {
			return ast.NoStmtID, false
		}
		decl := ast.VarDecl{Target: target}
		if _, ok := p.eat(token.Assign); ok {
			decl.Init, ok = p.parseAssignExpr()
			if !ok {
				return ast.NoStmtID, false
			}
		} else if !inForHead {
			p.checkInitializer(kind, decl)
		}
		decl.Span = p.spanFrom(p.exprSpan(target))
		decls = append(decls, decl)

		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	return p.arenas.Stmts.NewVar(p.spanFrom(start), kind, decls), true
}

// checkInitializer: const и деструктуризация требуют инициализатор.
func (p *Parser) checkInitializer(kind ast.VarKind, decl ast.VarDecl) {
	if decl.Init != ast.NoExprID {
		return
	}
	if kind == ast.VarConst {
		p.report(diag.SynMissingInitializer, diag.SevError, p.exprSpan(decl.Target), "missing initializer in const declaration")
		return
	}
	if ex := p.arenas.Exprs.Get(decl.Target); ex != nil && ex.Kind != ast.ExprIdent {
		p.report(diag.SynMissingInitializer, diag.SevError, ex.Span, "missing initializer in destructuring declaration")
	}
}
