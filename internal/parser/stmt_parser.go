package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/token"
)

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		return ast.NoStmtID, false
	}

	openTok := p.advance()
	stmtIDs := p.parseStatementList(token.RBrace)

	closeTok, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block", openTok)
	if !ok {
		return ast.NoStmtID, false
	}

	blockSpan := openTok.Span.Cover(closeTok.Span)
	return p.arenas.Stmts.NewBlock(blockSpan, stmtIDs), true
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return p.arenas.Stmts.NewSimple(ast.StmtEmpty, tok.Span), true
	case token.KwVar:
		return p.parseVarStmt(ast.VarVar)
	case token.KwConst:
		return p.parseVarStmt(ast.VarConst)
	case token.KwFunction:
		return p.parseFunctionDecl(false, tok.Span, false)
	case token.KwClass:
		return p.parseClassDecl(false)
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwDo:
		return p.parseDoWhileStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwThrow:
		return p.parseThrowStmt()
	case token.KwBreak, token.KwContinue:
		return p.parseJumpStmt()
	case token.KwTry:
		return p.parseTryStmt()
	case token.KwSwitch:
		return p.parseSwitchStmt()
	case token.KwWith:
		return p.parseWithStmt()
	case token.KwDebugger:
		p.advance()
		if !p.consumeSemicolon() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewSimple(ast.StmtDebugger, tok.Span), true
	case token.KwImport:
		return p.parseImportStmt()
	case token.KwExport:
		return p.parseExportStmt()
	case token.Ident:
		return p.parseIdentStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseIdentStmt различает метки, `let`-объявления и `async function`
// по второму токену; иначе возвращает идентификатор в поток и разбирает
// выражение.
func (p *Parser) parseIdentStmt() (ast.StmtID, bool) {
	tok := p.advance()
	next := p.peek()

	switch {
	case next.Kind == token.Colon:
		return p.parseLabeledStmt(tok)
	case tok.Text == "let" && isLetDeclStart(next):
		return p.finishVarStmt(ast.VarLet, tok)
	case tok.Text == "async" && next.Kind == token.KwFunction && !next.NewlineBefore():
		return p.parseFunctionDecl(true, tok.Span, false)
	}

	p.unread(tok)
	return p.parseExprStmt()
}

// isLetDeclStart: `let` начинает объявление, если за ним идёт имя или шаблон.
func isLetDeclStart(next token.Token) bool {
	return next.Kind == token.Ident || next.Kind == token.LBracket || next.Kind == token.LBrace
}

func (p *Parser) parseLabeledStmt(labelTok token.Token) (ast.StmtID, bool) {
	p.advance() // :
	label := identName(labelTok.Text)
	for _, l := range p.ctx.labels {
		if l == label {
			p.report(diag.SynUnexpectedToken, diag.SevError, labelTok.Span, "label '"+label+"' is already declared")
			break
		}
	}
	p.ctx.labels = append(p.ctx.labels, label)
	body, ok := p.parseStmt()
	p.ctx.labels = p.ctx.labels[:len(p.ctx.labels)-1]
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLabeled(p.spanFrom(labelTok.Span), p.intern(labelTok), body), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.spanFrom(start)
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExprStmt(span.Cover(p.lastSpan), expr), true
}
