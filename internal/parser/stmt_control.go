package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/source"
	"hush/internal/token"
)

// parseParenCond: '(' Expression ')' в заголовках if/while/switch/with.
func (p *Parser) parseParenCond(what string) (ast.ExprID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '"+what+"'", nil)
	if !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExprAllowIn()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, "expected ')' after '"+what+"' condition", open); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseParenCond("if")
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if _, ok := p.eat(token.KwElse); ok {
		els, ok = p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(ifTok.Span), cond, then, els), true
}

// parseLoopBody: тело цикла, внутри которого допустимы break и continue.
func (p *Parser) parseLoopBody() (ast.StmtID, bool) {
	p.ctx.loops++
	defer func() { p.ctx.loops-- }()
	return p.parseStmt()
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseParenCond("while")
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseLoopBody()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(whileTok.Span), ast.StmtWhile, cond, body), true
}

func (p *Parser) parseDoWhileStmt() (ast.StmtID, bool) {
	doTok := p.advance()
	body, ok := p.parseLoopBody()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do-while body", nil); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseParenCond("while")
	if !ok {
		return ast.NoStmtID, false
	}
	// после do-while ';' вставляется всегда
	p.eat(token.Semicolon)
	return p.arenas.Stmts.NewWhile(p.spanFrom(doTok.Span), ast.StmtDoWhile, cond, body), true
}

// parseForStmt: for (;;), for-in, for-of и for await.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	forTok := p.advance()
	await := false
	if p.awaitAllowed() && p.atWord("await") {
		p.advance()
		await = true
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'", nil)
	if !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoStmtID
	left := ast.NoExprID
	declKind := ast.VarVar
	saved := p.noIn
	p.noIn = true
	switch tok := p.peek(); {
	case tok.Kind == token.Semicolon:
	case tok.Kind == token.KwVar || tok.Kind == token.KwConst:
		p.advance()
		if tok.Kind == token.KwConst {
			declKind = ast.VarConst
		}
		init, ok = p.parseVarDeclarations(declKind, tok.Span, true)
	case tok.Kind == token.Ident && tok.Text == "let":
		p.advance()
		if next := p.peek(); isLetDeclStart(next) {
			declKind = ast.VarLet
			init, ok = p.parseVarDeclarations(declKind, tok.Span, true)
			break
		}
		p.unread(tok)
		left, ok = p.parseExpr()
	default:
		left, ok = p.parseExpr()
	}
	p.noIn = saved
	if !ok {
		return ast.NoStmtID, false
	}

	if p.at(token.KwIn) || p.atWord("of") {
		kind := ast.StmtForIn
		if !p.at(token.KwIn) {
			kind = ast.StmtForOf
		}
		if await && kind != ast.StmtForOf {
			p.err(diag.SynUnexpectedToken, "'for await' requires 'of'")
		}
		if init != ast.NoStmtID {
			p.checkForInOfDecl(init)
		} else if left != ast.NoExprID {
			p.checkPattern(left, false, diag.SynInvalidAssignTarget)
		} else {
			p.err(diag.SynExpectExpression, "expected loop variable before 'in' or 'of'")
			return ast.NoStmtID, false
		}
		p.advance()
		var right ast.ExprID
		if kind == ast.StmtForOf {
			right, ok = p.parseAssignAllowIn()
		} else {
			right, ok = p.parseExprAllowIn()
		}
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, "expected ')' after for-loop head", open); !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseLoopBody()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewForInOf(p.spanFrom(forTok.Span), kind, ast.StmtForInOfData{
			LeftDecl: init,
			LeftExpr: left,
			Right:    right,
			Body:     body,
			Await:    await,
		}), true
	}

	if await {
		p.err(diag.SynUnexpectedToken, "'for await' requires 'of'")
	}
	if init != ast.NoStmtID {
		if decls, ok := p.arenas.Stmts.Var(init); ok {
			for _, d := range decls.Decls {
				p.checkInitializer(declKind, d)
			}
		}
	} else if left != ast.NoExprID {
		init = p.arenas.Stmts.NewExprStmt(p.exprSpan(left), left)
	}

	data := ast.StmtForData{Init: init}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after for-loop initializer", nil); !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.Semicolon) {
		if data.Test, ok = p.parseExprAllowIn(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after for-loop condition", nil); !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.RParen) {
		if data.Update, ok = p.parseExprAllowIn(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, "expected ')' after for-loop head", open); !ok {
		return ast.NoStmtID, false
	}
	if data.Body, ok = p.parseLoopBody(); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(forTok.Span), data), true
}

// checkForInOfDecl: в заголовке for-in/of ровно один декларатор без инициализатора.
func (p *Parser) checkForInOfDecl(init ast.StmtID) {
	decls, ok := p.arenas.Stmts.Var(init)
	if !ok {
		return
	}
	if len(decls.Decls) != 1 {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.stmtSpan(init), "only one variable may be declared in a for-in/of head")
		return
	}
	if d := decls.Decls[0]; d.Init != ast.NoExprID {
		p.report(diag.SynUnexpectedToken, diag.SevError, d.Span, "for-in/of variable may not have an initializer")
	}
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()
	if !p.ctx.inFunc {
		p.report(diag.SynIllegalReturn, diag.SevError, retTok.Span, "'return' outside of function")
	}
	arg := ast.NoExprID
	if tok := p.peek(); !tok.NewlineBefore() && canStartExpr(tok) {
		var ok bool
		if arg, ok = p.parseExprAllowIn(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewArg(p.spanFrom(retTok.Span), ast.StmtReturn, arg), true
}

func (p *Parser) parseThrowStmt() (ast.StmtID, bool) {
	throwTok := p.advance()
	if p.peek().NewlineBefore() {
		p.err(diag.SynUnexpectedToken, "line break is not allowed after 'throw'")
		return ast.NoStmtID, false
	}
	arg, ok := p.parseExprAllowIn()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewArg(p.spanFrom(throwTok.Span), ast.StmtThrow, arg), true
}

// parseJumpStmt: break/continue [label]; метка только на той же строке.
func (p *Parser) parseJumpStmt() (ast.StmtID, bool) {
	kwTok := p.advance()
	kind := ast.StmtBreak
	if kwTok.Kind == token.KwContinue {
		kind = ast.StmtContinue
	}

	label := source.NoStringID
	if tok := p.peek(); tok.Kind == token.Ident && !tok.NewlineBefore() {
		p.advance()
		label = p.intern(tok)
		if !p.hasLabel(identName(tok.Text)) {
			p.report(diag.SynIllegalBreak, diag.SevError, tok.Span, "undefined label '"+identName(tok.Text)+"'")
		}
	} else {
		switch {
		case kind == ast.StmtContinue && p.ctx.loops == 0:
			p.report(diag.SynIllegalBreak, diag.SevError, kwTok.Span, "'continue' outside of a loop")
		case kind == ast.StmtBreak && p.ctx.loops == 0 && p.ctx.switches == 0:
			p.report(diag.SynIllegalBreak, diag.SevError, kwTok.Span, "'break' outside of a loop or switch")
		}
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewJump(p.spanFrom(kwTok.Span), kind, label), true
}

func (p *Parser) hasLabel(name string) bool {
	for _, l := range p.ctx.labels {
		if l == name {
			return true
		}
	}
	return false
}

func (p *Parser) parseTryStmt() (ast.StmtID, bool) {
	tryTok := p.advance()
	var data ast.StmtTryData
	var ok bool
	if data.Block, ok = p.parseRequiredBlock("try"); !ok {
		return ast.NoStmtID, false
	}

	if _, isCatch := p.eat(token.KwCatch); isCatch {
		data.HasCatch = true
		if open, hasParam := p.eat(token.LParen); hasParam {
			if data.Param, ok = p.parseBindingTarget(); !ok {
				return ast.NoStmtID, false
			}
			if _, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, "expected ')' after catch parameter", open); !ok {
				return ast.NoStmtID, false
			}
		}
		if data.Handler, ok = p.parseRequiredBlock("catch"); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, isFinally := p.eat(token.KwFinally); isFinally {
		if data.Finalizer, ok = p.parseRequiredBlock("finally"); !ok {
			return ast.NoStmtID, false
		}
	}
	if !data.HasCatch && data.Finalizer == ast.NoStmtID {
		p.err(diag.SynUnexpectedToken, "expected 'catch' or 'finally' after try block")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewTry(p.spanFrom(tryTok.Span), data), true
}

func (p *Parser) parseRequiredBlock(what string) (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after '"+what+"'")
		return ast.NoStmtID, false
	}
	return p.parseBlock()
}

func (p *Parser) parseSwitchStmt() (ast.StmtID, bool) {
	switchTok := p.advance()
	disc, ok := p.parseParenCond("switch")
	if !ok {
		return ast.NoStmtID, false
	}
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start switch body", nil)
	if !ok {
		return ast.NoStmtID, false
	}

	p.ctx.switches++
	defer func() { p.ctx.switches-- }()

	var cases []ast.SwitchCase
	seenDefault := false
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.aborted {
		caseTok := p.peek()
		c := ast.SwitchCase{}
		switch caseTok.Kind {
		case token.KwCase:
			p.advance()
			if c.Test, ok = p.parseExprAllowIn(); !ok {
				return ast.NoStmtID, false
			}
		case token.KwDefault:
			p.advance()
			if seenDefault {
				p.report(diag.SynUnexpectedToken, diag.SevError, caseTok.Span, "more than one 'default' clause in switch")
			}
			seenDefault = true
		default:
			p.errUnexpected("in switch body, expected 'case' or 'default'")
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after case label", nil); !ok {
			return ast.NoStmtID, false
		}
		c.Body = p.parseStatementList(token.RBrace, token.KwCase, token.KwDefault)
		c.Span = p.spanFrom(caseTok.Span)
		cases = append(cases, c)
	}

	if _, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close switch body", open); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSwitch(p.spanFrom(switchTok.Span), disc, cases), true
}

func (p *Parser) parseWithStmt() (ast.StmtID, bool) {
	withTok := p.advance()
	obj, ok := p.parseParenCond("with")
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWith(p.spanFrom(withTok.Span), obj, body), true
}
