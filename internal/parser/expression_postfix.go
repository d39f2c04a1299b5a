package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/token"
)

// parseCallChain разбирает new, вызовы, доступ к полям, индексацию,
// опциональные цепочки и tagged templates.
func (p *Parser) parseCallChain() (ast.ExprID, bool) {
	var expr ast.ExprID
	var ok bool
	if p.at(token.KwNew) {
		expr, ok = p.parseNewExpr()
	} else {
		expr, ok = p.parsePrimaryExpr()
	}
	if !ok {
		return ast.NoExprID, false
	}
	return p.parsePostfixOps(expr, true)
}

// parsePostfixOps применяет постфиксы к expr. calls=false: только
// member/index/template (callee для new).
func (p *Parser) parsePostfixOps(expr ast.ExprID, calls bool) (ast.ExprID, bool) {
	for {
		var ok bool
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			expr, ok = p.parseMemberName(expr, false)

		case token.QuestionDot:
			if !calls {
				return expr, true
			}
			expr, ok = p.parseOptionalChainLink(expr)

		case token.LBracket:
			expr, ok = p.parseIndexExpr(expr, false)

		case token.LParen:
			if !calls {
				return expr, true
			}
			expr, ok = p.parseCallExpr(expr, false)

		case token.NoSubstTemplate, token.TemplateHead:
			expr, ok = p.parseTemplateLiteral(expr)

		default:
			// Больше постфиксов нет
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

// parseMemberName: имя после '.' или '?.': любое IdentifierName или #private.
func (p *Parser) parseMemberName(target ast.ExprID, optional bool) (ast.ExprID, bool) {
	tok := p.peek()
	data := ast.ExprMemberData{Target: target, Optional: optional}
	switch {
	case tok.IsWord():
		p.advance()
		data.Name = p.intern(tok)
	case tok.Kind == token.PrivateName:
		p.advance()
		data.Name = p.internPrivate(tok)
		data.Private = true
	default:
		p.err(diag.SynExpectIdentifier, "expected property name after '.'")
		return ast.NoExprID, false
	}
	data.NameSpan = tok.Span
	return p.arenas.Exprs.NewMember(p.exprSpan(target).Cover(tok.Span), data), true
}

// parseOptionalChainLink: ?.name, ?.[expr], ?.(args)
func (p *Parser) parseOptionalChainLink(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // ?.
	switch p.peek().Kind {
	case token.LBracket:
		return p.parseIndexExpr(target, true)
	case token.LParen:
		return p.parseCallExpr(target, true)
	case token.NoSubstTemplate, token.TemplateHead:
		p.err(diag.SynUnexpectedToken, "tagged template cannot be used in optional chain")
		return ast.NoExprID, false
	default:
		return p.parseMemberName(target, true)
	}
}

// parseIndexExpr: target[index]
func (p *Parser) parseIndexExpr(target ast.ExprID, optional bool) (ast.ExprID, bool) {
	open := p.advance() // [
	index, ok := p.parseExprAllowIn()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expectClose(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index expression", open); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIndex(p.spanFrom(p.exprSpan(target)), target, index, optional), true
}

// parseCallExpr: callee(args...)
func (p *Parser) parseCallExpr(callee ast.ExprID, optional bool) (ast.ExprID, bool) {
	args, ok := p.parseArguments()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(p.spanFrom(p.exprSpan(callee)), callee, args, optional), true
}

// parseArguments: '(' [arg {, arg}] [,] ')', аргументы могут быть spread.
func (p *Parser) parseArguments() ([]ast.ExprID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('", nil)
	if !ok {
		return nil, false
	}
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseSpreadOrAssign()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments", open); !ok {
		return nil, false
	}
	return args, true
}

// parseSpreadOrAssign: элемент списка: ...expr или AssignmentExpression.
func (p *Parser) parseSpreadOrAssign() (ast.ExprID, bool) {
	if dots, ok := p.eat(token.DotDotDot); ok {
		arg, ok := p.parseAssignAllowIn()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewSpread(dots.Span.Cover(p.exprSpan(arg)), arg), true
	}
	return p.parseAssignAllowIn()
}

// parseNewExpr: new.target, new Callee, new Callee(args).
func (p *Parser) parseNewExpr() (ast.ExprID, bool) {
	newTok := p.advance()

	if p.at(token.Dot) {
		p.advance()
		prop := p.peek()
		if prop.Kind != token.Ident || prop.Text != "target" {
			p.err(diag.SynUnexpectedToken, "expected 'target' after 'new.'")
			return ast.NoExprID, false
		}
		p.advance()
		meta := p.arenas.Strings.Intern("new")
		return p.arenas.Exprs.NewMeta(newTok.Span.Cover(prop.Span), meta, p.intern(prop)), true
	}

	var callee ast.ExprID
	var ok bool
	if p.at(token.KwNew) {
		callee, ok = p.parseNewExpr()
	} else {
		callee, ok = p.parsePrimaryExpr()
	}
	if !ok {
		return ast.NoExprID, false
	}
	callee, ok = p.parsePostfixOps(callee, false)
	if !ok {
		return ast.NoExprID, false
	}

	if !p.at(token.LParen) {
		return p.arenas.Exprs.NewConstruct(p.spanFrom(newTok.Span), callee, nil, false), true
	}
	args, ok := p.parseArguments()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewConstruct(p.spanFrom(newTok.Span), callee, args, true), true
}
