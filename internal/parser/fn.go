package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/source"
	"hush/internal/token"
)

// parseFunctionExpr разбирает `[async] function [*] [name] (params) { body }`.
// start: span первого токена (async или function).
func (p *Parser) parseFunctionExpr(async bool, start source.Span) (ast.ExprID, bool) {
	data, ok := p.parseFunction(async, start, false)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewFunction(p.spanFrom(start), data), true
}

// parseFunctionDecl: объявление функции; имя обязательно, кроме export default.
func (p *Parser) parseFunctionDecl(async bool, start source.Span, nameOptional bool) (ast.StmtID, bool) {
	data, ok := p.parseFunction(async, start, !nameOptional)
	if !ok {
		return ast.NoStmtID, false
	}
	fn := p.arenas.Exprs.NewFunction(p.spanFrom(start), data)
	return p.arenas.Stmts.NewDecl(p.spanFrom(start), ast.StmtFunction, fn), true
}

func (p *Parser) parseFunction(async bool, start source.Span, needName bool) (ast.ExprFunctionData, bool) {
	// `async`, если был, уже съеден вызывающим
	if _, ok := p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function'", nil); !ok {
		return ast.ExprFunctionData{}, false
	}
	data := ast.ExprFunctionData{Async: async}
	if _, ok := p.eat(token.Star); ok {
		data.Generator = true
	}
	if tok := p.peek(); tok.Kind == token.Ident {
		p.advance()
		data.Name = p.intern(tok)
		data.NameSpan = tok.Span
	} else if needName {
		p.err(diag.SynExpectIdentifier, "expected function name")
		return ast.ExprFunctionData{}, false
	}

	ok := true
	p.withFunction(data.Async, data.Generator, func() {
		data.Params, ok = p.parseParams()
		if !ok {
			return
		}
		data.Body, ok = p.parseFunctionBody()
	})
	return data, ok
}

// parseMethod: параметры и тело метода объекта или класса.
func (p *Parser) parseMethod(async, generator bool, start source.Span) (ast.ExprID, bool) {
	data := ast.ExprFunctionData{Async: async, Generator: generator}
	ok := true
	p.withFunction(async, generator, func() {
		data.Params, ok = p.parseParams()
		if !ok {
			return
		}
		data.Body, ok = p.parseFunctionBody()
	})
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewFunction(p.spanFrom(start), data), true
}

// parseParams: '(' [param {, param}] [,] ')'; rest-параметр только последним.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters", nil)
	if !ok {
		return nil, false
	}
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if dots, ok := p.eat(token.DotDotDot); ok {
			target, ok := p.parseBindingTarget()
			if !ok {
				return nil, false
			}
			rest := p.arenas.Exprs.NewSpread(dots.Span.Cover(p.exprSpan(target)), target)
			params = append(params, ast.Param{Pattern: rest})
			if !p.at(token.RParen) {
				p.err(diag.SynUnexpectedToken, "rest parameter must be last")
				return nil, false
			}
			break
		}
		elem, ok := p.parseBindingElement()
		if !ok {
			return nil, false
		}
		params = append(params, ast.Param{Pattern: elem})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters", open); !ok {
		return nil, false
	}
	return params, true
}

// parseBindingElement: шаблон с необязательным значением по умолчанию.
func (p *Parser) parseBindingElement() (ast.ExprID, bool) {
	target, ok := p.parseBindingTarget()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.eat(token.Assign); !ok {
		return target, true
	}
	def, ok := p.parseAssignAllowIn()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(target).Cover(p.exprSpan(def))
	return p.arenas.Exprs.NewAssign(span, ast.AssignPlain, target, def), true
}

// parseBindingTarget: идентификатор или шаблон [..] / {..}.
// Шаблоны разбираются как литералы и затем проверяются.
func (p *Parser) parseBindingTarget() (ast.ExprID, bool) {
	tok := p.peek()
	var target ast.ExprID
	var ok bool
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok)), true
	case token.LBracket:
		target, ok = p.parseArrayLiteral()
	case token.LBrace:
		target, ok = p.parseObjectLiteral()
	default:
		p.err(diag.SynExpectIdentifier, "expected identifier or destructuring pattern")
		return ast.NoExprID, false
	}
	if !ok {
		return ast.NoExprID, false
	}
	p.checkPattern(target, true, diag.SynInvalidAssignTarget)
	return target, true
}

// parseFunctionBody: блок тела функции в уже открытом контексте функции.
func (p *Parser) parseFunctionBody() (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' before function body")
		return ast.NoStmtID, false
	}
	return p.parseBlock()
}

// parseArrowBody разбирает '=>' и тело стрелочной функции: блок или выражение.
func (p *Parser) parseArrowBody(async bool, start source.Span, params []ast.Param) (ast.ExprID, bool) {
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>'", nil); !ok {
		return ast.NoExprID, false
	}
	data := ast.ExprArrowData{Async: async, Params: params}
	ok := true
	noIn := p.noIn
	p.withFunction(async, false, func() {
		if p.at(token.LBrace) {
			data.Body, ok = p.parseBlock()
			return
		}
		p.noIn = noIn
		data.Expr, ok = p.parseAssignExpr()
	})
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArrow(p.spanFrom(start), data), true
}
