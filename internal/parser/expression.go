package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/source"
	"hush/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений (Expression,
// включая оператор запятая). Возвращает ExprID и флаг успеха.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	first, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Comma) {
		return first, true
	}
	exprs := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		next, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		exprs = append(exprs, next)
	}
	span := p.exprSpan(first).Cover(p.exprSpan(exprs[len(exprs)-1]))
	return p.arenas.Exprs.NewSequence(span, exprs), true
}

// parseExprAllowIn: parseExpr внутри скобок, где `in` снова оператор.
func (p *Parser) parseExprAllowIn() (ast.ExprID, bool) {
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()
	return p.parseExpr()
}

func (p *Parser) parseAssignAllowIn() (ast.ExprID, bool) {
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()
	return p.parseAssignExpr()
}

// parseAssignExpr разбирает AssignmentExpression: yield, стрелочные
// функции (через parsePrimaryExpr), условный оператор и присваивания.
// Присваивание правоассоциативно.
func (p *Parser) parseAssignExpr() (ast.ExprID, bool) {
	if p.ctx.generator && p.atWord("yield") {
		return p.parseYieldExpr()
	}

	left, ok := p.parseConditionalExpr()
	if !ok {
		return ast.NoExprID, false
	}

	opTok := p.peek()
	op, isAssign := assignOps[opTok.Kind]
	if !isAssign {
		return left, true
	}
	if op == ast.AssignPlain {
		p.checkPattern(left, false, diag.SynInvalidAssignTarget)
	} else {
		p.checkSimpleTarget(left)
	}
	p.advance()

	right, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(left).Cover(p.exprSpan(right))
	return p.arenas.Exprs.NewAssign(span, op, left, right), true
}

// parseConditionalExpr: cond ? then : else
func (p *Parser) parseConditionalExpr() (ast.ExprID, bool) {
	cond, ok := p.parseBinaryExpr(0)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	p.advance()

	then, ok := p.parseAssignAllowIn()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression", nil); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.exprSpan(cond).Cover(p.exprSpan(els))
	return p.arenas.Exprs.NewConditional(span, cond, then, els), true
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	// Парсим левую часть (унарные операторы + postfix)
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.peek()

		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break // приоритет слишком низкий
		}

		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		op := binaryOps[opTok.Kind]
		finalSpan := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.arenas.Exprs.NewBinary(finalSpan, op, left, right)
	}

	return left, true
}

type prefixKind uint8

const (
	prefixUnary prefixKind = iota
	prefixUpdate
)

type prefixOp struct {
	kind   prefixKind
	unary  ast.UnaryOp
	update ast.UpdateOp
	span   source.Span
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	var prefixes []prefixOp

	// Собираем все префиксы
	for {
		tok := p.peek()
		if op, ok := p.getUnaryOperator(tok.Kind); ok {
			p.advance()
			prefixes = append(prefixes, prefixOp{kind: prefixUnary, unary: op, span: tok.Span})
			continue
		}
		switch {
		case tok.Kind == token.PlusPlus:
			p.advance()
			prefixes = append(prefixes, prefixOp{kind: prefixUpdate, update: ast.UpdateInc, span: tok.Span})
			continue
		case tok.Kind == token.MinusMinus:
			p.advance()
			prefixes = append(prefixes, prefixOp{kind: prefixUpdate, update: ast.UpdateDec, span: tok.Span})
			continue
		case p.awaitAllowed() && p.atWord("await"):
			p.advance()
			prefixes = append(prefixes, prefixOp{kind: prefixUnary, unary: ast.UnaryAwait, span: tok.Span})
			continue
		}
		break
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		pre := prefixes[i]
		finalSpan := pre.span.Cover(p.exprSpan(expr))
		if pre.kind == prefixUpdate {
			p.checkSimpleTarget(expr)
			expr = p.arenas.Exprs.NewUpdate(finalSpan, pre.update, true, expr)
			continue
		}
		expr = p.arenas.Exprs.NewUnary(finalSpan, pre.unary, expr)
	}

	return expr, true
}

// parsePostfixExpr: LHS-выражение и постфиксные ++/-- на той же строке.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parseCallChain()
	if !ok {
		return ast.NoExprID, false
	}
	tok := p.peek()
	if (tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus) && !tok.NewlineBefore() {
		p.advance()
		p.checkSimpleTarget(expr)
		op := ast.UpdateInc
		if tok.Kind == token.MinusMinus {
			op = ast.UpdateDec
		}
		expr = p.arenas.Exprs.NewUpdate(p.exprSpan(expr).Cover(tok.Span), op, false, expr)
	}
	return expr, true
}

// parseYieldExpr: yield [*] [AssignmentExpression]; аргумент только на той же строке.
func (p *Parser) parseYieldExpr() (ast.ExprID, bool) {
	yieldTok := p.advance()
	delegate := false
	if tok := p.peek(); tok.Kind == token.Star && !tok.NewlineBefore() {
		p.advance()
		delegate = true
	}
	arg := ast.NoExprID
	if tok := p.peek(); delegate || (!tok.NewlineBefore() && canStartExpr(tok)) {
		var ok bool
		arg, ok = p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewYield(p.spanFrom(yieldTok.Span), arg, delegate), true
}

// canStartExpr: может ли токен начинать выражение (для yield и return).
func canStartExpr(tok token.Token) bool {
	switch tok.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon,
		token.Colon, token.EOF, token.KwIn, token.KwInstanceof, token.Question,
		token.FatArrow, token.TemplateMiddle, token.TemplateTail:
		return false
	}
	if _, ok := assignOps[tok.Kind]; ok && tok.Kind != token.SlashAssign {
		return false
	}
	return true
}

// checkSimpleTarget: операнд ++/-- и составного присваивания.
func (p *Parser) checkSimpleTarget(id ast.ExprID) bool {
	ex := p.arenas.Exprs.Get(id)
	if ex == nil {
		return false
	}
	switch ex.Kind {
	case ast.ExprIdent:
		return true
	case ast.ExprMember:
		if m, _ := p.arenas.Exprs.Member(id); !m.Optional {
			return true
		}
	case ast.ExprIndex:
		if ix, _ := p.arenas.Exprs.Index(id); !ix.Optional {
			return true
		}
	case ast.ExprParen:
		inner, _ := p.arenas.Exprs.Paren(id)
		return p.checkSimpleTarget(inner.Inner)
	}
	p.report(diag.SynInvalidAssignTarget, diag.SevError, ex.Span, "invalid assignment target")
	return false
}

// checkPattern проверяет, что выражение можно переинтерпретировать как
// деструктурирующий шаблон. binding запрещает member-выражения (var, параметры).
func (p *Parser) checkPattern(id ast.ExprID, binding bool, code diag.Code) bool {
	ex := p.arenas.Exprs.Get(id)
	if ex == nil {
		return true
	}
	e := p.arenas.Exprs
	switch ex.Kind {
	case ast.ExprIdent:
		return true
	case ast.ExprMember, ast.ExprIndex, ast.ExprParen:
		if !binding {
			return p.checkSimpleTarget(id)
		}
	case ast.ExprAssign:
		a, _ := e.Assign(id)
		if a.Op == ast.AssignPlain {
			return p.checkPattern(a.Left, binding, code)
		}
	case ast.ExprArray:
		arr, _ := e.Array(id)
		ok := true
		for i, el := range arr.Elems {
			if sp, isSpread := e.Spread(el); isSpread {
				if i != len(arr.Elems)-1 || arr.TrailingComma {
					p.report(code, diag.SevError, p.exprSpan(el), "rest element must be last")
					ok = false
					continue
				}
				ok = p.checkPattern(sp.Arg, binding, code) && ok
				continue
			}
			ok = p.checkPattern(el, binding, code) && ok
		}
		return ok
	case ast.ExprObject:
		obj, _ := e.Object(id)
		ok := true
		for i, prop := range obj.Props {
			switch prop.Kind {
			case ast.PropInit:
				ok = p.checkPattern(prop.Value, binding, code) && ok
			case ast.PropShorthand:
			case ast.PropSpread:
				if i != len(obj.Props)-1 {
					p.report(code, diag.SevError, prop.Span, "rest element must be last")
					ok = false
					continue
				}
				ok = p.checkPattern(prop.Value, binding, code) && ok
			default:
				p.report(code, diag.SevError, prop.Span, "invalid destructuring target")
				ok = false
			}
		}
		return ok
	}
	p.report(code, diag.SevError, ex.Span, "invalid assignment target")
	return false
}
