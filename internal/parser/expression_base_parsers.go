package parser

import (
	"strings"

	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/source"
	"hush/internal/token"
)

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.parseIdentExpr()

	case token.KwThis:
		p.advance()
		return p.arenas.Exprs.NewThis(tok.Span), true

	case token.KwSuper:
		p.advance()
		return p.arenas.Exprs.NewSuper(tok.Span), true

	case token.NumberLit:
		return p.parseLiteral(ast.LitNumber)
	case token.BigIntLit:
		return p.parseLiteral(ast.LitBigInt)
	case token.StringLit:
		return p.parseLiteral(ast.LitString)
	case token.KwTrue:
		return p.parseLiteral(ast.LitTrue)
	case token.KwFalse:
		return p.parseLiteral(ast.LitFalse)
	case token.KwNull:
		return p.parseLiteral(ast.LitNull)

	case token.NoSubstTemplate, token.TemplateHead:
		return p.parseTemplateLiteral(ast.NoExprID)

	case token.Slash, token.SlashAssign:
		return p.parseRegExpLiteral()

	case token.LParen:
		return p.parseParenOrArrow(nil)

	case token.LBracket:
		return p.parseArrayLiteral()

	case token.LBrace:
		return p.parseObjectLiteral()

	case token.KwFunction:
		return p.parseFunctionExpr(false, tok.Span)

	case token.KwClass:
		return p.parseClassExpr()

	case token.KwImport:
		return p.parseImportExpr()

	case token.PrivateName:
		// только `#x in obj`
		p.advance()
		return p.arenas.Exprs.NewPrivateName(tok.Span, p.internPrivate(tok)), true

	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.advance()
		return ast.NoExprID, false

	default:
		what := "'" + tok.Text + "'"
		if tok.Kind == token.EOF {
			what = "end of input"
		}
		p.err(diag.SynExpectExpression, "expected expression, got "+what)
		return ast.NoExprID, false
	}
}

func (p *Parser) parseLiteral(kind ast.LitKind) (ast.ExprID, bool) {
	tok := p.advance()
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, tok.Text), true
}

// parseRegExpLiteral пересканирует '/' или '/=' как регулярное выражение.
func (p *Parser) parseRegExpLiteral() (ast.ExprID, bool) {
	tok := p.lx.RescanRegExp(p.peek())
	if tok.Kind != token.RegExpLit {
		return ast.NoExprID, false
	}
	p.lastSpan = tok.Span
	return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitRegExp, tok.Text), true
}

// parseIdentExpr: идентификатор, `x => ...`, а также async-функции и async-стрелки.
func (p *Parser) parseIdentExpr() (ast.ExprID, bool) {
	tok := p.advance()

	if tok.Text == "async" {
		next := p.peek()
		if !next.NewlineBefore() {
			switch next.Kind {
			case token.KwFunction:
				return p.parseFunctionExpr(true, tok.Span)
			case token.Ident:
				param := p.advance()
				if !p.at(token.FatArrow) {
					p.errUnexpected("after async arrow parameter, expected '=>'")
					return ast.NoExprID, false
				}
				params := []ast.Param{{Pattern: p.arenas.Exprs.NewIdent(param.Span, p.intern(param))}}
				return p.parseArrowBody(true, tok.Span, params)
			case token.LParen:
				return p.parseParenOrArrow(&tok)
			}
		}
	}

	id := p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok))
	if next := p.peek(); next.Kind == token.FatArrow && !next.NewlineBefore() {
		return p.parseArrowBody(false, tok.Span, []ast.Param{{Pattern: id}})
	}
	return id, true
}

// parseParenOrArrow разбирает '(' ... ')' как покрывающую грамматику:
// за ней может идти '=>' (параметры стрелочной функции), иначе это
// скобочное выражение. asyncTok != nil: перед '(' стоял `async`, и без
// '=>' получается вызов async(...).
func (p *Parser) parseParenOrArrow(asyncTok *token.Token) (ast.ExprID, bool) {
	open := p.advance() // (
	start := open.Span
	if asyncTok != nil {
		start = asyncTok.Span
	}

	saved := p.noIn
	p.noIn = false
	var elems []ast.ExprID
	trailing := source.Span{}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		elem, ok := p.parseSpreadOrAssign()
		if !ok {
			p.noIn = saved
			return ast.NoExprID, false
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		comma := p.advance()
		if p.at(token.RParen) {
			trailing = comma.Span
		}
	}
	p.noIn = saved

	closeTok, ok := p.expectClose(token.RParen, diag.SynUnclosedParen, "expected ')'", open)
	if !ok {
		return ast.NoExprID, false
	}

	if next := p.peek(); next.Kind == token.FatArrow && !next.NewlineBefore() {
		params, ok := p.paramsFromCover(elems)
		if !ok {
			// продолжаем разбор тела, чтобы не терять синхронизацию
			params = nil
		}
		return p.parseArrowBody(asyncTok != nil, start, params)
	}

	if asyncTok != nil {
		callee := p.arenas.Exprs.NewIdent(asyncTok.Span, p.intern(*asyncTok))
		return p.arenas.Exprs.NewCall(start.Cover(closeTok.Span), callee, elems, false), true
	}

	if len(elems) == 0 {
		p.report(diag.SynExpectExpression, diag.SevError, open.Span.Cover(closeTok.Span), "expected expression inside '()'")
		return ast.NoExprID, false
	}
	for _, el := range elems {
		if ex := p.arenas.Exprs.Get(el); ex.Kind == ast.ExprSpread {
			p.report(diag.SynUnexpectedToken, diag.SevError, ex.Span, "unexpected '...' in parenthesized expression")
			return ast.NoExprID, false
		}
	}
	if !trailing.IsZero() {
		p.report(diag.SynUnexpectedToken, diag.SevError, trailing, "unexpected trailing ',' in parenthesized expression")
		return ast.NoExprID, false
	}

	inner := elems[0]
	if len(elems) > 1 {
		seqSpan := p.exprSpan(elems[0]).Cover(p.exprSpan(elems[len(elems)-1]))
		inner = p.arenas.Exprs.NewSequence(seqSpan, elems)
	}
	return p.arenas.Exprs.NewParen(open.Span.Cover(closeTok.Span), inner), true
}

// paramsFromCover переинтерпретирует элементы скобок как параметры.
func (p *Parser) paramsFromCover(elems []ast.ExprID) ([]ast.Param, bool) {
	params := make([]ast.Param, 0, len(elems))
	ok := true
	for i, el := range elems {
		if sp, isSpread := p.arenas.Exprs.Spread(el); isSpread {
			if i != len(elems)-1 {
				p.report(diag.SynInvalidArrowParams, diag.SevError, p.exprSpan(el), "rest parameter must be last")
				ok = false
			}
			ok = p.checkPattern(sp.Arg, true, diag.SynInvalidArrowParams) && ok
		} else {
			ok = p.checkPattern(el, true, diag.SynInvalidArrowParams) && ok
		}
		params = append(params, ast.Param{Pattern: el})
	}
	return params, ok
}

// parseTemplateLiteral: шаблонная строка; tag != NoExprID для tagged template.
// Quasis хранят сырой текст между разделителями.
func (p *Parser) parseTemplateLiteral(tag ast.ExprID) (ast.ExprID, bool) {
	first := p.advance()
	start := first.Span
	if tag != ast.NoExprID {
		start = p.exprSpan(tag)
	}
	data := ast.ExprTemplateData{Tag: tag}

	if first.Kind == token.NoSubstTemplate {
		data.Quasis = []string{templateQuasi(first.Text, "`", "`")}
		return p.arenas.Exprs.NewTemplate(start.Cover(first.Span), data), true
	}

	data.Quasis = append(data.Quasis, templateQuasi(first.Text, "`", "${"))
	for {
		expr, ok := p.parseExprAllowIn()
		if !ok {
			return ast.NoExprID, false
		}
		data.Exprs = append(data.Exprs, expr)

		if !p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "expected '}' to close template substitution")
			return ast.NoExprID, false
		}
		cont := p.lx.RescanTemplateContinuation(p.peek())
		if cont.Kind != token.TemplateMiddle && cont.Kind != token.TemplateTail {
			return ast.NoExprID, false
		}
		p.lastSpan = cont.Span
		if cont.Kind == token.TemplateTail {
			data.Quasis = append(data.Quasis, templateQuasi(cont.Text, "}", "`"))
			break
		}
		data.Quasis = append(data.Quasis, templateQuasi(cont.Text, "}", "${"))
	}
	return p.arenas.Exprs.NewTemplate(p.spanFrom(start), data), true
}

func templateQuasi(text, open, closing string) string {
	text = strings.TrimPrefix(text, open)
	return strings.TrimSuffix(text, closing)
}

// parseImportExpr: import(spec[, options]) или import.meta
func (p *Parser) parseImportExpr() (ast.ExprID, bool) {
	importTok := p.advance()
	if _, ok := p.eat(token.Dot); ok {
		prop := p.peek()
		if prop.Kind != token.Ident || prop.Text != "meta" {
			p.err(diag.SynUnexpectedToken, "expected 'meta' after 'import.'")
			return ast.NoExprID, false
		}
		p.advance()
		meta := p.arenas.Strings.Intern("import")
		return p.arenas.Exprs.NewMeta(importTok.Span.Cover(prop.Span), meta, p.intern(prop)), true
	}

	args, ok := p.parseArguments()
	if !ok {
		return ast.NoExprID, false
	}
	if len(args) == 0 || len(args) > 2 {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.spanFrom(importTok.Span), "import() expects one or two arguments")
		return ast.NoExprID, false
	}
	options := ast.NoExprID
	if len(args) == 2 {
		options = args[1]
	}
	return p.arenas.Exprs.NewImportCall(p.spanFrom(importTok.Span), args[0], options), true
}
