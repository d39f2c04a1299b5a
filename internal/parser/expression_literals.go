package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/token"
)

// parseArrayLiteral: [a, , ...b]; пропуски хранятся как NoExprID.
func (p *Parser) parseArrayLiteral() (ast.ExprID, bool) {
	open := p.advance() // [
	var elems []ast.ExprID
	trailing := false

	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			p.advance()
			elems = append(elems, ast.NoExprID)
			continue
		}
		elem, ok := p.parseSpreadOrAssign()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if p.at(token.RBracket) {
			trailing = true
		}
	}

	closeTok, ok := p.expectClose(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array literal", open)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(open.Span.Cover(closeTok.Span), elems, trailing), true
}

// parseObjectLiteral: { key: value, shorthand, method() {}, get x() {}, ...spread }
func (p *Parser) parseObjectLiteral() (ast.ExprID, bool) {
	open := p.advance() // {
	var props []ast.Property

	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		prop, ok := p.parseObjectProperty()
		if !ok {
			return ast.NoExprID, false
		}
		props = append(props, prop)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	closeTok, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object literal", open)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewObject(open.Span.Cover(closeTok.Span), props), true
}

func (p *Parser) parseObjectProperty() (ast.Property, bool) {
	start := p.peek().Span

	if dots, ok := p.eat(token.DotDotDot); ok {
		arg, ok := p.parseAssignExpr()
		if !ok {
			return ast.Property{}, false
		}
		return ast.Property{Kind: ast.PropSpread, Span: dots.Span.Cover(p.exprSpan(arg)), Value: arg}, true
	}

	mods := p.parseMethodModifiers(false)

	keyTok := p.peek()
	key, computed, ok := p.parsePropertyKey()
	if !ok {
		return ast.Property{}, false
	}
	if keyTok.Kind == token.PrivateName {
		p.report(diag.SynUnexpectedToken, diag.SevError, keyTok.Span, "private names are only valid in classes")
	}

	if p.at(token.LParen) {
		fn, ok := p.parseMethod(mods.async, mods.generator, start)
		if !ok {
			return ast.Property{}, false
		}
		kind := ast.PropMethod
		switch mods.accessor {
		case accessorGet:
			kind = ast.PropGetter
		case accessorSet:
			kind = ast.PropSetter
		}
		return ast.Property{Kind: kind, Span: p.spanFrom(start), Key: key, Computed: computed, Value: fn}, true
	}
	if mods.any() {
		p.err(diag.SynUnexpectedToken, "expected '(' after method name")
		return ast.Property{}, false
	}

	if _, ok := p.eat(token.Colon); ok {
		value, ok := p.parseAssignExpr()
		if !ok {
			return ast.Property{}, false
		}
		return ast.Property{Kind: ast.PropInit, Span: p.spanFrom(start), Key: key, Computed: computed, Value: value}, true
	}

	if keyTok.Kind != token.Ident || computed {
		p.err(diag.SynUnexpectedToken, "expected ':' after property name")
		return ast.Property{}, false
	}

	// shorthand; `{a = 1}` допустим только как шаблон деструктуризации
	value := key
	if _, ok := p.eat(token.Assign); ok {
		def, ok := p.parseAssignExpr()
		if !ok {
			return ast.Property{}, false
		}
		value = p.arenas.Exprs.NewAssign(p.exprSpan(key).Cover(p.exprSpan(def)), ast.AssignPlain, key, def)
	}
	return ast.Property{Kind: ast.PropShorthand, Span: p.spanFrom(start), Key: key, Value: value}, true
}

type accessorKind uint8

const (
	accessorNone accessorKind = iota
	accessorGet
	accessorSet
)

type methodModifiers struct {
	static    bool
	async     bool
	generator bool
	accessor  accessorKind
}

func (m methodModifiers) any() bool {
	return m.async || m.generator || m.accessor != accessorNone
}

// parseMethodModifiers читает static/get/set/async/* перед именем метода.
// Слово считается модификатором, только если за ним идёт имя свойства;
// иначе оно само является именем (`get() {}`, `static = 1`).
func (p *Parser) parseMethodModifiers(inClass bool) methodModifiers {
	var mods methodModifiers
	if inClass && p.atWord("static") {
		tok := p.advance()
		if next := p.peek(); isPropertyNameStart(next) || next.Kind == token.Star || next.Kind == token.LBrace {
			mods.static = true
		} else {
			p.unread(tok)
			return mods
		}
	}
	if tok := p.peek(); tok.Kind == token.Ident {
		switch tok.Text {
		case "get", "set", "async":
			p.advance()
			next := p.peek()
			isMod := isPropertyNameStart(next) || (tok.Text == "async" && next.Kind == token.Star)
			if tok.Text == "async" && next.NewlineBefore() {
				isMod = false
			}
			if !isMod {
				p.unread(tok)
				return mods
			}
			switch tok.Text {
			case "get":
				mods.accessor = accessorGet
			case "set":
				mods.accessor = accessorSet
			case "async":
				mods.async = true
			}
		}
	}
	if _, ok := p.eat(token.Star); ok {
		mods.generator = true
	}
	return mods
}

func isPropertyNameStart(tok token.Token) bool {
	switch tok.Kind {
	case token.StringLit, token.NumberLit, token.BigIntLit, token.LBracket, token.PrivateName:
		return true
	default:
		return tok.IsWord()
	}
}

// parsePropertyKey: имя свойства: IdentifierName, строка, число,
// #private или [вычисляемое выражение].
func (p *Parser) parsePropertyKey() (ast.ExprID, bool, bool) {
	tok := p.peek()
	switch {
	case tok.IsWord():
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok)), false, true
	case tok.Kind == token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, tok.Text), false, true
	case tok.Kind == token.NumberLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitNumber, tok.Text), false, true
	case tok.Kind == token.BigIntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitBigInt, tok.Text), false, true
	case tok.Kind == token.PrivateName:
		p.advance()
		return p.arenas.Exprs.NewPrivateName(tok.Span, p.internPrivate(tok)), false, true
	case tok.Kind == token.LBracket:
		open := p.advance()
		key, ok := p.parseAssignAllowIn()
		if !ok {
			return ast.NoExprID, true, false
		}
		if _, ok := p.expectClose(token.RBracket, diag.SynUnclosedBracket, "expected ']' after computed property name", open); !ok {
			return ast.NoExprID, true, false
		}
		return key, true, true
	default:
		p.err(diag.SynExpectIdentifier, "expected property name")
		return ast.NoExprID, false, false
	}
}
