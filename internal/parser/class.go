package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/source"
	"hush/internal/token"
)

func (p *Parser) parseClassExpr() (ast.ExprID, bool) {
	data, start, ok := p.parseClass(false)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewClass(p.spanFrom(start), data), true
}

// parseClassDecl: объявление класса; имя обязательно, кроме export default.
func (p *Parser) parseClassDecl(nameOptional bool) (ast.StmtID, bool) {
	data, start, ok := p.parseClass(!nameOptional)
	if !ok {
		return ast.NoStmtID, false
	}
	class := p.arenas.Exprs.NewClass(p.spanFrom(start), data)
	return p.arenas.Stmts.NewDecl(p.spanFrom(start), ast.StmtClass, class), true
}

func (p *Parser) parseClass(needName bool) (ast.ExprClassData, source.Span, bool) {
	classTok := p.advance()
	var data ast.ExprClassData

	if tok := p.peek(); tok.Kind == token.Ident {
		p.advance()
		data.Name = p.intern(tok)
		data.NameSpan = tok.Span
	} else if needName {
		p.err(diag.SynExpectIdentifier, "expected class name")
		return data, classTok.Span, false
	}

	if _, ok := p.eat(token.KwExtends); ok {
		super, ok := p.parseCallChain()
		if !ok {
			return data, classTok.Span, false
		}
		data.Super = super
	}

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start class body", nil)
	if !ok {
		return data, classTok.Span, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if _, ok := p.eat(token.Semicolon); ok {
			continue
		}
		member, ok := p.parseClassMember()
		if !ok {
			return data, classTok.Span, false
		}
		data.Members = append(data.Members, member)
	}
	if _, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body", open); !ok {
		return data, classTok.Span, false
	}
	return data, classTok.Span, true
}

// parseClassMember: метод, аксессор, поле или static-блок.
func (p *Parser) parseClassMember() (ast.ClassMember, bool) {
	start := p.peek().Span
	mods := p.parseMethodModifiers(true)

	if mods.static && !mods.any() && p.at(token.LBrace) {
		var body ast.StmtID
		ok := true
		p.withFunction(false, false, func() {
			body, ok = p.parseBlock()
		})
		if !ok {
			return ast.ClassMember{}, false
		}
		return ast.ClassMember{Kind: ast.ClassStaticBlock, Span: p.spanFrom(start), Static: true, Body: body}, true
	}

	key, computed, ok := p.parsePropertyKey()
	if !ok {
		return ast.ClassMember{}, false
	}
	member := ast.ClassMember{Static: mods.static, Key: key, Computed: computed}

	if p.at(token.LParen) {
		fn, ok := p.parseMethod(mods.async, mods.generator, start)
		if !ok {
			return ast.ClassMember{}, false
		}
		member.Kind = ast.ClassMethod
		switch mods.accessor {
		case accessorGet:
			member.Kind = ast.ClassGetter
		case accessorSet:
			member.Kind = ast.ClassSetter
		}
		member.Value = fn
		member.Span = p.spanFrom(start)
		return member, true
	}
	if mods.any() {
		p.err(diag.SynUnexpectedToken, "expected '(' after method name")
		return ast.ClassMember{}, false
	}

	member.Kind = ast.ClassField
	if _, ok := p.eat(token.Assign); ok {
		var init ast.ExprID
		ok := true
		p.withFunction(false, false, func() {
			init, ok = p.parseAssignExpr()
		})
		if !ok {
			return ast.ClassMember{}, false
		}
		member.Value = init
	}
	member.Span = p.spanFrom(start)
	if !p.consumeSemicolon() {
		return ast.ClassMember{}, false
	}
	return member, true
}
