package parser

import (
	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/token"
)

// parseImportStmt: все формы import-объявления; import(...) и
// import.meta в начале statement разбираются как выражение.
func (p *Parser) parseImportStmt() (ast.StmtID, bool) {
	importTok := p.advance()
	if p.at(token.LParen) || p.at(token.Dot) {
		p.unread(importTok)
		return p.parseExprStmt()
	}

	var data ast.StmtImportData
	if !p.at(token.StringLit) {
		if tok := p.peek(); tok.Kind == token.Ident {
			p.advance()
			data.Default = tok.Text
			if _, ok := p.eat(token.Comma); !ok {
				return p.finishImport(importTok, data)
			}
		}
		switch {
		case p.at(token.Star):
			p.advance()
			if !p.expectWord("as") {
				return ast.NoStmtID, false
			}
			tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected namespace name after 'as'", nil)
			if !ok {
				return ast.NoStmtID, false
			}
			data.Namespace = tok.Text
		case p.at(token.LBrace):
			specs, ok := p.parseModuleSpecs()
			if !ok {
				return ast.NoStmtID, false
			}
			data.HasNamed = true
			data.Named = specs
		case data.Default == "":
			p.errUnexpected("in import declaration")
			return ast.NoStmtID, false
		default:
			p.err(diag.SynUnexpectedToken, "expected '*' or '{' after ',' in import declaration")
			return ast.NoStmtID, false
		}
		return p.finishImport(importTok, data)
	}

	src := p.advance()
	data.Source = src.Text
	return p.finishImportAttributes(importTok, data)
}

// finishImport: `from "source"` и атрибуты.
func (p *Parser) finishImport(importTok token.Token, data ast.StmtImportData) (ast.StmtID, bool) {
	if !p.expectWord("from") {
		return ast.NoStmtID, false
	}
	src, ok := p.expect(token.StringLit, diag.SynUnexpectedToken, "expected module specifier string", nil)
	if !ok {
		return ast.NoStmtID, false
	}
	data.Source = src.Text
	return p.finishImportAttributes(importTok, data)
}

// finishImportAttributes: необязательное `with { type: "json" }` и ';'.
func (p *Parser) finishImportAttributes(importTok token.Token, data ast.StmtImportData) (ast.StmtID, bool) {
	if tok := p.peek(); tok.Kind == token.KwWith || (tok.Kind == token.Ident && tok.Text == "assert" && !tok.NewlineBefore()) {
		p.advance()
		if !p.at(token.LBrace) {
			p.err(diag.SynUnexpectedToken, "expected '{' after 'with' in import declaration")
			return ast.NoStmtID, false
		}
		attrs, ok := p.parseObjectLiteral()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Attributes = attrs
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewImport(p.spanFrom(importTok.Span), data), true
}

// parseModuleSpecs: { a, b as c, "str" as d }
func (p *Parser) parseModuleSpecs() ([]ast.ModuleSpec, bool) {
	open := p.advance() // {
	var specs []ast.ModuleSpec
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		tok := p.peek()
		if !tok.IsWord() && tok.Kind != token.StringLit {
			p.err(diag.SynExpectIdentifier, "expected name in import/export list")
			return nil, false
		}
		p.advance()
		spec := ast.ModuleSpec{Name: tok.Text}
		if p.atWord("as") {
			p.advance()
			alias := p.peek()
			if !alias.IsWord() && alias.Kind != token.StringLit {
				p.err(diag.SynExpectIdentifier, "expected name after 'as'")
				return nil, false
			}
			p.advance()
			spec.Alias = alias.Text
		}
		specs = append(specs, spec)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expectClose(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close import/export list", open); !ok {
		return nil, false
	}
	return specs, true
}

func (p *Parser) parseExportStmt() (ast.StmtID, bool) {
	exportTok := p.advance()
	tok := p.peek()

	switch {
	case tok.Kind == token.KwDefault:
		p.advance()
		return p.parseExportDefault(exportTok)

	case tok.Kind == token.Star:
		p.advance()
		alias := ""
		if p.atWord("as") {
			p.advance()
			name := p.peek()
			if !name.IsWord() && name.Kind != token.StringLit {
				p.err(diag.SynExpectIdentifier, "expected name after 'as'")
				return ast.NoStmtID, false
			}
			p.advance()
			alias = name.Text
		}
		if !p.expectWord("from") {
			return ast.NoStmtID, false
		}
		src, ok := p.expect(token.StringLit, diag.SynUnexpectedToken, "expected module specifier string", nil)
		if !ok || !p.consumeSemicolon() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExportAll(p.spanFrom(exportTok.Span), alias, src.Text), true

	case tok.Kind == token.LBrace:
		specs, ok := p.parseModuleSpecs()
		if !ok {
			return ast.NoStmtID, false
		}
		data := ast.StmtExportNamedData{Specs: specs}
		if p.atWord("from") {
			p.advance()
			src, ok := p.expect(token.StringLit, diag.SynUnexpectedToken, "expected module specifier string", nil)
			if !ok {
				return ast.NoStmtID, false
			}
			data.Source = src.Text
		}
		if !p.consumeSemicolon() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExportNamed(p.spanFrom(exportTok.Span), data), true

	case tok.Kind == token.KwVar, tok.Kind == token.KwConst, tok.Kind == token.KwFunction,
		tok.Kind == token.KwClass, tok.Kind == token.Ident && (tok.Text == "let" || tok.Text == "async"):
		decl, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		switch p.arenas.Stmts.Get(decl).Kind {
		case ast.StmtVar, ast.StmtFunction, ast.StmtClass:
		default:
			p.report(diag.SynUnexpectedToken, diag.SevError, p.stmtSpan(decl), "expected declaration after 'export'")
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExportDecl(p.spanFrom(exportTok.Span), decl), true

	default:
		p.errUnexpected("after 'export'")
		return ast.NoStmtID, false
	}
}

// parseExportDefault: export default function/class/выражение.
func (p *Parser) parseExportDefault(exportTok token.Token) (ast.StmtID, bool) {
	var data ast.StmtExportDefaultData
	var ok bool
	tok := p.peek()
	switch {
	case tok.Kind == token.KwFunction:
		data.Decl, ok = p.parseFunctionDecl(false, tok.Span, true)
	case tok.Kind == token.KwClass:
		data.Decl, ok = p.parseClassDecl(true)
	case tok.Kind == token.Ident && tok.Text == "async":
		p.advance()
		if next := p.peek(); next.Kind == token.KwFunction && !next.NewlineBefore() {
			data.Decl, ok = p.parseFunctionDecl(true, tok.Span, true)
			break
		}
		p.unread(tok)
		fallthrough
	default:
		data.Expr, ok = p.parseAssignAllowIn()
		if ok {
			ok = p.consumeSemicolon()
		}
	}
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExportDefault(p.spanFrom(exportTok.Span), data), true
}

// expectWord: контекстное ключевое слово (from, as), лексически Ident.
func (p *Parser) expectWord(w string) bool {
	if p.atWord(w) {
		p.advance()
		return true
	}
	p.errUnexpected("(expected '" + w + "')")
	return false
}
