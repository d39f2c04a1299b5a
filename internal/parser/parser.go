package parser

import (
	"slices"

	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/lexer"
	"hush/internal/source"
	"hush/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Bag    *diag.Bag
	Errors uint
}

// fnContext tracks what the enclosing function allows: return, await,
// yield, and which break/continue targets are in scope.
type fnContext struct {
	inFunc    bool
	async     bool
	generator bool
	loops     int
	switches  int
	labels    []string
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer    // поток токенов (Peek/Next)
	arenas   *ast.Builder    // построитель аренных узлов
	file     ast.FileID      // текущий FileID (в AST)
	fs       *source.FileSet // нужен только для спанов/путей при надобности
	opts     Options
	lastSpan source.Span  // span последнего съеденного токена для лучшей диагностики
	back     *token.Token // токен, возвращённый парсером обратно в поток
	ctx      fnContext
	noIn     bool // `in` is not a binary operator (for-loop heads)
	aborted  bool
}

// ParseFile: входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	start := source.Span{File: lx.File().ID}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(start),
		fs:       fs,
		opts:     opts,
		lastSpan: start,
	}

	p.parseItems()
	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		File:   p.file,
		Bag:    bag,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) peek() token.Token {
	if p.back != nil {
		return *p.back
	}
	return p.lx.Peek()
}

// unread pushes tok back in front of the stream. Only one token fits.
func (p *Parser) unread(tok token.Token) {
	if p.back != nil {
		panic("parser: double unread")
	}
	p.back = &tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atWord reports whether the next token is the unescaped identifier w.
func (p *Parser) atWord(w string) bool {
	tok := p.peek()
	return tok.Kind == token.Ident && tok.Text == w
}

// parseItems: основной цикл верхнего уровня: пока не EOF: parseStmt.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) && !p.aborted {
		stmtID, ok := p.parseStmt()
		if ok {
			p.arenas.PushStmt(p.file, stmtID)
			continue
		}
		p.resyncStatement()
		if p.at(token.RBrace) {
			p.advance() // лишняя '}' на верхнем уровне
		}
	}
	f := p.arenas.Files.Get(p.file)
	f.Span = f.Span.Cover(p.peek().Span)
}

// parseStatementList reads statements up to a closing brace or a case label.
func (p *Parser) parseStatementList(stops ...token.Kind) []ast.StmtID {
	var stmts []ast.StmtID
	for !p.at(token.EOF) && !p.at_or(stops...) && !p.aborted {
		stmtID, ok := p.parseStmt()
		if ok {
			stmts = append(stmts, stmtID)
			continue
		}
		p.resyncStatement()
	}
	return stmts
}

// resyncStatement: восстановление после ошибки:
// прокручиваем до ';' (съедаем), до '}' или до начала следующей строки
// со стартером statement. Всегда продвигаемся хотя бы на один токен,
// если мы не стоим на '}' или EOF.
func (p *Parser) resyncStatement() {
	if p.at(token.EOF) || p.at(token.RBrace) {
		return
	}
	first := true
	for !p.at(token.EOF) {
		tok := p.peek()
		switch {
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		case tok.Kind == token.RBrace && !first:
			return
		case !first && tok.NewlineBefore() && isStatementStarter(tok):
			return
		}
		p.advance()
		first = false
	}
}

// isStatementStarter: токены, с которых обычно начинается statement.
func isStatementStarter(tok token.Token) bool {
	switch tok.Kind {
	case token.KwVar, token.KwConst, token.KwFunction, token.KwClass, token.KwIf,
		token.KwFor, token.KwWhile, token.KwDo, token.KwReturn, token.KwThrow,
		token.KwTry, token.KwSwitch, token.KwBreak, token.KwContinue,
		token.KwImport, token.KwExport, token.KwDebugger:
		return true
	case token.Ident:
		return tok.Text == "let" || tok.Text == "async"
	default:
		return false
	}
}

// withFunction runs fn inside a fresh function context.
func (p *Parser) withFunction(async, generator bool, fn func()) {
	saved := p.ctx
	savedNoIn := p.noIn
	p.ctx = fnContext{inFunc: true, async: async, generator: generator}
	p.noIn = false
	fn()
	p.ctx = saved
	p.noIn = savedNoIn
}

// awaitAllowed: inside async functions and at module top level.
func (p *Parser) awaitAllowed() bool {
	return p.ctx.async || !p.ctx.inFunc
}
