package emit

import (
	"errors"
	"fmt"

	"hush/internal/ast"
	"hush/internal/source"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
	// SourceMap requests a v3 source map alongside the code.
	SourceMap bool
	// MapFile is written into the map's "file" field.
	MapFile string
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

// Result is the emitted text; Map is nil unless Options.SourceMap was set.
type Result struct {
	Code string
	Map  *SourceMap
}

// Error reports a tree the printer cannot serialize. Span is zero when
// the broken node carries none.
type Error struct {
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return "emit: " + e.Msg
}

type printer struct {
	builder *ast.Builder
	file    *ast.File
	writer  *Writer
	opt     Options
}

// Emit prints the file fid of b as JavaScript. sf is the unit the tree was
// parsed from; it backs the source map.
func Emit(sf *source.File, b *ast.Builder, fid ast.FileID, opt Options) (res *Result, err error) {
	if sf == nil {
		return nil, errors.New("emit: nil source file")
	}
	if b == nil {
		return nil, errors.New("emit: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("emit: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("emit: missing ast file")
	}

	opt = opt.withDefaults()
	var smap *mapBuilder
	if opt.SourceMap {
		smap = newMapBuilder(sf)
	}
	w := NewWriter(opt, len(sf.Content), smap)
	pr := printer{
		builder: b,
		file:    file,
		writer:  w,
		opt:     opt,
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(*Error); ok {
			res, err = nil, e
			return
		}
		panic(r)
	}()
	pr.printFile()

	res = &Result{Code: string(w.Bytes())}
	if smap != nil {
		res.Map = smap.build(opt.MapFile)
	}
	return res, nil
}

// fail aborts printing; Emit turns the panic back into an *Error.
func (p *printer) fail(sp source.Span, format string, args ...any) {
	panic(&Error{Span: sp, Msg: fmt.Sprintf(format, args...)})
}

func (p *printer) printFile() {
	for _, st := range p.file.Stmts {
		p.printStmt(st)
		p.writer.Newline()
	}
}

func (p *printer) name(id source.StringID) string {
	s, ok := p.builder.Strings.Lookup(id)
	if !ok {
		p.fail(source.Span{}, "unknown name id %d", id)
	}
	return s
}

func (p *printer) expr(id ast.ExprID) *ast.Expr {
	ex := p.builder.Exprs.Get(id)
	if ex == nil {
		p.fail(source.Span{}, "dangling expression id %d", id)
	}
	return ex
}

func (p *printer) stmt(id ast.StmtID) *ast.Stmt {
	st := p.builder.Stmts.Get(id)
	if st == nil {
		p.fail(source.Span{}, "dangling statement id %d", id)
	}
	return st
}
