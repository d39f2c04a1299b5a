package ast

import (
	"hush/internal/source"
)

type Hints struct{ Files, Stmts, Exprs uint }

// Builder owns every arena of one syntax tree. A tree is never shared
// between pipeline runs.
type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: source.NewInterner(),
	}
}

// HintsFor estimates arena sizes from the source length.
func HintsFor(size int) Hints {
	n := uint(max(size/8, 1<<6))
	return Hints{Files: 1, Stmts: n / 4, Exprs: n}
}

// NewFile allocates the root node of a parsed file.
func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Stmts = append(f.Stmts, stmt)
}

// Name returns the text of an interned name.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}
