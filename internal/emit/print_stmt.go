package emit

import (
	"strings"

	"hush/internal/ast"
	"hush/internal/source"
)

func (p *printer) printStmt(id ast.StmtID) {
	st := p.stmt(id)
	stmts := p.builder.Stmts
	w := p.writer
	w.Mark(st.Span)

	switch st.Kind {
	case ast.StmtExpr:
		p.printExprStmt(need(stmts.ExprStmt(id)).Expr)

	case ast.StmtVar:
		p.printVar(need(stmts.Var(id)))
		w.WriteString(";")

	case ast.StmtFunction, ast.StmtClass:
		p.printExpr(need(stmts.Decl(id)).Decl, precPrimary)

	case ast.StmtBlock:
		p.printBlock(id)

	case ast.StmtEmpty:
		w.WriteString(";")

	case ast.StmtIf:
		d := need(stmts.If(id))
		w.WriteString("if (")
		p.printExpr(d.Cond, precSeq)
		w.WriteString(")")
		p.printBody(d.Then)
		if d.Else != ast.NoStmtID {
			if p.stmt(d.Then).Kind == ast.StmtBlock {
				w.WriteString(" ")
			} else {
				w.Newline()
			}
			w.WriteString("else")
			p.printBody(d.Else)
		}

	case ast.StmtFor:
		d := need(stmts.For(id))
		w.WriteString("for (")
		if d.Init != ast.NoStmtID {
			p.printForHead(d.Init)
		}
		w.WriteString(";")
		if d.Test != ast.NoExprID {
			w.WriteString(" ")
			p.printExpr(d.Test, precSeq)
		}
		w.WriteString(";")
		if d.Update != ast.NoExprID {
			w.WriteString(" ")
			p.printExpr(d.Update, precSeq)
		}
		w.WriteString(")")
		p.printBody(d.Body)

	case ast.StmtForIn, ast.StmtForOf:
		d := need(stmts.ForInOf(id))
		w.WriteString("for ")
		if d.Await {
			w.WriteString("await ")
		}
		w.WriteString("(")
		if d.LeftDecl != ast.NoStmtID {
			p.printForHead(d.LeftDecl)
		} else {
			p.printExpr(d.LeftExpr, precNew)
		}
		if st.Kind == ast.StmtForIn {
			w.WriteString(" in ")
			p.printExpr(d.Right, precSeq)
		} else {
			w.WriteString(" of ")
			p.printExpr(d.Right, precAssign)
		}
		w.WriteString(")")
		p.printBody(d.Body)

	case ast.StmtWhile:
		d := need(stmts.While(id))
		w.WriteString("while (")
		p.printExpr(d.Cond, precSeq)
		w.WriteString(")")
		p.printBody(d.Body)

	case ast.StmtDoWhile:
		d := need(stmts.While(id))
		w.WriteString("do")
		p.printBody(d.Body)
		if p.stmt(d.Body).Kind == ast.StmtBlock {
			w.WriteString(" ")
		} else {
			w.Newline()
		}
		w.WriteString("while (")
		p.printExpr(d.Cond, precSeq)
		w.WriteString(");")

	case ast.StmtReturn:
		d := need(stmts.Arg(id))
		w.WriteString("return")
		if d.Arg != ast.NoExprID {
			w.WriteString(" ")
			p.printExpr(d.Arg, precSeq)
		}
		w.WriteString(";")

	case ast.StmtThrow:
		w.WriteString("throw ")
		p.printExpr(need(stmts.Arg(id)).Arg, precSeq)
		w.WriteString(";")

	case ast.StmtBreak, ast.StmtContinue:
		d := need(stmts.Jump(id))
		if st.Kind == ast.StmtBreak {
			w.WriteString("break")
		} else {
			w.WriteString("continue")
		}
		if d.Label != source.NoStringID {
			w.WriteString(" " + p.name(d.Label))
		}
		w.WriteString(";")

	case ast.StmtTry:
		d := need(stmts.Try(id))
		w.WriteString("try ")
		p.printBlock(d.Block)
		if d.HasCatch {
			w.WriteString(" catch ")
			if d.Param != ast.NoExprID {
				w.WriteString("(")
				p.printExpr(d.Param, precAssign)
				w.WriteString(") ")
			}
			p.printBlock(d.Handler)
		}
		if d.Finalizer != ast.NoStmtID {
			w.WriteString(" finally ")
			p.printBlock(d.Finalizer)
		}

	case ast.StmtSwitch:
		p.printSwitch(need(stmts.Switch(id)))

	case ast.StmtLabeled:
		d := need(stmts.Labeled(id))
		w.WriteString(p.name(d.Label) + ":")
		p.printBody(d.Body)

	case ast.StmtDebugger:
		w.WriteString("debugger;")

	case ast.StmtWith:
		d := need(stmts.With(id))
		w.WriteString("with (")
		p.printExpr(d.Object, precSeq)
		w.WriteString(")")
		p.printBody(d.Body)

	case ast.StmtImport:
		p.printImport(need(stmts.Import(id)))

	case ast.StmtExportNamed:
		d := need(stmts.ExportNamed(id))
		w.WriteString("export ")
		w.WriteString(moduleSpecs(d.Specs))
		if d.Source != "" {
			w.WriteString(" from " + d.Source)
		}
		w.WriteString(";")

	case ast.StmtExportDecl:
		w.WriteString("export ")
		p.printStmt(need(stmts.ExportDecl(id)).Decl)

	case ast.StmtExportDefault:
		d := need(stmts.ExportDefault(id))
		w.WriteString("export default ")
		if d.Decl != ast.NoStmtID {
			p.printStmt(d.Decl)
			return
		}
		switch p.startsWith(d.Expr) {
		case ast.ExprFunction, ast.ExprClass:
			p.printOperand(d.Expr, precAssign, true)
		default:
			p.printExpr(d.Expr, precAssign)
		}
		w.WriteString(";")

	case ast.StmtExportAll:
		d := need(stmts.ExportAll(id))
		w.WriteString("export *")
		if d.Alias != "" {
			w.WriteString(" as " + d.Alias)
		}
		w.WriteString(" from " + d.Source + ";")

	default:
		p.fail(st.Span, "unknown statement kind %s", st.Kind)
	}
}

// printExprStmt guards against statements that would re-parse as a block,
// a declaration or a different expression.
func (p *printer) printExprStmt(id ast.ExprID) {
	switch p.startsWith(id) {
	case ast.ExprObject, ast.ExprFunction, ast.ExprClass:
		p.printOperand(id, precSeq, true)
	default:
		p.printExpr(id, precSeq)
	}
	p.writer.WriteString(";")
}

func (p *printer) printVar(d *ast.StmtVarData) {
	w := p.writer
	w.WriteString(d.Kind.String() + " ")
	for i, decl := range d.Decls {
		if i > 0 {
			w.WriteString(", ")
		}
		w.Mark(decl.Span)
		p.printExpr(decl.Target, precAssign)
		if decl.Init != ast.NoExprID {
			w.WriteString(" = ")
			p.printExpr(decl.Init, precAssign)
		}
	}
}

// printForHead prints the init of a for loop or the left side of for-in/of,
// without the trailing semicolon.
func (p *printer) printForHead(id ast.StmtID) {
	st := p.stmt(id)
	switch st.Kind {
	case ast.StmtVar:
		p.writer.Mark(st.Span)
		p.printVar(need(p.builder.Stmts.Var(id)))
	case ast.StmtExpr:
		p.printExpr(need(p.builder.Stmts.ExprStmt(id)).Expr, precSeq)
	default:
		p.fail(st.Span, "unexpected %s statement in loop head", st.Kind)
	}
}

func (p *printer) printBlock(id ast.StmtID) {
	w := p.writer
	st := p.stmt(id)
	block, ok := p.builder.Stmts.Block(id)
	if !ok {
		p.fail(st.Span, "expected block, got %s", st.Kind)
	}
	if len(block.Stmts) == 0 {
		w.WriteString("{}")
		return
	}
	w.WriteString("{")
	w.Newline()
	w.IndentPush()
	for _, s := range block.Stmts {
		p.printStmt(s)
		w.Newline()
	}
	w.IndentPop()
	w.WriteString("}")
}

// printBody prints the body of a compound statement after its head.
func (p *printer) printBody(id ast.StmtID) {
	p.writer.WriteString(" ")
	if p.stmt(id).Kind == ast.StmtBlock {
		p.printBlock(id)
		return
	}
	p.printStmt(id)
}

func (p *printer) printSwitch(d *ast.StmtSwitchData) {
	w := p.writer
	w.WriteString("switch (")
	p.printExpr(d.Disc, precSeq)
	w.WriteString(") {")
	if len(d.Cases) == 0 {
		w.WriteString("}")
		return
	}
	w.Newline()
	w.IndentPush()
	for _, c := range d.Cases {
		w.Mark(c.Span)
		if c.Test == ast.NoExprID {
			w.WriteString("default:")
		} else {
			w.WriteString("case ")
			p.printExpr(c.Test, precSeq)
			w.WriteString(":")
		}
		w.Newline()
		w.IndentPush()
		for _, s := range c.Body {
			p.printStmt(s)
			w.Newline()
		}
		w.IndentPop()
	}
	w.IndentPop()
	w.WriteString("}")
}

func (p *printer) printImport(d *ast.StmtImportData) {
	w := p.writer
	w.WriteString("import ")
	var bindings []string
	if d.Default != "" {
		bindings = append(bindings, d.Default)
	}
	if d.Namespace != "" {
		bindings = append(bindings, "* as "+d.Namespace)
	}
	if d.HasNamed {
		bindings = append(bindings, moduleSpecs(d.Named))
	}
	if len(bindings) > 0 {
		w.WriteString(strings.Join(bindings, ", ") + " from ")
	}
	w.WriteString(d.Source)
	if d.Attributes != ast.NoExprID {
		w.WriteString(" with ")
		p.printExpr(d.Attributes, precPrimary)
	}
	w.WriteString(";")
}

func moduleSpecs(specs []ast.ModuleSpec) string {
	if len(specs) == 0 {
		return "{}"
	}
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = s.Name
		if s.Alias != "" {
			parts[i] += " as " + s.Alias
		}
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
