package ast

import "fmt"

// ExprVisitor is called once for every expression, after all of its
// children. target is true when the expression is written rather than read:
// assignment and update operands, for-in/of heads, destructuring elements,
// parameters and declarators. The visitor may overwrite the node in place
// (Exprs.Replace); children have already been walked at that point.
type ExprVisitor func(id ExprID, target bool)

type walker struct {
	b     *Builder
	visit ExprVisitor
}

// WalkExprs walks every expression reachable from the statements of file, post-order.
func WalkExprs(b *Builder, file FileID, visit ExprVisitor) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	w := walker{b: b, visit: visit}
	for _, st := range f.Stmts {
		w.stmt(st)
	}
}

// WalkStmt walks the expressions of a single statement subtree.
func WalkStmt(b *Builder, stmt StmtID, visit ExprVisitor) {
	w := walker{b: b, visit: visit}
	w.stmt(stmt)
}

// WalkExpr walks one expression subtree in value position.
func WalkExpr(b *Builder, expr ExprID, visit ExprVisitor) {
	w := walker{b: b, visit: visit}
	w.expr(expr)
}

func (w *walker) stmts(ids []StmtID) {
	for _, id := range ids {
		w.stmt(id)
	}
}

func (w *walker) stmt(id StmtID) {
	st := w.b.Stmts.Get(id)
	if st == nil {
		return
	}
	s := w.b.Stmts
	switch st.Kind {
	case StmtEmpty, StmtDebugger, StmtBreak, StmtContinue, StmtExportNamed, StmtExportAll:
	case StmtExpr:
		d, _ := s.ExprStmt(id)
		w.expr(d.Expr)
	case StmtVar:
		d, _ := s.Var(id)
		for _, decl := range d.Decls {
			w.target(decl.Target)
			w.expr(decl.Init)
		}
	case StmtFunction, StmtClass:
		d, _ := s.Decl(id)
		w.expr(d.Decl)
	case StmtBlock:
		d, _ := s.Block(id)
		w.stmts(d.Stmts)
	case StmtIf:
		d, _ := s.If(id)
		w.expr(d.Cond)
		w.stmt(d.Then)
		w.stmt(d.Else)
	case StmtFor:
		d, _ := s.For(id)
		w.stmt(d.Init)
		w.expr(d.Test)
		w.expr(d.Update)
		w.stmt(d.Body)
	case StmtForIn, StmtForOf:
		d, _ := s.ForInOf(id)
		w.stmt(d.LeftDecl)
		w.target(d.LeftExpr)
		w.expr(d.Right)
		w.stmt(d.Body)
	case StmtWhile:
		d, _ := s.While(id)
		w.expr(d.Cond)
		w.stmt(d.Body)
	case StmtDoWhile:
		d, _ := s.While(id)
		w.stmt(d.Body)
		w.expr(d.Cond)
	case StmtReturn, StmtThrow:
		d, _ := s.Arg(id)
		w.expr(d.Arg)
	case StmtTry:
		d, _ := s.Try(id)
		w.stmt(d.Block)
		w.target(d.Param)
		w.stmt(d.Handler)
		w.stmt(d.Finalizer)
	case StmtSwitch:
		d, _ := s.Switch(id)
		w.expr(d.Disc)
		for _, c := range d.Cases {
			w.expr(c.Test)
			w.stmts(c.Body)
		}
	case StmtLabeled:
		d, _ := s.Labeled(id)
		w.stmt(d.Body)
	case StmtWith:
		d, _ := s.With(id)
		w.expr(d.Object)
		w.stmt(d.Body)
	case StmtImport:
		d, _ := s.Import(id)
		w.expr(d.Attributes)
	case StmtExportDecl:
		d, _ := s.ExportDecl(id)
		w.stmt(d.Decl)
	case StmtExportDefault:
		d, _ := s.ExportDefault(id)
		w.stmt(d.Decl)
		w.expr(d.Expr)
	default:
		panic(fmt.Sprintf("ast: unhandled statement kind %s", st.Kind))
	}
}

func (w *walker) expr(id ExprID) {
	w.node(id, false)
}

func (w *walker) exprs(ids []ExprID) {
	for _, id := range ids {
		w.expr(id)
	}
}

func (w *walker) params(params []Param) {
	for _, p := range params {
		w.target(p.Pattern)
	}
}

// target walks an expression in a written position. Destructuring
// patterns pass the target role down to their elements.
func (w *walker) target(id ExprID) {
	ex := w.b.Exprs.Get(id)
	if ex == nil {
		return
	}
	e := w.b.Exprs
	switch ex.Kind {
	case ExprArray:
		d, _ := e.Array(id)
		for _, el := range d.Elems {
			w.target(el)
		}
	case ExprObject:
		d, _ := e.Object(id)
		for _, p := range d.Props {
			if p.Kind != PropSpread && p.Kind != PropShorthand {
				w.expr(p.Key)
			}
			w.target(p.Value)
		}
	case ExprAssign:
		d, _ := e.Assign(id)
		w.target(d.Left)
		w.expr(d.Right)
	case ExprSpread:
		d, _ := e.Spread(id)
		w.target(d.Arg)
	case ExprParen:
		d, _ := e.Paren(id)
		w.target(d.Inner)
	default:
		w.node(id, true)
		return
	}
	w.visit(id, true)
}

func (w *walker) node(id ExprID, target bool) {
	ex := w.b.Exprs.Get(id)
	if ex == nil {
		return
	}
	e := w.b.Exprs
	switch ex.Kind {
	case ExprIdent, ExprLit, ExprThis, ExprSuper, ExprPrivateName, ExprMeta:
	case ExprTemplate:
		d, _ := e.Template(id)
		w.expr(d.Tag)
		w.exprs(d.Exprs)
	case ExprArray:
		d, _ := e.Array(id)
		w.exprs(d.Elems)
	case ExprObject:
		d, _ := e.Object(id)
		for _, p := range d.Props {
			if p.Kind != PropSpread && p.Kind != PropShorthand {
				w.expr(p.Key)
			}
			w.expr(p.Value)
		}
	case ExprFunction:
		d, _ := e.Function(id)
		w.params(d.Params)
		w.stmt(d.Body)
	case ExprArrow:
		d, _ := e.Arrow(id)
		w.params(d.Params)
		w.stmt(d.Body)
		w.expr(d.Expr)
	case ExprClass:
		d, _ := e.Class(id)
		w.expr(d.Super)
		for _, m := range d.Members {
			w.expr(m.Key)
			w.expr(m.Value)
			w.stmt(m.Body)
		}
	case ExprMember:
		d, _ := e.Member(id)
		w.expr(d.Target)
	case ExprIndex:
		d, _ := e.Index(id)
		w.expr(d.Target)
		w.expr(d.Index)
	case ExprCall:
		d, _ := e.Call(id)
		w.expr(d.Callee)
		w.exprs(d.Args)
	case ExprNew:
		d, _ := e.Construct(id)
		w.expr(d.Callee)
		w.exprs(d.Args)
	case ExprUnary:
		d, _ := e.Unary(id)
		w.expr(d.Operand)
	case ExprUpdate:
		d, _ := e.Update(id)
		w.target(d.Operand)
	case ExprBinary:
		d, _ := e.Binary(id)
		w.expr(d.Left)
		w.expr(d.Right)
	case ExprAssign:
		d, _ := e.Assign(id)
		w.target(d.Left)
		w.expr(d.Right)
	case ExprConditional:
		d, _ := e.Conditional(id)
		w.expr(d.Cond)
		w.expr(d.Then)
		w.expr(d.Else)
	case ExprSequence:
		d, _ := e.Sequence(id)
		w.exprs(d.Exprs)
	case ExprSpread:
		d, _ := e.Spread(id)
		w.expr(d.Arg)
	case ExprYield:
		d, _ := e.Yield(id)
		w.expr(d.Arg)
	case ExprParen:
		d, _ := e.Paren(id)
		w.expr(d.Inner)
	case ExprImportCall:
		d, _ := e.ImportCall(id)
		w.expr(d.Arg)
		w.expr(d.Options)
	default:
		panic(fmt.Sprintf("ast: unhandled expression kind %s", ex.Kind))
	}
	w.visit(id, target)
}
