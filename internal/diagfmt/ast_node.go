package diagfmt

import (
	"fmt"

	"hush/internal/ast"
	"hush/internal/source"
)

// nodeBuilder переводит арены дерева в ASTNodeOutput.
type nodeBuilder struct {
	b *ast.Builder
}

// BuildAST returns the tree of fileID as nested ASTNodeOutput values.
func BuildAST(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	if builder == nil {
		return ASTNodeOutput{}, fmt.Errorf("nil builder")
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file %d not found", fileID)
	}
	nb := nodeBuilder{b: builder}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, id := range file.Stmts {
		root.add(nb.stmt("", id))
	}
	return root, nil
}

func (n *ASTNodeOutput) add(child *ASTNodeOutput) {
	if child != nil {
		n.Children = append(n.Children, *child)
	}
}

func (n *ASTNodeOutput) set(key string, v any) {
	if n.Fields == nil {
		n.Fields = make(map[string]any)
	}
	n.Fields[key] = v
}

func (nb nodeBuilder) name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	if s, ok := nb.b.Strings.Lookup(id); ok {
		return s
	}
	return "<?>"
}

func (nb nodeBuilder) stmt(role string, id ast.StmtID) *ASTNodeOutput {
	if id == ast.NoStmtID {
		return nil
	}
	st := nb.b.Stmts.Get(id)
	if st == nil {
		return &ASTNodeOutput{Type: "Stmt", Role: role, Text: fmt.Sprintf("<dangling %d>", id)}
	}
	n := &ASTNodeOutput{Type: "Stmt", Kind: st.Kind.String(), Role: role, Span: st.Span}
	s := nb.b.Stmts

	switch st.Kind {
	case ast.StmtExpr:
		if d, ok := s.ExprStmt(id); ok {
			n.add(nb.expr("", d.Expr))
		}
	case ast.StmtVar:
		if d, ok := s.Var(id); ok {
			n.Text = d.Kind.String()
			for _, decl := range d.Decls {
				dn := &ASTNodeOutput{Type: "Declarator", Span: decl.Span}
				dn.add(nb.expr("target", decl.Target))
				dn.add(nb.expr("init", decl.Init))
				n.add(dn)
			}
		}
	case ast.StmtFunction, ast.StmtClass:
		if d, ok := s.Decl(id); ok {
			n.add(nb.expr("", d.Decl))
		}
	case ast.StmtBlock:
		if d, ok := s.Block(id); ok {
			for _, c := range d.Stmts {
				n.add(nb.stmt("", c))
			}
		}
	case ast.StmtIf:
		if d, ok := s.If(id); ok {
			n.add(nb.expr("cond", d.Cond))
			n.add(nb.stmt("then", d.Then))
			n.add(nb.stmt("else", d.Else))
		}
	case ast.StmtFor:
		if d, ok := s.For(id); ok {
			n.add(nb.stmt("init", d.Init))
			n.add(nb.expr("test", d.Test))
			n.add(nb.expr("update", d.Update))
			n.add(nb.stmt("body", d.Body))
		}
	case ast.StmtForIn, ast.StmtForOf:
		if d, ok := s.ForInOf(id); ok {
			if d.Await {
				n.set("await", true)
			}
			n.add(nb.stmt("left", d.LeftDecl))
			n.add(nb.expr("left", d.LeftExpr))
			n.add(nb.expr("right", d.Right))
			n.add(nb.stmt("body", d.Body))
		}
	case ast.StmtWhile, ast.StmtDoWhile:
		if d, ok := s.While(id); ok {
			n.add(nb.expr("cond", d.Cond))
			n.add(nb.stmt("body", d.Body))
		}
	case ast.StmtReturn, ast.StmtThrow:
		if d, ok := s.Arg(id); ok {
			n.add(nb.expr("", d.Arg))
		}
	case ast.StmtBreak, ast.StmtContinue:
		if d, ok := s.Jump(id); ok {
			n.Text = nb.name(d.Label)
		}
	case ast.StmtTry:
		if d, ok := s.Try(id); ok {
			n.add(nb.stmt("block", d.Block))
			if d.HasCatch {
				n.add(nb.expr("param", d.Param))
				n.add(nb.stmt("handler", d.Handler))
			}
			n.add(nb.stmt("finally", d.Finalizer))
		}
	case ast.StmtSwitch:
		if d, ok := s.Switch(id); ok {
			n.add(nb.expr("disc", d.Disc))
			for _, c := range d.Cases {
				cn := &ASTNodeOutput{Type: "Case", Span: c.Span}
				if c.Test == ast.NoExprID {
					cn.Kind = "default"
				}
				cn.add(nb.expr("test", c.Test))
				for _, b := range c.Body {
					cn.add(nb.stmt("", b))
				}
				n.add(cn)
			}
		}
	case ast.StmtLabeled:
		if d, ok := s.Labeled(id); ok {
			n.Text = nb.name(d.Label)
			n.add(nb.stmt("body", d.Body))
		}
	case ast.StmtWith:
		if d, ok := s.With(id); ok {
			n.add(nb.expr("object", d.Object))
			n.add(nb.stmt("body", d.Body))
		}
	case ast.StmtImport:
		if d, ok := s.Import(id); ok {
			n.Text = d.Source
			if d.Default != "" {
				n.set("default", d.Default)
			}
			if d.Namespace != "" {
				n.set("namespace", d.Namespace)
			}
			if d.HasNamed {
				n.set("named", specNames(d.Named))
			}
			n.add(nb.expr("attributes", d.Attributes))
		}
	case ast.StmtExportNamed:
		if d, ok := s.ExportNamed(id); ok {
			n.Text = d.Source
			n.set("specs", specNames(d.Specs))
		}
	case ast.StmtExportDecl:
		if d, ok := s.ExportDecl(id); ok {
			n.add(nb.stmt("", d.Decl))
		}
	case ast.StmtExportDefault:
		if d, ok := s.ExportDefault(id); ok {
			n.add(nb.stmt("", d.Decl))
			n.add(nb.expr("", d.Expr))
		}
	case ast.StmtExportAll:
		if d, ok := s.ExportAll(id); ok {
			n.Text = d.Source
			if d.Alias != "" {
				n.set("alias", d.Alias)
			}
		}
	}
	return n
}

func (nb nodeBuilder) expr(role string, id ast.ExprID) *ASTNodeOutput {
	if id == ast.NoExprID {
		return nil
	}
	ex := nb.b.Exprs.Get(id)
	if ex == nil {
		return &ASTNodeOutput{Type: "Expr", Role: role, Text: fmt.Sprintf("<dangling %d>", id)}
	}
	n := &ASTNodeOutput{Type: "Expr", Kind: ex.Kind.String(), Role: role, Span: ex.Span}
	e := nb.b.Exprs

	switch ex.Kind {
	case ast.ExprIdent:
		if d, ok := e.Ident(id); ok {
			n.Text = nb.name(d.Name)
		}
	case ast.ExprLit:
		if d, ok := e.Literal(id); ok {
			n.Text = d.Raw
		}
	case ast.ExprThis:
		n.Text = "this"
	case ast.ExprSuper:
		n.Text = "super"
	case ast.ExprPrivateName:
		if d, ok := e.PrivateName(id); ok {
			n.Text = "#" + nb.name(d.Name)
		}
	case ast.ExprTemplate:
		if d, ok := e.Template(id); ok {
			n.add(nb.expr("tag", d.Tag))
			n.set("quasis", d.Quasis)
			for _, x := range d.Exprs {
				n.add(nb.expr("", x))
			}
		}
	case ast.ExprArray:
		if d, ok := e.Array(id); ok {
			for _, x := range d.Elems {
				if x == ast.NoExprID {
					n.add(&ASTNodeOutput{Type: "Hole"})
					continue
				}
				n.add(nb.expr("", x))
			}
		}
	case ast.ExprObject:
		if d, ok := e.Object(id); ok {
			for _, p := range d.Props {
				pn := &ASTNodeOutput{Type: "Property", Kind: propKindName(p.Kind), Span: p.Span}
				if p.Computed {
					pn.set("computed", true)
				}
				if p.Kind != ast.PropSpread {
					pn.add(nb.expr("key", p.Key))
				}
				if p.Kind != ast.PropShorthand || p.Value != p.Key {
					pn.add(nb.expr("value", p.Value))
				}
				n.add(pn)
			}
		}
	case ast.ExprFunction:
		if d, ok := e.Function(id); ok {
			n.Text = nb.name(d.Name)
			flagFn(n, d.Async, d.Generator)
			nb.params(n, d.Params)
			n.add(nb.stmt("body", d.Body))
		}
	case ast.ExprArrow:
		if d, ok := e.Arrow(id); ok {
			flagFn(n, d.Async, false)
			nb.params(n, d.Params)
			n.add(nb.stmt("body", d.Body))
			n.add(nb.expr("body", d.Expr))
		}
	case ast.ExprClass:
		if d, ok := e.Class(id); ok {
			n.Text = nb.name(d.Name)
			n.add(nb.expr("super", d.Super))
			for _, m := range d.Members {
				mn := &ASTNodeOutput{Type: "ClassMember", Kind: classMemberName(m.Kind), Span: m.Span}
				if m.Static {
					mn.set("static", true)
				}
				if m.Computed {
					mn.set("computed", true)
				}
				mn.add(nb.expr("key", m.Key))
				mn.add(nb.expr("value", m.Value))
				mn.add(nb.stmt("body", m.Body))
				n.add(mn)
			}
		}
	case ast.ExprMember:
		if d, ok := e.Member(id); ok {
			n.Text = nb.name(d.Name)
			if d.Private {
				n.Text = "#" + n.Text
			}
			if d.Optional {
				n.set("optional", true)
			}
			n.add(nb.expr("object", d.Target))
		}
	case ast.ExprIndex:
		if d, ok := e.Index(id); ok {
			if d.Optional {
				n.set("optional", true)
			}
			n.add(nb.expr("object", d.Target))
			n.add(nb.expr("index", d.Index))
		}
	case ast.ExprCall:
		if d, ok := e.Call(id); ok {
			if d.Optional {
				n.set("optional", true)
			}
			n.add(nb.expr("callee", d.Callee))
			nb.args(n, d.Args)
		}
	case ast.ExprNew:
		if d, ok := e.Construct(id); ok {
			n.add(nb.expr("callee", d.Callee))
			nb.args(n, d.Args)
		}
	case ast.ExprUnary:
		if d, ok := e.Unary(id); ok {
			n.Text = d.Op.String()
			n.add(nb.expr("", d.Operand))
		}
	case ast.ExprUpdate:
		if d, ok := e.Update(id); ok {
			n.Text = d.Op.String()
			n.set("prefix", d.Prefix)
			n.add(nb.expr("", d.Operand))
		}
	case ast.ExprBinary:
		if d, ok := e.Binary(id); ok {
			n.Text = d.Op.String()
			n.add(nb.expr("left", d.Left))
			n.add(nb.expr("right", d.Right))
		}
	case ast.ExprAssign:
		if d, ok := e.Assign(id); ok {
			n.Text = d.Op.String()
			n.add(nb.expr("left", d.Left))
			n.add(nb.expr("right", d.Right))
		}
	case ast.ExprConditional:
		if d, ok := e.Conditional(id); ok {
			n.add(nb.expr("cond", d.Cond))
			n.add(nb.expr("then", d.Then))
			n.add(nb.expr("else", d.Else))
		}
	case ast.ExprSequence:
		if d, ok := e.Sequence(id); ok {
			for _, x := range d.Exprs {
				n.add(nb.expr("", x))
			}
		}
	case ast.ExprSpread:
		if d, ok := e.Spread(id); ok {
			n.add(nb.expr("", d.Arg))
		}
	case ast.ExprYield:
		if d, ok := e.Yield(id); ok {
			if d.Delegate {
				n.set("delegate", true)
			}
			n.add(nb.expr("", d.Arg))
		}
	case ast.ExprParen:
		if d, ok := e.Paren(id); ok {
			n.add(nb.expr("", d.Inner))
		}
	case ast.ExprMeta:
		if d, ok := e.Meta(id); ok {
			n.Text = nb.name(d.Meta) + "." + nb.name(d.Prop)
		}
	case ast.ExprImportCall:
		if d, ok := e.ImportCall(id); ok {
			n.add(nb.expr("arg", d.Arg))
			n.add(nb.expr("options", d.Options))
		}
	}
	return n
}

func (nb nodeBuilder) params(n *ASTNodeOutput, params []ast.Param) {
	for _, p := range params {
		n.add(nb.expr("param", p.Pattern))
	}
}

func (nb nodeBuilder) args(n *ASTNodeOutput, args []ast.ExprID) {
	for _, a := range args {
		n.add(nb.expr("arg", a))
	}
}

func flagFn(n *ASTNodeOutput, async, generator bool) {
	if async {
		n.set("async", true)
	}
	if generator {
		n.set("generator", true)
	}
}

func specNames(specs []ast.ModuleSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
		if s.Alias != "" {
			out[i] += " as " + s.Alias
		}
	}
	return out
}

func propKindName(k ast.PropKind) string {
	switch k {
	case ast.PropShorthand:
		return "shorthand"
	case ast.PropMethod:
		return "method"
	case ast.PropGetter:
		return "get"
	case ast.PropSetter:
		return "set"
	case ast.PropSpread:
		return "spread"
	default:
		return "init"
	}
}

func classMemberName(k ast.ClassMemberKind) string {
	switch k {
	case ast.ClassGetter:
		return "get"
	case ast.ClassSetter:
		return "set"
	case ast.ClassField:
		return "field"
	case ast.ClassStaticBlock:
		return "static_block"
	default:
		return "method"
	}
}
