package parser

import (
	"fmt"
	"strings"
	"testing"

	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/lexer"
	"hush/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.js", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.HintsFor(len(input)))

	opts.Reporter = reporter
	result := ParseFile(fs, lx, builder, opts)
	return builder, result.File, bag
}

// parseOK parses input and fails the test on any diagnostic.
func parseOK(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	builder, fileID, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	return builder, builder.Files.Get(fileID)
}

// parseExprStmt parses a single expression statement and returns its expression.
func parseExprStmt(t *testing.T, input string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	builder, file := parseOK(t, input)
	if len(file.Stmts) != 1 {
		t.Fatalf("expected 1 statement for %q, got %d", input, len(file.Stmts))
	}
	es, ok := builder.Stmts.ExprStmt(file.Stmts[0])
	if !ok {
		t.Fatalf("expected expression statement for %q, got %s", input, builder.Stmts.Get(file.Stmts[0]).Kind)
	}
	return builder, es.Expr
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// sexpr renders an expression as a compact s-expression for assertions.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	if id == ast.NoExprID {
		return "_"
	}
	e := b.Exprs
	ex := e.Get(id)
	list := func(head string, ids ...ast.ExprID) string {
		parts := []string{head}
		for _, c := range ids {
			parts = append(parts, sexpr(b, c))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}

	switch ex.Kind {
	case ast.ExprIdent:
		d, _ := e.Ident(id)
		return b.Name(d.Name)
	case ast.ExprLit:
		d, _ := e.Literal(id)
		return d.Raw
	case ast.ExprThis:
		return "this"
	case ast.ExprSuper:
		return "super"
	case ast.ExprPrivateName:
		d, _ := e.PrivateName(id)
		return "#" + b.Name(d.Name)
	case ast.ExprMember:
		d, _ := e.Member(id)
		head := "."
		if d.Optional {
			head = "?."
		}
		name := b.Name(d.Name)
		if d.Private {
			name = "#" + name
		}
		return "(" + head + " " + sexpr(b, d.Target) + " " + name + ")"
	case ast.ExprIndex:
		d, _ := e.Index(id)
		head := "[]"
		if d.Optional {
			head = "?.[]"
		}
		return list(head, d.Target, d.Index)
	case ast.ExprCall:
		d, _ := e.Call(id)
		head := "call"
		if d.Optional {
			head = "?.call"
		}
		return list(head, append([]ast.ExprID{d.Callee}, d.Args...)...)
	case ast.ExprNew:
		d, _ := e.Construct(id)
		return list("new", append([]ast.ExprID{d.Callee}, d.Args...)...)
	case ast.ExprUnary:
		d, _ := e.Unary(id)
		return list(d.Op.String(), d.Operand)
	case ast.ExprUpdate:
		d, _ := e.Update(id)
		if d.Prefix {
			return list(d.Op.String()+"pre", d.Operand)
		}
		return list(d.Op.String()+"post", d.Operand)
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		return list(d.Op.String(), d.Left, d.Right)
	case ast.ExprAssign:
		d, _ := e.Assign(id)
		return list(d.Op.String(), d.Left, d.Right)
	case ast.ExprConditional:
		d, _ := e.Conditional(id)
		return list("?", d.Cond, d.Then, d.Else)
	case ast.ExprSequence:
		d, _ := e.Sequence(id)
		return list(",", d.Exprs...)
	case ast.ExprSpread:
		d, _ := e.Spread(id)
		return list("...", d.Arg)
	case ast.ExprParen:
		d, _ := e.Paren(id)
		return list("paren", d.Inner)
	case ast.ExprArray:
		d, _ := e.Array(id)
		return list("array", d.Elems...)
	case ast.ExprYield:
		d, _ := e.Yield(id)
		if d.Delegate {
			return list("yield*", d.Arg)
		}
		return list("yield", d.Arg)
	case ast.ExprArrow:
		d, _ := e.Arrow(id)
		params := make([]ast.ExprID, 0, len(d.Params))
		for _, p := range d.Params {
			params = append(params, p.Pattern)
		}
		body := "{...}"
		if d.Expr != ast.NoExprID {
			body = sexpr(b, d.Expr)
		}
		head := "=>"
		if d.Async {
			head = "async=>"
		}
		return "(" + head + " " + list("params", params...) + " " + body + ")"
	case ast.ExprTemplate:
		d, _ := e.Template(id)
		parts := []string{"`"}
		if d.Tag != ast.NoExprID {
			parts = append(parts, "tag="+sexpr(b, d.Tag))
		}
		for i, q := range d.Quasis {
			parts = append(parts, fmt.Sprintf("%q", q))
			if i < len(d.Exprs) {
				parts = append(parts, sexpr(b, d.Exprs[i]))
			}
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprMeta:
		d, _ := e.Meta(id)
		return b.Name(d.Meta) + "." + b.Name(d.Prop)
	case ast.ExprImportCall:
		d, _ := e.ImportCall(id)
		return list("import", d.Arg, d.Options)
	default:
		return "<" + ex.Kind.String() + ">"
	}
}
