package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/lexer"
	"hush/internal/parser"
	"hush/internal/source"
	"hush/internal/token"
)

func parseJS(t *testing.T, name, src string) (*source.FileSet, *ast.Builder, ast.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(name, []byte(src)))
	bag := diag.NewBag(16)
	reporter := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.HintsFor(len(src)))
	res := parser.ParseFile(fs, lexer.New(sf, lexer.Options{Reporter: reporter}), b, parser.Options{Reporter: reporter})
	require.False(t, bag.HasErrors(), "%v", bag.Items())
	return fs, b, res.File
}

func TestFormatASTPretty(t *testing.T) {
	fs, b, id := parseJS(t, "a.js", "console.log(1, x);\nlet y = [, 2];")

	var sb strings.Builder
	require.NoError(t, FormatASTPretty(&sb, b, id, fs))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "a.js (span: "))
	assert.Contains(t, out, "├─ Stmt Expr (span: 1:1-")
	assert.Contains(t, out, "│  └─ Expr Call (span: 1:1-1:18)")
	assert.Contains(t, out, "├─ callee: Expr Member \"log\" (span: 1:1-1:12)")
	assert.Contains(t, out, "└─ object: Expr Ident \"console\" (span: 1:1-1:8)")
	assert.Contains(t, out, "arg: Expr Lit \"1\"")
	assert.Contains(t, out, "└─ Stmt Var \"let\"")
	assert.Contains(t, out, "Declarator")
	assert.Contains(t, out, "Hole")
}

func TestFormatASTJSON(t *testing.T) {
	_, b, id := parseJS(t, "a.js", "async function* g(a) { yield* a }")

	var sb strings.Builder
	require.NoError(t, FormatASTJSON(&sb, b, id))

	var root ASTNodeOutput
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &root))
	assert.Equal(t, "File", root.Type)
	require.Len(t, root.Children, 1)
	stmt := root.Children[0]
	assert.Equal(t, "Function", stmt.Kind)
	require.Len(t, stmt.Children, 1)
	fn := stmt.Children[0]
	assert.Equal(t, "g", fn.Text)
	assert.Equal(t, true, fn.Fields["async"])
	assert.Equal(t, true, fn.Fields["generator"])
	require.Len(t, fn.Children, 2)
	assert.Equal(t, "param", fn.Children[0].Role)
	assert.Equal(t, "body", fn.Children[1].Role)
}

func TestFormatASTAfterRewriteShowsVoid(t *testing.T) {
	_, b, id := parseJS(t, "a.js", "console.log(1)")
	file := b.Files.Get(id)
	es, ok := b.Stmts.ExprStmt(file.Stmts[0])
	require.True(t, ok)
	call, ok := b.Exprs.Call(es.Expr)
	require.True(t, ok)
	b.Exprs.ReplaceWithVoidZero(call.Callee)

	root, err := BuildAST(b, id)
	require.NoError(t, err)
	callee := root.Children[0].Children[0].Children[0]
	assert.Equal(t, "Unary", callee.Kind)
	assert.Equal(t, "void", callee.Text)
}

func TestFormatASTTree(t *testing.T) {
	fs, b, id := parseJS(t, "dir/tree.js", "f(a, b)")

	var sb strings.Builder
	require.NoError(t, FormatASTTree(&sb, b, id, fs))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")

	assert.Equal(t, "tree.js", strings.TrimSpace(lines[0]))
	assert.Contains(t, sb.String(), "callee: Ident f")
	assert.Contains(t, sb.String(), "arg: Ident b")
	assert.Contains(t, sb.String(), "/")
	assert.Contains(t, sb.String(), "\\")
	for _, l := range lines {
		assert.Equal(t, strings.TrimRight(l, " "), l)
	}
}

func TestBuildASTMissingFile(t *testing.T) {
	_, err := BuildAST(ast.NewBuilder(ast.Hints{}), 3)
	assert.Error(t, err)
	_, err = BuildAST(nil, 1)
	assert.Error(t, err)
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("t.js", []byte("a // c\n+ 1")))
	lx := lexer.New(sf, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var js strings.Builder
	require.NoError(t, FormatTokensJSON(&js, toks))
	var out []TokenOutput
	require.NoError(t, json.Unmarshal([]byte(js.String()), &out))
	require.Len(t, out, 4)
	assert.Equal(t, "Ident", out[0].Kind)
	assert.Equal(t, "a", out[0].Text)
	assert.Equal(t, []string{"space", "line_comment", "newline"}, out[1].Leading)
	assert.Equal(t, "EOF", out[3].Kind)

	var pretty strings.Builder
	require.NoError(t, FormatTokensPretty(&pretty, toks, fs))
	assert.Contains(t, pretty.String(), "  1: Ident           \"a\" at 1:1-1:2\n")
	assert.Contains(t, pretty.String(), "(leading: space, line_comment, newline)")
}
