package parser

import (
	"testing"

	"hush/internal/ast"
	"hush/internal/diag"
)

func TestParseStatements_Positive(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []ast.StmtKind
	}{
		{"var", "var a = 1, b;", []ast.StmtKind{ast.StmtVar}},
		{"let_const", "let a = 1; const b = 2;", []ast.StmtKind{ast.StmtVar, ast.StmtVar}},
		{"function", "function f(a, b = 1, ...c) { return a; }", []ast.StmtKind{ast.StmtFunction}},
		{"async_function", "async function f() { await g(); }", []ast.StmtKind{ast.StmtFunction}},
		{"class", "class A extends B { constructor() { super(); } static x = 1; #y; get z() { return 1; } static { init(); } }", []ast.StmtKind{ast.StmtClass}},
		{"if_else", "if (a) b(); else { c(); }", []ast.StmtKind{ast.StmtIf}},
		{"for_classic", "for (let i = 0; i < n; i++) {}", []ast.StmtKind{ast.StmtFor}},
		{"for_empty", "for (;;) { break; }", []ast.StmtKind{ast.StmtFor}},
		{"for_in", "for (const k in obj) {}", []ast.StmtKind{ast.StmtForIn}},
		{"for_of", "for (const [k, v] of entries) {}", []ast.StmtKind{ast.StmtForOf}},
		{"for_of_expr_head", "for (x.y of list) ;", []ast.StmtKind{ast.StmtForOf}},
		{"for_in_init_with_in", "for (var i = (0 in a); i; ) {}", []ast.StmtKind{ast.StmtFor}},
		{"for_await", "for await (const x of xs) {}", []ast.StmtKind{ast.StmtForOf}},
		{"while", "while (a) a--;", []ast.StmtKind{ast.StmtWhile}},
		{"do_while", "do { a++ } while (a < 3)", []ast.StmtKind{ast.StmtDoWhile}},
		{"try_catch_finally", "try { a(); } catch (e) { b(e); } finally { c(); }", []ast.StmtKind{ast.StmtTry}},
		{"try_catch_no_binding", "try {} catch {}", []ast.StmtKind{ast.StmtTry}},
		{"throw", "throw new Error('x');", []ast.StmtKind{ast.StmtThrow}},
		{"switch", "switch (x) { case 1: a(); break; default: b(); }", []ast.StmtKind{ast.StmtSwitch}},
		{"labeled", "outer: for (;;) { for (;;) { continue outer; } }", []ast.StmtKind{ast.StmtLabeled}},
		{"labeled_block_break", "done: { break done; }", []ast.StmtKind{ast.StmtLabeled}},
		{"with", "with (obj) { x; }", []ast.StmtKind{ast.StmtWith}},
		{"debugger_empty", "debugger;;", []ast.StmtKind{ast.StmtDebugger, ast.StmtEmpty}},
		{"import_default", `import a from "a";`, []ast.StmtKind{ast.StmtImport}},
		{"import_named", `import a, { b, c as d } from "m";`, []ast.StmtKind{ast.StmtImport}},
		{"import_namespace", `import * as ns from "m";`, []ast.StmtKind{ast.StmtImport}},
		{"import_bare", `import "side-effect";`, []ast.StmtKind{ast.StmtImport}},
		{"import_attributes", `import data from "./d.json" with { type: "json" };`, []ast.StmtKind{ast.StmtImport}},
		{"export_named", `export { a, b as c };`, []ast.StmtKind{ast.StmtExportNamed}},
		{"export_from", `export { a } from "m";`, []ast.StmtKind{ast.StmtExportNamed}},
		{"export_all", `export * as ns from "m";`, []ast.StmtKind{ast.StmtExportAll}},
		{"export_decl", "export const a = 1;", []ast.StmtKind{ast.StmtExportDecl}},
		{"export_default_expr", "export default a + b;", []ast.StmtKind{ast.StmtExportDefault}},
		{"export_default_fn", "export default function () {}", []ast.StmtKind{ast.StmtExportDefault}},
		{"export_default_async_fn", "export default async function f() {}", []ast.StmtKind{ast.StmtExportDefault}},
		{"let_as_identifier", "let = 1;", []ast.StmtKind{ast.StmtExpr}},
		{"async_as_identifier", "async = 1;", []ast.StmtKind{ast.StmtExpr}},
		{"top_level_await", "await f();", []ast.StmtKind{ast.StmtExpr}},
		{"hashbang", "#!/usr/bin/env node\nrun();", []ast.StmtKind{ast.StmtExpr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, file := parseOK(t, tt.input)
			if len(file.Stmts) != len(tt.kinds) {
				t.Fatalf("expected %d statements, got %d", len(tt.kinds), len(file.Stmts))
			}
			for i, want := range tt.kinds {
				if got := b.Stmts.Get(file.Stmts[i]).Kind; got != want {
					t.Errorf("statement %d: expected %s, got %s", i, want, got)
				}
			}
		})
	}
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{"newline_separates", "a\nb", 2},
		{"postfix_needs_same_line", "a\n++b", 2},
		{"before_brace", "{ a }", 1},
		{"at_eof", "a = 1", 1},
		{"return_newline", "function f() { return\n1 }", 1},
		{"continued_call", "a\n(b)", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, file := parseOK(t, tt.input)
			if len(file.Stmts) != tt.count {
				t.Errorf("expected %d statements, got %d", tt.count, len(file.Stmts))
			}
		})
	}
}

func TestReturnWithoutArgumentOnNewline(t *testing.T) {
	b, file := parseOK(t, "function f() { return\nvalue }")
	decl, _ := b.Stmts.Decl(file.Stmts[0])
	fn, _ := b.Exprs.Function(decl.Decl)
	body, _ := b.Stmts.Block(fn.Body)
	if len(body.Stmts) != 2 {
		t.Fatalf("expected return and expression statement, got %d statements", len(body.Stmts))
	}
	ret, ok := b.Stmts.Arg(body.Stmts[0])
	if !ok || ret.Arg != ast.NoExprID {
		t.Errorf("expected bare return")
	}
}

func TestVarDeclarators(t *testing.T) {
	b, file := parseOK(t, "const {a, b: [c], ...rest} = obj, d = 1;")
	decl, ok := b.Stmts.Var(file.Stmts[0])
	if !ok {
		t.Fatal("expected var statement")
	}
	if decl.Kind != ast.VarConst {
		t.Errorf("expected const, got %s", decl.Kind)
	}
	if len(decl.Decls) != 2 {
		t.Fatalf("expected 2 declarators, got %d", len(decl.Decls))
	}
	if b.Exprs.Get(decl.Decls[0].Target).Kind != ast.ExprObject {
		t.Errorf("expected object pattern as first target")
	}
	if got := sexpr(b, decl.Decls[1].Init); got != "1" {
		t.Errorf("expected initializer 1, got %s", got)
	}
}

func TestClassMembers(t *testing.T) {
	b, file := parseOK(t, "class A { static #count = 0; m() {} get v() { return 1; } set v(x) {} async *gen() {} static { A.init(); } [key] = 2; }")
	decl, _ := b.Stmts.Decl(file.Stmts[0])
	class, ok := b.Exprs.Class(decl.Decl)
	if !ok {
		t.Fatal("expected class expression in declaration")
	}
	want := []ast.ClassMemberKind{
		ast.ClassField, ast.ClassMethod, ast.ClassGetter, ast.ClassSetter,
		ast.ClassMethod, ast.ClassStaticBlock, ast.ClassField,
	}
	if len(class.Members) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(class.Members))
	}
	for i, k := range want {
		if class.Members[i].Kind != k {
			t.Errorf("member %d: expected kind %d, got %d", i, k, class.Members[i].Kind)
		}
	}
	if !class.Members[0].Static {
		t.Error("expected first member to be static")
	}
	if !class.Members[6].Computed {
		t.Error("expected [key] field to be computed")
	}
	gen, _ := b.Exprs.Function(class.Members[4].Value)
	if !gen.Async || !gen.Generator {
		t.Errorf("expected async generator method, got async=%v generator=%v", gen.Async, gen.Generator)
	}
}

func TestStatementSpans(t *testing.T) {
	input := "if (foo) {\n  bar();\n}\n"
	b, file := parseOK(t, input)
	st := b.Stmts.Get(file.Stmts[0])
	if got := input[st.Span.Start:st.Span.End]; got != "if (foo) {\n  bar();\n}" {
		t.Errorf("if span covers %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"missing_operand", "a + ;", diag.SynExpectExpression},
		{"unclosed_paren", "f(a, b;", diag.SynUnclosedParen},
		{"unclosed_bracket", "a[0;", diag.SynUnclosedBracket},
		{"unclosed_else_block", "if (foo) {\n    console.log(\"Foo\");\n} else {\n    console.log(\"Bar\");\n", diag.SynUnclosedBrace},
		{"invalid_assign", "a + b = c;", diag.SynInvalidAssignTarget},
		{"invalid_update", "f()++;", diag.SynInvalidAssignTarget},
		{"optional_chain_assign", "a?.b = 1;", diag.SynInvalidAssignTarget},
		{"invalid_arrow_params", "(a + b) => a;", diag.SynInvalidArrowParams},
		{"rest_not_last", "(...a, b) => a;", diag.SynInvalidArrowParams},
		{"break_outside_loop", "break;", diag.SynIllegalBreak},
		{"continue_in_switch", "switch (x) { case 1: continue; }", diag.SynIllegalBreak},
		{"undefined_label", "for (;;) { break nowhere; }", diag.SynIllegalBreak},
		{"return_outside_function", "return 1;", diag.SynIllegalReturn},
		{"const_without_init", "const a;", diag.SynMissingInitializer},
		{"destructuring_without_init", "let {a};", diag.SynMissingInitializer},
		{"missing_semicolon", "a b", diag.SynExpectSemicolon},
		{"member_name", "a.;", diag.SynExpectIdentifier},
		{"throw_newline", "throw\nerr;", diag.SynUnexpectedToken},
		{"try_without_handler", "try {}", diag.SynUnexpectedToken},
		{"unterminated_string", "var s = \"abc;", diag.LexUnterminatedString},
		{"unterminated_template", "`abc", diag.LexUnterminatedTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag := parseSource(t, tt.input)
			if !bag.HasErrors() {
				t.Fatalf("expected errors for %q, got none", tt.input)
			}
			if !hasCode(bag, tt.code) {
				t.Errorf("expected %s for %q, got: %s", tt.code.ID(), tt.input, diagnosticsSummary(bag))
			}
		})
	}
}

func TestUnclosedNoteWithOpeningSpan(t *testing.T) {
	input := "function f() {\n  return 1;\n"
	_, _, bag := parseSource(t, input)
	for _, d := range bag.Items() {
		if d.Code != diag.SynUnclosedBrace {
			continue
		}
		if len(d.Notes) == 0 {
			t.Fatal("expected a note pointing at the opening brace")
		}
		if got := input[d.Notes[0].Span.Start:d.Notes[0].Span.End]; got != "{" {
			t.Errorf("note points at %q", got)
		}
		return
	}
	t.Fatalf("expected %s, got: %s", diag.SynUnclosedBrace.ID(), diagnosticsSummary(bag))
}

func TestRecoveryContinuesAfterError(t *testing.T) {
	b, fileID, bag := parseSource(t, "a + ;\nb();\nc();")
	if !bag.HasErrors() {
		t.Fatal("expected an error")
	}
	file := b.Files.Get(fileID)
	if len(file.Stmts) != 2 {
		t.Errorf("expected parser to recover two statements, got %d", len(file.Stmts))
	}
}

func TestMaxErrorsStopsParsing(t *testing.T) {
	input := "a +;\nb +;\nc +;\nd +;\ne +;\n"
	_, _, bag := parseSourceWithOptions(t, input, Options{MaxErrors: 2})
	if !hasCode(bag, diag.SynTooManyErrors) {
		t.Fatalf("expected %s, got: %s", diag.SynTooManyErrors.ID(), diagnosticsSummary(bag))
	}
	expected := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectExpression {
			expected++
		}
	}
	if expected != 1 {
		t.Errorf("expected parsing to stop after the limit, got %d expression errors", expected)
	}
}
