package ast

import (
	"testing"

	"hush/internal/source"
)

type visit struct {
	id     ExprID
	target bool
}

type treeBuilder struct {
	b    *Builder
	file FileID
	off  uint32
}

func newTree() *treeBuilder {
	b := NewBuilder(Hints{})
	return &treeBuilder{b: b, file: b.NewFile(source.Span{File: 1})}
}

func (t *treeBuilder) span() source.Span {
	t.off += 2
	return source.Span{File: 1, Start: t.off - 2, End: t.off - 1}
}

func (t *treeBuilder) ident(name string) ExprID {
	return t.b.Exprs.NewIdent(t.span(), t.b.Strings.Intern(name))
}

func (t *treeBuilder) member(target ExprID, name string) ExprID {
	return t.b.Exprs.NewMember(t.span(), ExprMemberData{Target: target, Name: t.b.Strings.Intern(name)})
}

func (t *treeBuilder) exprStmt(e ExprID) {
	t.b.PushStmt(t.file, t.b.Stmts.NewExprStmt(t.span(), e))
}

func (t *treeBuilder) walk() []visit {
	var got []visit
	WalkExprs(t.b, t.file, func(id ExprID, target bool) {
		got = append(got, visit{id, target})
	})
	return got
}

func TestWalkExprs_PostOrder(t *testing.T) {
	tb := newTree()
	console := tb.ident("console")
	log := tb.member(console, "log")
	arg := tb.b.Exprs.NewLiteral(tb.span(), LitString, `"x"`)
	call := tb.b.Exprs.NewCall(tb.span(), log, []ExprID{arg}, false)
	tb.exprStmt(call)

	got := tb.walk()
	want := []visit{{console, false}, {log, false}, {arg, false}, {call, false}}
	if len(got) != len(want) {
		t.Fatalf("visits = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visit %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWalkExprs_AssignTargets(t *testing.T) {
	tb := newTree()
	console := tb.ident("console")
	lhs := tb.member(console, "log")
	rhs := tb.ident("noop")
	assign := tb.b.Exprs.NewAssign(tb.span(), AssignPlain, lhs, rhs)
	tb.exprStmt(assign)

	flags := map[ExprID]bool{}
	for _, v := range tb.walk() {
		flags[v.id] = v.target
	}
	if !flags[lhs] {
		t.Fatalf("assignment left side should be a target")
	}
	if flags[console] {
		t.Fatalf("object of a target member is read, not written")
	}
	if flags[rhs] || flags[assign] {
		t.Fatalf("right side and assignment itself are values")
	}
}

func TestWalkExprs_UpdateAndDestructuring(t *testing.T) {
	tb := newTree()
	upd := tb.member(tb.ident("console"), "count")
	tb.exprStmt(tb.b.Exprs.NewUpdate(tb.span(), UpdateInc, false, upd))

	// [a.b, ...c.d] = xs
	ab := tb.member(tb.ident("a"), "b")
	cd := tb.member(tb.ident("c"), "d")
	spread := tb.b.Exprs.NewSpread(tb.span(), cd)
	arr := tb.b.Exprs.NewArray(tb.span(), []ExprID{ab, NoExprID, spread}, false)
	tb.exprStmt(tb.b.Exprs.NewAssign(tb.span(), AssignPlain, arr, tb.ident("xs")))

	// ({k: o.p = dflt} = obj)
	op := tb.member(tb.ident("o"), "p")
	dflt := tb.ident("dflt")
	withDefault := tb.b.Exprs.NewAssign(tb.span(), AssignPlain, op, dflt)
	obj := tb.b.Exprs.NewObject(tb.span(), []Property{{Kind: PropInit, Key: tb.ident("k"), Value: withDefault}})
	tb.exprStmt(tb.b.Exprs.NewAssign(tb.span(), AssignPlain, tb.b.Exprs.NewParen(tb.span(), obj), tb.ident("obj")))

	flags := map[ExprID]bool{}
	for _, v := range tb.walk() {
		flags[v.id] = v.target
	}
	for name, id := range map[string]ExprID{"update": upd, "a.b": ab, "c.d": cd, "array": arr, "o.p": op, "object": obj} {
		if !flags[id] {
			t.Errorf("%s should be visited as a target", name)
		}
	}
	if flags[dflt] {
		t.Errorf("default value is read")
	}
}

func TestWalkExprs_ForOfHead(t *testing.T) {
	tb := newTree()
	left := tb.member(tb.ident("console"), "x")
	right := tb.ident("items")
	body := tb.b.Stmts.NewBlock(tb.span(), nil)
	loop := tb.b.Stmts.NewForInOf(tb.span(), StmtForOf, StmtForInOfData{LeftExpr: left, Right: right, Body: body})
	tb.b.PushStmt(tb.file, loop)

	flags := map[ExprID]bool{}
	for _, v := range tb.walk() {
		flags[v.id] = v.target
	}
	if !flags[left] || flags[right] {
		t.Fatalf("for-of head: left=%v right=%v", flags[left], flags[right])
	}
}

func TestReplaceWithVoidZero(t *testing.T) {
	tb := newTree()
	log := tb.member(tb.ident("console"), "log")
	call := tb.b.Exprs.NewCall(tb.span(), log, nil, false)
	before := tb.b.Exprs.Get(log).Span

	if tb.b.Exprs.IsVoidZero(log) {
		t.Fatalf("member reported as void 0")
	}
	tb.b.Exprs.ReplaceWithVoidZero(log)

	if !tb.b.Exprs.IsVoidZero(log) {
		t.Fatalf("expected void 0 after replace")
	}
	if got := tb.b.Exprs.Get(log).Span; got != before {
		t.Fatalf("span changed: %v -> %v", before, got)
	}
	un, _ := tb.b.Exprs.Unary(log)
	if tb.b.Exprs.Get(un.Operand).Span != before {
		t.Fatalf("literal should carry the replaced span")
	}
	data, _ := tb.b.Exprs.Call(call)
	if data.Callee != log {
		t.Fatalf("parent must keep pointing at the replaced slot")
	}
}

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena returned an element")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("unexpected arena state: id=%d len=%d", id, a.Len())
	}
}
