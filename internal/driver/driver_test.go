package driver

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/diagfmt"
	"hush/internal/emit"
	"hush/internal/trace"
)

func transform(t *testing.T, c *Compiler, src string, opts Options) string {
	t.Helper()
	out, err := c.Transform(context.Background(), src, opts)
	require.NoError(t, err)
	require.NotNil(t, out)
	return out.Code
}

func TestTransformIfElse(t *testing.T) {
	c := NewCompiler()
	src := "if (foo) {\n    console.log(\"Foo\")\n} else {\n    console.log(\"Bar\")\n}\n"

	out, err := c.Transform(context.Background(), src, Options{Filename: "branch.js"})
	require.NoError(t, err)
	assert.Equal(t, "if (foo) {\n    (void 0)(\"Foo\");\n} else {\n    (void 0)(\"Bar\");\n}\n", out.Code)
	assert.Empty(t, out.Map)
	assert.Equal(t, 2, out.Stats.Rewritten)
	assert.Nil(t, out.Timings)
}

func TestTransformShapes(t *testing.T) {
	c := NewCompiler()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"nested", `console.log(console.warn("x"))`, "(void 0)((void 0)(\"x\"));\n"},
		{"computed untouched", `console["log"]("x")`, "console[\"log\"](\"x\");\n"},
		{"shadowed still rewritten", "function f(console) { console.log(1) }", "function f(console) {\n    (void 0)(1);\n}\n"},
		{"no console", "let a = b + c", "let a = b + c;\n"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transform(t, c, tt.src, Options{}))
		})
	}
}

func TestTransformIdempotent(t *testing.T) {
	c := NewCompiler()
	src := "console.log(a); if (x) console.error(b); else y = console.info;\n"
	once := transform(t, c, src, Options{})
	twice := transform(t, c, once, Options{})
	assert.Equal(t, once, twice)
}

func TestTransformCustomNames(t *testing.T) {
	c := NewCompiler(WithNames("logger", "debug"))
	assert.Equal(t, []string{"debug", "logger"}, c.Names())
	got := transform(t, c, "logger.info(1); debug.trace(2); console.log(3)", Options{})
	assert.Equal(t, "(void 0)(1);\n(void 0)(2);\nconsole.log(3);\n", got)
}

func TestTransformParseErrorNormal(t *testing.T) {
	c := NewCompiler()
	out, err := c.Transform(context.Background(), "if (", Options{})
	require.Error(t, err)
	assert.Nil(t, out)

	var te *Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, ErrParse, te.Kind)
	assert.Equal(t, StageRegistered, te.Stage)
	assert.True(t, te.Bag.HasErrors())
	assert.Contains(t, te.Formatted, "error[SYN")
	assert.Contains(t, te.Formatted, "--> <anon>:1:")
	assert.Equal(t, te.Formatted, err.Error())
}

func TestTransformParseErrorJSON(t *testing.T) {
	c := NewCompiler()
	_, err := c.Transform(context.Background(), "if (", Options{Filename: "broken.js", ErrorFormat: diagfmt.ErrorFormatJSON})
	var te *Error
	require.True(t, errors.As(err, &te))

	var decoded diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(te.Formatted), &decoded))
	require.NotEmpty(t, decoded.Diagnostics)
	assert.Equal(t, len(decoded.Diagnostics), decoded.Count)
	first := decoded.Diagnostics[0]
	assert.Equal(t, "ERROR", first.Severity)
	require.NotNil(t, first.Location)
	assert.Equal(t, "broken.js", first.Location.File)
	assert.Equal(t, uint32(1), first.Location.StartLine)
}

func TestTransformMaxErrors(t *testing.T) {
	c := NewCompiler()
	src := "let = ;\nlet = ;\nlet = ;\nlet = ;\nlet = ;\n"
	_, err := c.Transform(context.Background(), src, Options{MaxErrors: 1})
	var te *Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, ErrParse, te.Kind)
	assert.LessOrEqual(t, te.Bag.Len(), 2)
}

func TestTransformSourceMap(t *testing.T) {
	c := NewCompiler()
	out, err := c.Transform(context.Background(), "console.log(1);\nfoo();\n", Options{Filename: "map.js", SourceMap: true})
	require.NoError(t, err)
	require.NotEmpty(t, out.Map)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out.Map), &m))
	assert.EqualValues(t, 3, m["version"])
	assert.Equal(t, []any{"map.js"}, m["sources"])
	assert.NotEmpty(t, m["mappings"])
}

func TestTransformFileSetGrows(t *testing.T) {
	c := NewCompiler()
	before := c.FileSet().Len()
	transform(t, c, "a()", Options{Filename: "one.js"})
	_, _ = c.Transform(context.Background(), "if (", Options{Filename: "two.js"})
	assert.Equal(t, before+2, c.FileSet().Len())
}

func TestTransformConcurrent(t *testing.T) {
	c := NewCompiler()
	const n = 32
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src := "console.log(x)"
			if i%4 == 3 {
				src = "if ("
			}
			out, err := c.Transform(context.Background(), src, Options{})
			errs[i] = err
			if out != nil {
				results[i] = out.Code
			}
		}()
	}
	wg.Wait()
	for i := range n {
		if i%4 == 3 {
			var de *Error
			require.ErrorAs(t, errs[i], &de)
			assert.Equal(t, ErrParse, de.Kind)
			continue
		}
		require.NoError(t, errs[i])
		assert.Equal(t, "(void 0)(x);\n", results[i])
	}
}

func TestTransformPhaseObserver(t *testing.T) {
	var events []PhaseEvent
	c := NewCompiler(WithPhaseObserver(func(ev PhaseEvent) { events = append(events, ev) }))
	transform(t, c, "console.log(1)", Options{})

	var names []string
	for _, ev := range events {
		if ev.Status == PhaseEnd {
			names = append(names, ev.Name)
			assert.False(t, ev.Failed)
		}
	}
	assert.Equal(t, []string{"parse", "rewrite", "emit"}, names)
	assert.Len(t, events, 6)

	assert.Empty(t, events[0].File)

	events = nil
	_, err := c.Transform(context.Background(), "if (", Options{Filename: "bad.js"})
	require.Error(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "parse", events[1].Name)
	assert.Equal(t, "bad.js", events[1].File)
	assert.True(t, events[1].Failed)
}

func TestTransformTimings(t *testing.T) {
	c := NewCompiler()
	out, err := c.Transform(context.Background(), "console.log(1)", Options{Timings: true})
	require.NoError(t, err)
	require.NotNil(t, out.Timings)
	require.Len(t, out.Timings.Phases, 3)
	assert.Equal(t, "parse", out.Timings.Phases[0].Name)
	assert.Equal(t, "parsed", out.Timings.Phases[0].Note)
	assert.Equal(t, "emitted", out.Timings.Phases[2].Note)
}

func TestTransformTracerFromContext(t *testing.T) {
	tracer := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), tracer)
	_, err := NewCompiler().Transform(ctx, "console.log(1)", Options{Filename: "traced.js"})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, ev := range tracer.Snapshot() {
		seen[ev.Name] = true
	}
	for _, name := range []string{"transform", "parse", "rewrite", "emit"} {
		assert.True(t, seen[name], "missing span %q", name)
	}
}

func TestStageCanAdvance(t *testing.T) {
	tests := []struct {
		from, to Stage
		ok       bool
	}{
		{StageIdle, StageRegistered, true},
		{StageRegistered, StageParsed, true},
		{StageParsed, StageRewritten, true},
		{StageRewritten, StageEmitted, true},
		{StageEmitted, StageDone, true},
		{StageRegistered, StageError, true},
		{StageRewritten, StageError, true},
		{StageIdle, StageParsed, false},
		{StageParsed, StageError, false},
		{StageEmitted, StageError, false},
		{StageDone, StageError, false},
		{StageError, StageRegistered, false},
		{StageDone, StageIdle, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanAdvance(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestSafeEmitDanglingNode(t *testing.T) {
	res, err := ParseSource("dangling.js", []byte("x;"), 8)
	require.NoError(t, err)
	file := res.Builder.Files.Get(res.FileID)
	es, ok := res.Builder.Stmts.ExprStmt(file.Stmts[0])
	require.True(t, ok)
	es.Expr = ast.ExprID(9999)

	out, err := safeEmit(res.File, res.Builder, res.FileID, emit.Options{})
	assert.Nil(t, out)
	var ee *emit.Error
	require.True(t, errors.As(err, &ee))
	assert.Contains(t, ee.Msg, "dangling expression")
}

func TestSafeEmitRecoversPanic(t *testing.T) {
	res, err := ParseSource("panic.js", []byte("x;"), 8)
	require.NoError(t, err)
	res.Builder.Strings = nil

	out, err := safeEmit(res.File, res.Builder, res.FileID, emit.Options{})
	assert.Nil(t, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
}

func TestParseSourceReportsErrors(t *testing.T) {
	res, err := ParseSource("bad.js", []byte("if ("), 8)
	require.NoError(t, err)
	assert.True(t, res.Bag.HasErrors())
	assert.Equal(t, diag.SevError, res.Bag.Items()[0].Severity)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func batchTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "dist/\n")
	writeFile(t, filepath.Join(root, "a.js"), "console.log(1)\n")
	writeFile(t, filepath.Join(root, "lib", "b.mjs"), "export const x = console.debug;\n")
	writeFile(t, filepath.Join(root, "bad.cjs"), "if (\n")
	writeFile(t, filepath.Join(root, "readme.txt"), "console.log(1)\n")
	writeFile(t, filepath.Join(root, ".hidden.js"), "console.log(1)\n")
	writeFile(t, filepath.Join(root, "dist", "out.js"), "console.log(1)\n")
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.js"), "console.log(1)\n")
	writeFile(t, filepath.Join(root, "gen", "skip.js"), "console.log(1)\n")
	return root
}

func TestExpandPaths(t *testing.T) {
	root := batchTree(t)
	files, err := ExpandPaths(context.Background(), []string{root, filepath.Join(root, "a.js")}, []string{"gen/"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.js"),
		filepath.Join(root, "bad.cjs"),
		filepath.Join(root, "lib", "b.mjs"),
	}, files)

	// явный файл не фильтруется
	files, err = ExpandPaths(context.Background(), []string{filepath.Join(root, "readme.txt")}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "readme.txt")}, files)

	_, err = ExpandPaths(context.Background(), []string{filepath.Join(root, "missing.js")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process input file")
}

func TestTransformPaths(t *testing.T) {
	root := batchTree(t)
	progress := make(chan ProgressEvent, 16)
	c := NewCompiler()

	results, err := c.TransformPaths(context.Background(), []string{root}, BatchOptions{
		Jobs:     2,
		Ignore:   []string{"gen/"},
		Progress: progress,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	close(progress)

	byName := map[string]BatchResult{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r
	}
	require.NoError(t, byName["a.js"].Err)
	assert.Equal(t, "(void 0)(1);\n", byName["a.js"].Output.Code)
	require.NoError(t, byName["b.mjs"].Err)
	assert.Equal(t, "export const x = void 0;\n", byName["b.mjs"].Output.Code)

	var te *Error
	require.True(t, errors.As(byName["bad.cjs"].Err, &te))
	assert.Equal(t, ErrParse, te.Kind)
	assert.Contains(t, te.Formatted, "bad.cjs")
	assert.Equal(t, 1, Failed(results))
	assert.Equal(t, byName["bad.cjs"].Err, FirstError(results))

	counts := map[ProgressStatus]int{}
	for ev := range progress {
		counts[ev.Status]++
		assert.Equal(t, 3, ev.Total)
	}
	assert.Equal(t, 3, counts[ProgressStarted])
	assert.Equal(t, 2, counts[ProgressDone])
	assert.Equal(t, 1, counts[ProgressFailed])
}

func TestTransformPathsCancelled(t *testing.T) {
	root := batchTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCompiler().TransformPaths(ctx, []string{root}, BatchOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
