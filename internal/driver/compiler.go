package driver

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"hush/internal/ast"
	"hush/internal/diag"
	"hush/internal/diagfmt"
	"hush/internal/emit"
	"hush/internal/lexer"
	"hush/internal/observ"
	"hush/internal/parser"
	"hush/internal/rewrite"
	"hush/internal/source"
	"hush/internal/trace"
)

// Options are the per-call settings of Transform. The zero value is valid:
// anonymous input, human-readable errors, no source map, no error limit.
type Options struct {
	Filename    string
	ErrorFormat diagfmt.ErrorFormat
	SourceMap   bool
	MaxErrors   uint
	Timings     bool
}

// Output is a successful transform. Map is empty unless a source map was requested.
type Output struct {
	Code    string         `json:"code" msgpack:"code"`
	Map     string         `json:"map,omitempty" msgpack:"map,omitempty"`
	Stats   rewrite.Stats  `json:"-" msgpack:"-"`
	Timings *observ.Report `json:"-" msgpack:"-"`
}

// Compiler is built once and shared by concurrent Transform calls. The only
// mutable shared state is the FileSet, which serialises its own appends.
type Compiler struct {
	fs       *source.FileSet
	pass     *rewrite.Pass
	tracer   trace.Tracer
	observer PhaseObserver
	emitOpts emit.Options
}

type compilerConfig struct {
	names    []string
	fs       *source.FileSet
	tracer   trace.Tracer
	observer PhaseObserver
	indent   int
	tabs     bool
}

// CompilerOption configures NewCompiler.
type CompilerOption func(*compilerConfig)

// WithNames replaces the reserved globals (default: console).
func WithNames(names ...string) CompilerOption {
	return func(c *compilerConfig) { c.names = names }
}

// WithFileSet makes the compiler register inputs in fs.
func WithFileSet(fs *source.FileSet) CompilerOption {
	return func(c *compilerConfig) { c.fs = fs }
}

// WithTracer sets the fallback tracer used when the call context has none.
func WithTracer(t trace.Tracer) CompilerOption {
	return func(c *compilerConfig) { c.tracer = t }
}

// WithPhaseObserver reports the start and end of every Transform step to o.
// The batch progress UI uses it to show which step each file is in.
func WithPhaseObserver(o PhaseObserver) CompilerOption {
	return func(c *compilerConfig) { c.observer = o }
}

// WithIndent sets the emitter indentation.
func WithIndent(width int, tabs bool) CompilerOption {
	return func(c *compilerConfig) {
		c.indent = width
		c.tabs = tabs
	}
}

func NewCompiler(opts ...CompilerOption) *Compiler {
	cfg := compilerConfig{tracer: trace.Nop}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fs == nil {
		cfg.fs = source.NewFileSet()
	}
	if cfg.tracer == nil {
		cfg.tracer = trace.Nop
	}
	return &Compiler{
		fs:       cfg.fs,
		pass:     rewrite.New(rewrite.Options{Names: cfg.names, Tracer: cfg.tracer}),
		tracer:   cfg.tracer,
		observer: cfg.observer,
		emitOpts: emit.Options{IndentWidth: cfg.indent, UseTabs: cfg.tabs},
	}
}

// FileSet returns the registry every Transform call appends to.
func (c *Compiler) FileSet() *source.FileSet {
	return c.fs
}

// Names returns the reserved globals of the rewrite pass.
func (c *Compiler) Names() []string {
	return c.pass.Names()
}

// Transform registers src, parses it, rewrites reserved member accesses and
// prints the result. On failure it returns nil and a *Error whose Formatted
// text follows opts.ErrorFormat; there is no partial output.
//
// ctx only carries the tracer (trace.WithTracer); the call is not cancellable.
func (c *Compiler) Transform(ctx context.Context, src string, opts Options) (*Output, error) {
	r := c.newRun(ctx, opts)
	defer r.close()

	file := c.fs.Get(c.fs.AddVirtual(opts.Filename, []byte(src)))
	r.moveTo(StageRegistered)

	var (
		b   *ast.Builder
		fid ast.FileID
		out = &Output{}
	)

	err := r.step(StageParsed, "parse", func() error {
		bag := diag.NewBag(bagLimit(opts.MaxErrors))
		reporter := &diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		b = ast.NewBuilder(ast.HintsFor(len(file.Content)))
		res := parser.ParseFile(c.fs, lx, b, parser.Options{Reporter: reporter, MaxErrors: opts.MaxErrors})
		fid = res.File
		if bag.HasErrors() {
			return r.fail(ErrParse, bag, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = r.step(StageRewritten, "rewrite", func() error {
		if c.pass.ShouldRun(file.Content) {
			out.Stats = c.pass.Apply(b, fid)
		}
		return nil
	})

	err = r.step(StageEmitted, "emit", func() error {
		emitOpts := c.emitOpts
		emitOpts.SourceMap = opts.SourceMap
		res, err := safeEmit(file, b, fid, emitOpts)
		if err != nil {
			var span source.Span
			var ee *emit.Error
			if errors.As(err, &ee) {
				span = ee.Span
			}
			bag := diag.NewBag(1)
			bag.Add(diag.NewError(diag.EmitInvalidNode, span, err.Error()))
			return r.fail(ErrEmit, bag, err)
		}
		out.Code = res.Code
		if res.Map != nil {
			data, err := res.Map.Marshal()
			if err != nil {
				bag := diag.NewBag(1)
				bag.Add(diag.NewError(diag.EmitSourceMap, source.Span{}, fmt.Sprintf("failed to serialize source map: %v", err)))
				return r.fail(ErrEmit, bag, err)
			}
			out.Map = string(data)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.moveTo(StageDone)
	if opts.Timings {
		report := r.timer.Report()
		out.Timings = &report
	}
	return out, nil
}

// safeEmit turns any emitter panic into an error so nothing escapes Transform.
func safeEmit(sf *source.File, b *ast.Builder, fid ast.FileID, opts emit.Options) (res *emit.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = fmt.Errorf("emit: internal error: %v", p)
		}
	}()
	return emit.Emit(sf, b, fid, opts)
}

func bagLimit(maxErrors uint) uint16 {
	if maxErrors == 0 {
		return 0
	}
	// +1 для SynTooManyErrors
	n, err := safecast.Conv[uint16](maxErrors + 1)
	if err != nil {
		return ^uint16(0)
	}
	return n
}

// run is the state of one Transform call.
type run struct {
	c      *Compiler
	opts   Options
	tracer trace.Tracer
	root   *trace.Span
	timer  *observ.Timer
	stage  Stage
}

func (c *Compiler) newRun(ctx context.Context, opts Options) *run {
	root, ctx := trace.Start(ctx, c.tracer, trace.ScopeDriver, "transform")
	tracer := trace.FromContext(ctx)
	if opts.Filename != "" {
		root.WithExtra("file", opts.Filename)
	}
	return &run{
		c:      c,
		opts:   opts,
		tracer: tracer,
		root:   root,
		timer:  observ.NewTimer(),
		stage:  StageIdle,
	}
}

func (r *run) moveTo(next Stage) {
	if !r.stage.CanAdvance(next) {
		panic(fmt.Sprintf("driver: invalid stage transition %s -> %s", r.stage, next))
	}
	r.stage = next
}

// step runs fn as the work leading to next and records it in the timer,
// the trace stream and the phase observer.
func (r *run) step(next Stage, name string, fn func() error) error {
	r.notify(PhaseEvent{Name: name, Status: PhaseStart})
	span := trace.Begin(r.tracer, trace.ScopePass, name, r.root.ID())
	idx := r.timer.Begin(name)

	err := fn()

	note := next.String()
	if err != nil {
		note = StageError.String()
	}
	elapsed := r.timer.End(idx, note)
	span.End(note)
	r.notify(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed, Failed: err != nil})

	if err != nil {
		r.moveTo(StageError)
		return err
	}
	r.moveTo(next)
	return nil
}

func (r *run) notify(ev PhaseEvent) {
	if r.c.observer != nil {
		ev.File = r.opts.Filename
		r.c.observer(ev)
	}
}

// fail renders bag in the requested format. The stage is the last one reached.
func (r *run) fail(kind ErrorKind, bag *diag.Bag, cause error) *Error {
	bag.Sort()
	bag.Dedup()
	return &Error{
		Kind:      kind,
		Stage:     r.stage,
		Formatted: diagfmt.Format(bag, r.c.fs, r.opts.ErrorFormat),
		Bag:       bag,
		Err:       cause,
	}
}

func (r *run) close() {
	r.root.End(r.stage.String())
}
