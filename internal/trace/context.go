package trace

import "context"

type ctxKey struct{}

type spanCtxKey struct{}

// FromContext returns the Tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil t is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext is the part of an open span that nested work needs to know.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// CurrentSpan returns the innermost span recorded in ctx, zero if none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanCtxKey{}).(SpanContext)
	return sc
}

// WithSpanContext records sc as the innermost span of ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// Resolve picks the tracer for work started under ctx: the context's own
// tracer when it is enabled, fallback otherwise.
func Resolve(ctx context.Context, fallback Tracer) Tracer {
	if t := FromContext(ctx); t.Enabled() {
		return t
	}
	if fallback == nil {
		return Nop
	}
	return fallback
}

// Start opens a span under the current span of ctx and returns a context
// that carries both the tracer and the new span, so nested Start calls nest.
func Start(ctx context.Context, fallback Tracer, scope Scope, name string) (*Span, context.Context) {
	t := Resolve(ctx, fallback)
	span := Begin(t, scope, name, CurrentSpan(ctx).SpanID)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = WithTracer(ctx, t)
	if span.ID() != 0 {
		ctx = WithSpanContext(ctx, SpanContext{SpanID: span.ID(), GID: span.gid})
	}
	return span, ctx
}
