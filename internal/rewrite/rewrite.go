// Package rewrite replaces member accesses on reserved globals such as
// `console.log` with the inert expression `void 0`.
//
// The match is purely syntactic: a non-optional, non-computed member access
// whose object is a bare identifier from the reserved set. A local binding
// that shadows `console` is rewritten all the same.
package rewrite

import (
	"slices"

	"hush/internal/ast"
	"hush/internal/source"
	"hush/internal/trace"

	"github.com/cloudflare/ahocorasick"
)

// DefaultNames is the reserved set used when Options.Names is empty.
var DefaultNames = []string{"console"}

type Options struct {
	// Names are the global identifiers whose members are removed.
	Names []string
	// Tracer receives one node-level event per replaced expression.
	Tracer trace.Tracer
}

// Stats counts what one Apply did.
type Stats struct {
	Visited   int
	Rewritten int
	// Skipped counts matches left alone because they are assignment targets.
	Skipped int
}

// Pass is immutable after New. Apply on distinct trees and ShouldRun are
// safe for concurrent use.
type Pass struct {
	names   []string
	matcher *ahocorasick.Matcher
	tracer  trace.Tracer
}

func New(opts Options) *Pass {
	names := opts.Names
	if len(names) == 0 {
		names = DefaultNames
	}
	names = slices.Clone(names)
	slices.Sort(names)
	names = slices.Compact(names)

	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Pass{
		names:   names,
		matcher: ahocorasick.NewStringMatcher(names),
		tracer:  tracer,
	}
}

// Names returns the reserved identifiers, sorted.
func (p *Pass) Names() []string {
	return slices.Clone(p.names)
}

// ShouldRun reports whether src mentions any reserved name at all. When it
// does not, Apply cannot change the tree.
//
// Matcher.Match keeps per-call counters inside the automaton, so only the
// thread-safe variant may be used on the shared matcher.
func (p *Pass) ShouldRun(src []byte) bool {
	return len(p.matcher.MatchThreadSafe(src)) > 0
}

// Apply rewrites every matching member access of file in place. Children
// are visited before parents, so nested matches like console.log.bind are
// handled from the inside out and the outer access sees `void 0` as its object.
func (p *Pass) Apply(b *ast.Builder, file ast.FileID) Stats {
	var stats Stats
	reserved := p.internedNames(b)
	if len(reserved) == 0 {
		// ни одно имя не встречается в дереве
		ast.WalkExprs(b, file, func(ast.ExprID, bool) { stats.Visited++ })
		return stats
	}

	debug := p.tracer.Enabled() && p.tracer.Level().ShouldEmit(trace.ScopeNode)
	ast.WalkExprs(b, file, func(id ast.ExprID, target bool) {
		stats.Visited++
		if !p.matches(b, reserved, id) {
			return
		}
		if target {
			// `console.log = f` остаётся как есть: `void 0 = f` не разбирается
			stats.Skipped++
			return
		}
		span := b.Exprs.Get(id).Span
		b.Exprs.ReplaceWithVoidZero(id)
		stats.Rewritten++
		if debug {
			p.traceRewrite(span)
		}
	})
	return stats
}

// internedNames maps reserved names to their ids in this tree's interner.
// Names that never occur in the tree are dropped.
func (p *Pass) internedNames(b *ast.Builder) map[source.StringID]struct{} {
	out := make(map[source.StringID]struct{}, len(p.names))
	for _, name := range p.names {
		if id, ok := b.Strings.Find(name); ok {
			out[id] = struct{}{}
		}
	}
	return out
}

func (p *Pass) matches(b *ast.Builder, reserved map[source.StringID]struct{}, id ast.ExprID) bool {
	m, ok := b.Exprs.Member(id)
	if !ok || m.Optional || m.Private {
		return false
	}
	obj, ok := b.Exprs.Ident(m.Target)
	if !ok {
		return false
	}
	_, ok = reserved[obj.Name]
	return ok
}

func (p *Pass) traceRewrite(span source.Span) {
	trace.Point(p.tracer, trace.ScopeNode, "rewrite", span.String(), 0)
}
