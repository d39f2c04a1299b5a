package trace

import "time"

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint     // instant event, e.g. one rewritten node
	KindHeartbeat // liveness tick, bypasses the level filter
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Smaller is coarser; Level filters
// by comparing against it.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one Transform call, one batch or one CLI command
	ScopePass                    // register, parse, rewrite, emit
	ScopeFile                    // per-file events of a batch run
	ScopeNode                    // single rewritten expressions
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	GID      uint64 // goroutine that emitted the event
	Name     string // "parse", "rewrite", "file:src/a.js", ...
	Detail   string
	Extra    map[string]string
}
