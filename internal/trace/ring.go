package trace

import (
	"io"
	"sync"
)

const defaultRingSize = 4096

// RingTracer keeps the last N events in memory. It is what --trace-mode=ring
// dumps when a command panics.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	next   int // slot of the next write
	n      int // stored events, at most len(events)
	level  Level
}

// NewRingTracer returns a ring holding up to capacity events; a non-positive
// capacity uses the default.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.events[t.next] = stored
	t.next = (t.next + 1) % len(t.events)
	t.n = min(t.n+1, len(t.events))
	t.mu.Unlock()
}

// Len reports how many events the ring holds.
func (t *RingTracer) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.n
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Event, t.n)
	oldest := (t.next - t.n + len(t.events)) % len(t.events)
	for i := range out {
		out[i] = t.events[(oldest+i)%len(t.events)]
	}
	return out
}

// Dump writes the snapshot to w in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
