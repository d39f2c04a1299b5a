package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits periodic events during long batch runs. Heartbeats with
// no span ends in between point at a file the parser is stuck on.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// StartHeartbeat starts emitting heartbeats every interval. It returns nil
// when t is disabled or interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   t,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	gid := goroutineID()
	for n := 1; ; n++ {
		select {
		case <-h.stop:
			return
		case at := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   at,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    gid,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
			})
		}
	}
}

// Stop ends the heartbeat goroutine and waits for it. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
