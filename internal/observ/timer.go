// Package observ measures the stages of a transform for --timings.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one measured stage.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records phases in the order they begin. Each transform owns its
// Timer; it is not safe for concurrent use.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin opens a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes phase idx with a note and returns its duration. An unknown
// idx is ignored.
func (t *Timer) End(idx int, note string) time.Duration {
	if idx < 0 || idx >= len(t.phases) {
		return 0
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	return p.Dur
}

// PhaseReport is the serialized form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is what --timings prints.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the phases; TotalMS is their sum.
func (t *Timer) Report() Report {
	var report Report
	for _, p := range t.phases {
		ms := millis(p.Dur)
		report.TotalMS += ms
		report.Phases = append(report.Phases, PhaseReport{Name: p.Name, DurationMS: ms, Note: p.Note})
	}
	return report
}

// Phase looks a phase up by name.
func (r Report) Phase(name string) (PhaseReport, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseReport{}, false
}

// Summary renders the report as an aligned table, one phase per line.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
