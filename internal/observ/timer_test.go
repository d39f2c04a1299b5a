package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	parse := timer.Begin("parse")
	timer.End(parse, "parsed")
	emit := timer.Begin("emit")
	timer.End(emit, "")
	if d := timer.End(42, "ignored"); d != 0 {
		t.Fatalf("unknown handle should be ignored, got %v", d)
	}

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	p, ok := report.Phase("parse")
	if !ok || p.Note != "parsed" {
		t.Fatalf("Phase(parse) = %+v, %v", p, ok)
	}
	if _, ok := report.Phase("rewrite"); ok {
		t.Fatal("rewrite was never measured")
	}
	sum := report.Phases[0].DurationMS + report.Phases[1].DurationMS
	if report.TotalMS != sum {
		t.Errorf("total %v != sum of phases %v", report.TotalMS, sum)
	}

	out := report.Summary()
	if !strings.HasPrefix(out, "timings:\n  parse") || !strings.Contains(out, "// parsed") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "  total") {
		t.Errorf("summary misses the total line:\n%s", out)
	}
}

func TestEmptyReport(t *testing.T) {
	report := NewTimer().Report()
	if report.Phases != nil || report.TotalMS != 0 {
		t.Fatalf("empty timer should give an empty report, got %+v", report)
	}
}
