package driver

import "time"

type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent is sent at both ends of every Transform step. Elapsed and
// Failed are set on PhaseEnd only.
type PhaseEvent struct {
	File    string // Options.Filename of the call, empty for anonymous input
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Failed  bool
}

// PhaseObserver runs synchronously on the goroutine calling Transform, so
// a slow observer slows the transform down.
type PhaseObserver func(PhaseEvent)
