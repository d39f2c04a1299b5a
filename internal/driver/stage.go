package driver

// Stage is the position of one Transform call in the pipeline.
type Stage uint8

const (
	StageIdle Stage = iota
	StageRegistered
	StageParsed
	StageRewritten
	StageEmitted
	StageDone
	// StageError is absorbing: nothing leaves it.
	StageError
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageRegistered:
		return "registered"
	case StageParsed:
		return "parsed"
	case StageRewritten:
		return "rewritten"
	case StageEmitted:
		return "emitted"
	case StageDone:
		return "done"
	case StageError:
		return "error"
	default:
		return "unknown"
	}
}

// CanAdvance reports whether the pipeline may move from s to next.
// Stages advance one step at a time; only parsing and emitting may fail.
func (s Stage) CanAdvance(next Stage) bool {
	switch next {
	case StageError:
		return s == StageRegistered || s == StageRewritten
	case StageIdle:
		return false
	default:
		return s != StageError && s != StageDone && next == s+1
	}
}
