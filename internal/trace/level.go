package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level includes the ones below it.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only the ring dump on panic
	LevelPhase        // Transform calls and their steps
	LevelDetail       // plus one span per batch file
	LevelDebug        // plus one event per rewritten expression
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value, case-insensitively.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == want {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope pass this level. LevelError
// stores nothing up front; it only arms the crash dump.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	default:
		return false
	}
}
