package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one source unit.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

// IsZero reports whether the span points nowhere (span-less diagnostics).
func (s Span) IsZero() bool {
	return s.File == NoFileID
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span enclosing both. Spans of different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.IsZero() {
		return other
	}
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether off lies within the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}
