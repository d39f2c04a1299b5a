package driver

import (
	"hush/internal/diag"
)

// ErrorKind classifies a failed Transform.
type ErrorKind uint8

const (
	// ErrParse: the input is not valid JavaScript. Always carries a span.
	ErrParse ErrorKind = iota + 1
	// ErrEmit: the tree could not be printed. May be span-less.
	ErrEmit
	// ErrSerialize: the output could not be encoded for the caller.
	ErrSerialize
)

func (k ErrorKind) String() string {
	switch k {
	case ErrParse:
		return "parse error"
	case ErrEmit:
		return "emit error"
	case ErrSerialize:
		return "serialization error"
	default:
		return "unknown error"
	}
}

// Error is the only error type Transform returns. Formatted is already
// rendered in the requested ErrorFormat and is what callers show.
type Error struct {
	Kind      ErrorKind
	Stage     Stage // последняя успешно пройденная стадия
	Formatted string
	Bag       *diag.Bag
	Err       error
}

func (e *Error) Error() string {
	return e.Formatted
}

func (e *Error) Unwrap() error {
	return e.Err
}
