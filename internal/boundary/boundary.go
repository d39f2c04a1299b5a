// Package boundary turns pipeline results into bytes for embedders: the
// wasm entry point and the CLI's --emit json|msgpack modes.
package boundary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"hush/internal/diag"
	"hush/internal/diagfmt"
	"hush/internal/driver"
	"hush/internal/source"
)

type Encoding uint8

const (
	EncodingJSON Encoding = iota
	EncodingMsgpack
)

func (e Encoding) String() string {
	switch e {
	case EncodingMsgpack:
		return "msgpack"
	default:
		return "json"
	}
}

// ParseEncoding accepts "json" and "msgpack" (case-insensitive).
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return EncodingJSON, nil
	case "msgpack":
		return EncodingMsgpack, nil
	default:
		return EncodingJSON, fmt.Errorf("unknown encoding %q (supported: json, msgpack)", s)
	}
}

// SerializationError is returned when a value cannot be encoded.
type SerializationError struct {
	Encoding Encoding
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize %s: %v", e.Encoding, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Response is what crosses the boundary: either code (and an optional map)
// or the formatted error text.
type Response struct {
	Code  string `json:"code,omitempty" msgpack:"code,omitempty"`
	Map   string `json:"map,omitempty" msgpack:"map,omitempty"`
	Error string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Respond folds a Transform result into a Response. Errors that are not
// *driver.Error keep their plain message.
func Respond(out *driver.Output, err error) Response {
	if err != nil {
		var de *driver.Error
		if errors.As(err, &de) {
			return Response{Error: de.Formatted}
		}
		return Response{Error: err.Error()}
	}
	if out == nil {
		return Response{}
	}
	return Response{Code: out.Code, Map: out.Map}
}

// Options is the options object an embedder passes next to the source.
// The zero value selects the defaults of driver.Options.
type Options struct {
	Filename    string `json:"filename,omitempty"`
	ErrorFormat string `json:"errorFormat,omitempty"`
	SourceMap   bool   `json:"sourceMap,omitempty"`
}

// DriverOptions validates o and converts it for Transform.
func (o Options) DriverOptions() (driver.Options, error) {
	opts := driver.Options{Filename: o.Filename, SourceMap: o.SourceMap}
	if o.ErrorFormat != "" {
		f, err := diagfmt.ParseErrorFormat(o.ErrorFormat)
		if err != nil {
			return driver.Options{}, err
		}
		opts.ErrorFormat = f
	}
	return opts, nil
}

// Encode serializes v; any failure is a *SerializationError.
func Encode(v any, enc Encoding) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch enc {
	case EncodingMsgpack:
		data, err = msgpack.Marshal(v)
	default:
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, &SerializationError{Encoding: enc, Err: err}
	}
	return data, nil
}

// Marshal serializes a successful Output as {code, map}.
func Marshal(out *driver.Output, enc Encoding) ([]byte, error) {
	if out == nil {
		return nil, &SerializationError{Encoding: enc, Err: errors.New("nil output")}
	}
	return Encode(out, enc)
}

// Unmarshal reads back what Marshal wrote.
func Unmarshal(data []byte, enc Encoding) (*driver.Output, error) {
	var out driver.Output
	var err error
	switch enc {
	case EncodingMsgpack:
		err = msgpack.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s output: %w", enc, err)
	}
	return &out, nil
}

// Call runs Transform and serializes the result. Serialization failures
// come back as *driver.Error with Kind ErrSerialize, formatted like every
// other pipeline error.
func Call(ctx context.Context, c *driver.Compiler, src string, opts driver.Options, enc Encoding) ([]byte, error) {
	out, err := c.Transform(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	data, err := Marshal(out, enc)
	if err != nil {
		return nil, SerializeFailure(c.FileSet(), opts.ErrorFormat, err)
	}
	return data, nil
}

// SerializeFailure reports an encoding failure of an already transformed
// Output the way Transform reports its own failures: a *driver.Error of
// Kind ErrSerialize carrying one BND5001 diagnostic rendered in format.
func SerializeFailure(fs *source.FileSet, format diagfmt.ErrorFormat, cause error) *driver.Error {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.BoundarySerialize, source.Span{}, cause.Error()))
	return &driver.Error{
		Kind:      driver.ErrSerialize,
		Stage:     driver.StageDone,
		Formatted: diagfmt.Format(bag, fs, format),
		Bag:       bag,
		Err:       cause,
	}
}
