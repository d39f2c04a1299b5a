package boundary

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/internal/diag"
	"hush/internal/diagfmt"
	"hush/internal/driver"
	"hush/internal/source"
)

func TestMarshalJSONShape(t *testing.T) {
	data, err := Marshal(&driver.Output{Code: "(void 0)(1);\n"}, EncodingJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"(void 0)(1);\n"}`, string(data))

	data, err = Marshal(&driver.Output{Code: "a;\n", Map: `{"version":3}`}, EncodingJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"a;\n","map":"{\"version\":3}"}`, string(data))
}

func TestMarshalMsgpack(t *testing.T) {
	in := &driver.Output{Code: "(void 0)(1);\n", Map: `{"version":3}`}
	data, err := Marshal(in, EncodingMsgpack)
	require.NoError(t, err)

	out, err := Unmarshal(data, EncodingMsgpack)
	require.NoError(t, err)
	assert.Equal(t, in.Code, out.Code)
	assert.Equal(t, in.Map, out.Map)
}

func TestEncodeFailure(t *testing.T) {
	for _, enc := range []Encoding{EncodingJSON, EncodingMsgpack} {
		_, err := Encode(make(chan int), enc)
		var se *SerializationError
		require.True(t, errors.As(err, &se), enc.String())
		assert.Equal(t, enc, se.Encoding)
		assert.Contains(t, err.Error(), "failed to serialize "+enc.String())
	}

	_, err := Marshal(nil, EncodingJSON)
	assert.EqualError(t, err, "failed to serialize json: nil output")
}

func TestParseEncoding(t *testing.T) {
	enc, err := ParseEncoding(" MsgPack ")
	require.NoError(t, err)
	assert.Equal(t, EncodingMsgpack, enc)

	enc, err = ParseEncoding("json")
	require.NoError(t, err)
	assert.Equal(t, EncodingJSON, enc)

	_, err = ParseEncoding("xml")
	assert.Error(t, err)
}

func TestCall(t *testing.T) {
	c := driver.NewCompiler()
	data, err := Call(context.Background(), c, "console.log(1)", driver.Options{}, EncodingJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"(void 0)(1);\n"}`, string(data))

	_, err = Call(context.Background(), c, "if (", driver.Options{}, EncodingJSON)
	var de *driver.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, driver.ErrParse, de.Kind)
}

func TestSerializeFailure(t *testing.T) {
	cause := &SerializationError{Encoding: EncodingJSON, Err: errors.New("boom")}

	de := SerializeFailure(source.NewFileSet(), diagfmt.ErrorFormatNormal, cause)
	assert.Equal(t, driver.ErrSerialize, de.Kind)
	assert.Equal(t, driver.StageDone, de.Stage)
	assert.Equal(t, "error[BND5001]: failed to serialize json: boom", de.Formatted)
	assert.ErrorIs(t, de, cause)

	de = SerializeFailure(source.NewFileSet(), diagfmt.ErrorFormatJSON, cause)
	var decoded diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(de.Formatted), &decoded))
	require.Len(t, decoded.Diagnostics, 1)
	assert.Equal(t, diag.BoundarySerialize.ID(), decoded.Diagnostics[0].Code)
	assert.Nil(t, decoded.Diagnostics[0].Location)
}

func TestRespond(t *testing.T) {
	assert.Equal(t, Response{Code: "a;\n"}, Respond(&driver.Output{Code: "a;\n"}, nil))
	assert.Equal(t, Response{Error: "formatted"}, Respond(nil, &driver.Error{Formatted: "formatted"}))
	assert.Equal(t, Response{Error: "plain"}, Respond(nil, errors.New("plain")))
}

func TestOptionsDriverOptions(t *testing.T) {
	opts, err := Options{}.DriverOptions()
	require.NoError(t, err)
	assert.Equal(t, driver.Options{}, opts)

	opts, err = Options{Filename: "in.js", ErrorFormat: "JSON", SourceMap: true}.DriverOptions()
	require.NoError(t, err)
	assert.Equal(t, driver.Options{Filename: "in.js", ErrorFormat: diagfmt.ErrorFormatJSON, SourceMap: true}, opts)

	_, err = Options{ErrorFormat: "xml"}.DriverOptions()
	assert.ErrorContains(t, err, `unknown error format "xml"`)
}

func TestOptionsFromJSON(t *testing.T) {
	var o Options
	require.NoError(t, json.Unmarshal([]byte(`{"filename":"a.js","errorFormat":"json"}`), &o))
	opts, err := o.DriverOptions()
	require.NoError(t, err)
	assert.Equal(t, "a.js", opts.Filename)
	assert.Equal(t, diagfmt.ErrorFormatJSON, opts.ErrorFormat)
	assert.False(t, opts.SourceMap)
}
