package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/internal/diag"
	"hush/internal/source"
)

func parseFailure() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte("if (\n"))
	d := diag.NewError(diag.SynExpectExpression, source.Span{File: id, Start: 4, End: 4}, "expected expression").
		WithNote(source.Span{File: id, Start: 3, End: 4}, "opened here")
	return newBag(d), fs
}

func TestFormatNormal(t *testing.T) {
	bag, fs := parseFailure()
	got := Format(bag, fs, ErrorFormatNormal)
	assert.True(t, strings.HasPrefix(got, "error[SYN2002]: expected expression\n --> test.js:1:5\n"))
	assert.True(t, strings.HasSuffix(got, "  = note: test.js:1:4: opened here"))
	assert.NotContains(t, got, "\x1b[")
}

func TestFormatJSONIsOneDocument(t *testing.T) {
	bag, fs := parseFailure()
	got := Format(bag, fs, ErrorFormatJSON)
	assert.NotContains(t, got, "\n")

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))
	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "SYN2002", d.Code)
	require.NotNil(t, d.Location)
	assert.Equal(t, "test.js", d.Location.File)
	assert.Equal(t, uint32(1), d.Location.StartLine)
	assert.Equal(t, uint32(5), d.Location.StartCol)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "opened here", d.Notes[0].Message)
}

func TestJSONOptions(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.js", []byte("x"))
	bag := newBag(
		diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "first").
			WithNote(source.Span{File: id}, "hidden"),
		diag.NewError(diag.EmitInvalidNode, source.Span{}, "second"),
	)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	require.Equal(t, 2, out.Count)
	assert.Zero(t, out.Diagnostics[0].Location.StartLine)
	assert.Empty(t, out.Diagnostics[0].Notes)
	assert.Nil(t, out.Diagnostics[1].Location)

	limited := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	assert.Equal(t, 1, limited.Count)

	var sb strings.Builder
	require.NoError(t, JSON(&sb, bag, fs, JSONOpts{Indent: true}))
	assert.Contains(t, sb.String(), "\n  \"diagnostics\": [")
	assert.NotContains(t, sb.String(), "\"location\": null")
}

func TestShort(t *testing.T) {
	bag, fs := parseFailure()
	var sb strings.Builder
	require.NoError(t, Short(&sb, bag, fs, false))
	assert.Equal(t, "error SYN2002 test.js:1:5 expected expression\n", sb.String())

	sb.Reset()
	require.NoError(t, Short(&sb, diag.NewBag(0), fs, true))
	assert.Empty(t, sb.String())
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ErrorFormat
		wantErr bool
	}{
		{"", ErrorFormatNormal, false},
		{"normal", ErrorFormatNormal, false},
		{" Pretty ", ErrorFormatNormal, false},
		{"JSON", ErrorFormatJSON, false},
		{"xml", ErrorFormatNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseErrorFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "json", ErrorFormatJSON.String())
	assert.Equal(t, "normal", ErrorFormatNormal.String())
}

func TestSarif(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("src/app.js", []byte("a\nbc"))
	bag := newBag(
		diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 2, End: 4}, "bad").
			WithNote(source.Span{File: id, Start: 0, End: 1}, "see"),
		diag.New(diag.SevWarning, diag.RewriteSkipped, source.Span{}, "skipped"),
		diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "again"),
	)

	report := BuildSarif(bag, fs, SarifRunMeta{ToolName: "hush", ToolVersion: "1.0.0", InvocationArgs: []string{"hush", "parse"}})
	assert.Equal(t, SarifVersion, report.Version)
	require.Len(t, report.Runs, 1)
	run := report.Runs[0]
	assert.Equal(t, "hush", run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "SYN2001", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "RWR3002", run.Tool.Driver.Rules[1].ID)
	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)

	require.Len(t, run.Results, 3)
	first := run.Results[0]
	assert.Equal(t, "error", first.Level)
	require.Len(t, first.Locations, 1)
	loc := first.Locations[0].PhysicalLocation
	assert.Equal(t, "src/app.js", loc.ArtifactLocation.URI)
	assert.Equal(t, SarifRegion{StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 3, ByteOffset: 2, ByteLength: 2}, loc.Region)
	require.Len(t, first.RelatedLocations, 1)
	assert.Equal(t, "see", first.RelatedLocations[0].Message.Text)

	assert.Equal(t, "warning", run.Results[1].Level)
	assert.Empty(t, run.Results[1].Locations)

	var sb strings.Builder
	require.NoError(t, Sarif(&sb, bag, fs, SarifRunMeta{ToolName: "hush"}))
	assert.Contains(t, sb.String(), `"$schema": "`+SarifSchemaURI+`"`)
}

func TestFormatFileURI(t *testing.T) {
	assert.Equal(t, "file:///tmp/a.js", formatFileURI("/tmp/a.js"))
	assert.Equal(t, "lib/a.js", formatFileURI("lib/a.js"))
}
