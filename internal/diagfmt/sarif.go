package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"hush/internal/diag"
	"hush/internal/source"
)

// SARIF 2.1.0 constants
const (
	SarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	SarifVersion   = "2.1.0"
)

// SarifReport is the top-level SARIF log.
type SarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SarifRun `json:"runs"`
}

type SarifRun struct {
	Tool        SarifTool         `json:"tool"`
	Invocations []SarifInvocation `json:"invocations,omitempty"`
	Results     []SarifResult     `json:"results"`
}

type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

type SarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []SarifRule `json:"rules,omitempty"`
}

type SarifRule struct {
	ID               string       `json:"id"`
	ShortDescription SarifMessage `json:"shortDescription"`
}

type SarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type SarifResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          SarifMessage    `json:"message"`
	Locations        []SarifLocation `json:"locations,omitempty"`
	RelatedLocations []SarifLocation `json:"relatedLocations,omitempty"`
}

type SarifMessage struct {
	Text string `json:"text"`
}

type SarifLocation struct {
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
	Message          *SarifMessage         `json:"message,omitempty"`
}

type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
	Region           SarifRegion           `json:"region"`
}

type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

type SarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

// BuildSarif собирает SARIF-отчёт с одним run.
func BuildSarif(bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) *SarifReport {
	run := SarifRun{
		Tool: SarifTool{Driver: SarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
		}},
		Results: []SarifResult{},
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []SarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: !bag.HasErrors(),
		}}
	}

	var codes []diag.Code
	for _, d := range bag.Items() {
		if !slices.Contains(codes, d.Code) {
			codes = append(codes, d.Code)
		}

		res := SarifResult{
			RuleID:  d.Code.ID(),
			Level:   sarifLevel(d.Severity),
			Message: SarifMessage{Text: diag.SanitizeMessage(d.Message)},
		}
		if loc, ok := sarifLocation(fs, d.Primary); ok {
			res.Locations = []SarifLocation{loc}
		}
		for _, n := range d.Notes {
			if loc, ok := sarifLocation(fs, n.Span); ok {
				loc.Message = &SarifMessage{Text: diag.SanitizeMessage(n.Msg)}
				res.RelatedLocations = append(res.RelatedLocations, loc)
			}
		}
		run.Results = append(run.Results, res)
	}

	slices.Sort(codes)
	for _, c := range codes {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SarifRule{
			ID:               c.ID(),
			ShortDescription: SarifMessage{Text: c.Title()},
		})
	}

	return &SarifReport{
		Schema:  SarifSchemaURI,
		Version: SarifVersion,
		Runs:    []SarifRun{run},
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSarif(bag, fs, meta))
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifLocation(fs *source.FileSet, sp source.Span) (SarifLocation, bool) {
	f := fileOf(fs, sp)
	if f == nil {
		return SarifLocation{}, false
	}
	start, end := f.LineCol(sp.Start), f.LineCol(sp.End)
	return SarifLocation{
		PhysicalLocation: SarifPhysicalLocation{
			ArtifactLocation: SarifArtifactLocation{URI: formatFileURI(f.DisplayName())},
			Region: SarifRegion{
				StartLine:   start.Line,
				StartColumn: start.Col,
				EndLine:     end.Line,
				EndColumn:   end.Col,
				ByteOffset:  sp.Start,
				ByteLength:  sp.Len(),
			},
		},
	}, true
}

// formatFileURI: абсолютные пути получают file://, относительные остаются как есть.
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
