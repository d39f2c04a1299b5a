package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"hush/internal/diag"
	"hush/internal/source"
)

// ParseErrorFormat maps a flag or config value onto an ErrorFormat.
// Пустая строка означает формат по умолчанию.
func ParseErrorFormat(s string) (ErrorFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "pretty":
		return ErrorFormatNormal, nil
	case "json":
		return ErrorFormatJSON, nil
	default:
		return ErrorFormatNormal, fmt.Errorf("unknown error format %q (want normal or json)", s)
	}
}

// Short печатает по одной строке на диагностику, см. diag.FormatShortDiagnostics.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// Format renders bag as the single error string returned to transform callers.
// Normal is Pretty without colour, JSON is one compact document.
func Format(bag *diag.Bag, fs *source.FileSet, format ErrorFormat) string {
	var sb strings.Builder
	switch format {
	case ErrorFormatJSON:
		// strings.Builder never fails
		_ = JSON(&sb, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeAuto})
		return strings.TrimSuffix(sb.String(), "\n")
	default:
		Pretty(&sb, bag, fs, PrettyOpts{PathMode: PathModeAuto, ShowNotes: true})
		return strings.TrimSuffix(sb.String(), "\n")
	}
}
