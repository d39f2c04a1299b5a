package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the hush CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info is a trimmed snapshot of the build variables.
type Info struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

// Current snapshots the build variables; an empty Version reads as "dev".
func Current() Info {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	return Info{
		Version:    v,
		GitCommit:  strings.TrimSpace(GitCommit),
		GitMessage: strings.TrimSpace(GitMessage),
		BuildDate:  strings.TrimSpace(BuildDate),
	}
}

// Colorize paints major, minor and patch in separate colours. Anything that
// is not MAJOR.MINOR.PATCH[-suffix] is returned unchanged.
func Colorize(v string, enabled bool) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	paint := func(c *color.Color, s string) string {
		if !enabled {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	out := paint(versionMajorColor, parts[0]) + "." + paint(versionMinorColor, parts[1]) + "." + paint(versionPatchColor, parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// ValueOrUnknown substitutes "unknown" for missing metadata.
func ValueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
