package version

import (
	"strings"
	"testing"
)

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origBuildDate := Version, BuildDate
	defer func() { Version, BuildDate = origVersion, origBuildDate }()

	// как при сборке с -ldflags
	Version = "1.2.3"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", info.Version, "1.2.3")
	}
	if info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", info.BuildDate, "2024-01-15T10:30:00Z")
	}
}

func TestCurrent_TrimsAndDefaults(t *testing.T) {
	origVersion, origGitCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origGitCommit }()

	Version = "  "
	GitCommit = " abc123 \n"
	info := Current()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want %q", info.Version, "dev")
	}
	if info.GitCommit != "abc123" {
		t.Errorf("GitCommit = %q, want %q", info.GitCommit, "abc123")
	}
}

func TestColorize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1", "1.2.3-rc.1"},
		{"dev", "dev"},
	}
	for _, tt := range tests {
		if got := Colorize(tt.in, false); got != tt.want {
			t.Errorf("Colorize(%q, false) = %q, want %q", tt.in, got, tt.want)
		}
	}

	colored := Colorize("1.2.3", true)
	if colored == "1.2.3" || !strings.Contains(colored, "\x1b[") {
		t.Errorf("Colorize(%q, true) = %q, want ANSI sequences", "1.2.3", colored)
	}
	if Colorize("dev", true) != "dev" {
		t.Errorf("non-semver input must be returned unchanged")
	}
}

func TestValueOrUnknown(t *testing.T) {
	if ValueOrUnknown("") != "unknown" || ValueOrUnknown("x") != "x" {
		t.Error("ValueOrUnknown mismatch")
	}
}
