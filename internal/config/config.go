// Package config loads the optional project file (hush.toml or .hush.yaml).
// Command-line flags override whatever the file sets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"hush/internal/diagfmt"
)

// FileNames are probed in order in every directory from the start dir up.
var FileNames = []string{"hush.toml", ".hush.yaml", ".hush.yml"}

// Keys of the project file.
const (
	KeyNames       = "names"
	KeyErrorFormat = "error_format"
	KeySourceMap   = "source_map"
	KeyJobs        = "jobs"
	KeyOutDir      = "out_dir"
	KeyIgnore      = "ignore"
)

// Config is a validated project file. Only keys reported by IsSet were
// present; the others hold zero values.
type Config struct {
	Path string
	Root string

	Names       []string
	ErrorFormat diagfmt.ErrorFormat
	SourceMap   bool
	Jobs        int
	OutDir      string // absolute, resolved against Root
	Ignore      []string

	set map[string]bool
}

// IsSet reports whether key appeared in the file.
func (c *Config) IsSet(key string) bool {
	return c != nil && c.set[key]
}

type rawConfig struct {
	Names       []string `toml:"names" yaml:"names"`
	ErrorFormat *string  `toml:"error_format" yaml:"error_format"`
	SourceMap   *bool    `toml:"source_map" yaml:"source_map"`
	Jobs        *int     `toml:"jobs" yaml:"jobs"`
	OutDir      *string  `toml:"out_dir" yaml:"out_dir"`
	Ignore      []string `toml:"ignore" yaml:"ignore"`
}

// Find looks for a project file in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover is Find followed by Load. ok is false when no file exists.
func Discover(startDir string) (cfg *Config, ok bool, err error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Load decodes path by its extension (.toml, .yaml, .yml) and validates it.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	var (
		raw rawConfig
		set map[string]bool
	)
	switch ext := strings.ToLower(filepath.Ext(abs)); ext {
	case ".toml":
		raw, set, err = decodeTOML(abs)
	case ".yaml", ".yml":
		raw, set, err = decodeYAML(abs)
	default:
		return nil, fmt.Errorf("%s: unsupported config format %q", abs, ext)
	}
	if err != nil {
		return nil, err
	}
	return build(abs, raw, set)
}

func decodeTOML(path string) (rawConfig, map[string]bool, error) {
	var raw rawConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return rawConfig{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return rawConfig{}, nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	set := make(map[string]bool)
	for _, key := range allKeys {
		if meta.IsDefined(key) {
			set[key] = true
		}
	}
	return raw, set, nil
}

func decodeYAML(path string) (rawConfig, map[string]bool, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return rawConfig{}, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return rawConfig{}, nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	set := make(map[string]bool)
	mark := func(key string, present bool) {
		if present {
			set[key] = true
		}
	}
	mark(KeyNames, raw.Names != nil)
	mark(KeyErrorFormat, raw.ErrorFormat != nil)
	mark(KeySourceMap, raw.SourceMap != nil)
	mark(KeyJobs, raw.Jobs != nil)
	mark(KeyOutDir, raw.OutDir != nil)
	mark(KeyIgnore, raw.Ignore != nil)
	return raw, set, nil
}

var allKeys = []string{KeyNames, KeyErrorFormat, KeySourceMap, KeyJobs, KeyOutDir, KeyIgnore}

func build(path string, raw rawConfig, set map[string]bool) (*Config, error) {
	cfg := &Config{
		Path:   path,
		Root:   filepath.Dir(path),
		Ignore: raw.Ignore,
		set:    set,
	}

	if set[KeyNames] {
		if len(raw.Names) == 0 {
			return nil, fmt.Errorf("%s: %s must not be empty", path, KeyNames)
		}
		for _, n := range raw.Names {
			if !isIdentifier(n) {
				return nil, fmt.Errorf("%s: %s: %q is not an identifier", path, KeyNames, n)
			}
		}
		cfg.Names = raw.Names
	}
	if raw.ErrorFormat != nil {
		f, err := diagfmt.ParseErrorFormat(*raw.ErrorFormat)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, KeyErrorFormat, err)
		}
		cfg.ErrorFormat = f
	}
	if raw.SourceMap != nil {
		cfg.SourceMap = *raw.SourceMap
	}
	if raw.Jobs != nil {
		if *raw.Jobs < 0 {
			return nil, fmt.Errorf("%s: %s must be >= 0", path, KeyJobs)
		}
		cfg.Jobs = *raw.Jobs
	}
	if raw.OutDir != nil {
		dir := strings.TrimSpace(*raw.OutDir)
		if dir == "" {
			return nil, fmt.Errorf("%s: %s must not be empty", path, KeyOutDir)
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.Root, filepath.FromSlash(dir))
		}
		cfg.OutDir = dir
	}
	return cfg, nil
}

// isIdentifier accepts ASCII JavaScript identifiers, enough for global names.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
