package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/internal/diagfmt"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "hush.toml", `
names = ["console", "logger"]
error_format = "json"
source_map = true
jobs = 4
out_dir = "dist"
ignore = ["vendor/"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, []string{"console", "logger"}, cfg.Names)
	assert.Equal(t, diagfmt.ErrorFormatJSON, cfg.ErrorFormat)
	assert.True(t, cfg.SourceMap)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.OutDir)
	assert.Equal(t, []string{"vendor/"}, cfg.Ignore)
	for _, key := range allKeys {
		assert.True(t, cfg.IsSet(key), key)
	}
}

func TestLoadPartialTOML(t *testing.T) {
	cfg, err := Load(write(t, t.TempDir(), "hush.toml", "source_map = false\n"))
	require.NoError(t, err)
	assert.True(t, cfg.IsSet(KeySourceMap))
	assert.False(t, cfg.IsSet(KeyNames))
	assert.False(t, cfg.IsSet(KeyJobs))
	assert.Nil(t, cfg.Names)
	assert.Equal(t, diagfmt.ErrorFormatNormal, cfg.ErrorFormat)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, ".hush.yaml", "names: [debug]\nerror_format: normal\njobs: 2\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"debug"}, cfg.Names)
	assert.Equal(t, 2, cfg.Jobs)
	assert.True(t, cfg.IsSet(KeyErrorFormat))
	assert.False(t, cfg.IsSet(KeySourceMap))
	assert.False(t, cfg.IsSet(KeyOutDir))
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(write(t, t.TempDir(), ".hush.yml", ""))
	require.NoError(t, err)
	for _, key := range allKeys {
		assert.False(t, cfg.IsSet(key), key)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad toml", "hush.toml", "names = [", "failed to parse TOML"},
		{"unknown toml key", "hush.toml", "colour = true\n", `unknown key "colour"`},
		{"unknown yaml key", ".hush.yaml", "colour: true\n", "failed to parse YAML"},
		{"empty names", "hush.toml", "names = []\n", "names must not be empty"},
		{"bad name", "hush.toml", `names = ["con sole"]`, "is not an identifier"},
		{"bad error format", "hush.toml", `error_format = "xml"`, "error_format"},
		{"negative jobs", ".hush.yaml", "jobs: -1\n", "jobs must be >= 0"},
		{"blank out dir", "hush.toml", `out_dir = "  "`, "out_dir must not be empty"},
		{"unsupported extension", "hush.json", "{}", "unsupported config format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, t.TempDir(), tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, root, "hush.toml", "jobs = 3\n")
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, ok, err := Discover(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "hush.toml"), cfg.Path)
	assert.Equal(t, 3, cfg.Jobs)
}

func TestFindPrefersTOML(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".hush.yaml", "jobs: 1\n")
	write(t, root, "hush.toml", "jobs = 2\n")
	path, ok, err := Find(root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "hush.toml"), path)
}

func TestNilConfigIsSet(t *testing.T) {
	var cfg *Config
	assert.False(t, cfg.IsSet(KeyNames))
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"console", "_log", "$", "a1"} {
		assert.True(t, isIdentifier(s), s)
	}
	for _, s := range []string{"", "1a", "a-b", "a.b"} {
		assert.False(t, isIdentifier(s), s)
	}
}
