package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hush/internal/boundary"
	"hush/internal/config"
	"hush/internal/diagfmt"
	"hush/internal/driver"
	"hush/internal/source"
)

var transformCmd = &cobra.Command{
	Use:   "transform [flags] [file|directory|-]...",
	Short: "Replace console.<name> accesses with void 0",
	Long: `Transform parses JavaScript, rewrites every console.<name> member access
to void 0 and prints the result. Without arguments (or with -) it reads
stdin. Directories are expanded to .js/.mjs/.cjs/.jsx files honouring
.gitignore; several outputs need --out-dir or --in-place`,
	RunE: runTransform,
}

func init() {
	flags := transformCmd.Flags()
	flags.String("filename", "", "file name used in diagnostics and source maps for stdin input")
	flags.String("error-format", "normal", "error output format (normal|json)")
	flags.Bool("source-map", false, "emit a v3 source map")
	flags.String("out-dir", "", "write outputs under this directory")
	flags.Bool("in-place", false, "overwrite input files with the result")
	flags.String("emit", "code", "output kind (code|json|msgpack)")
	flags.StringSlice("names", nil, "reserved globals to strip (default console)")
	flags.StringSlice("ignore", nil, "extra gitignore-style patterns for directory inputs")
	flags.Int("jobs", 0, "max parallel workers for batch processing (0=auto)")
	flags.String("ui", "auto", "progress UI for batches (auto|on|off)")
	flags.Bool("cache", false, "reuse results from the disk cache (batch only)")
	flags.Bool("cache-clear", false, "drop the disk cache before the run (implies --cache)")
	flags.Int("indent", 4, "indent width of the printed code")
	flags.Bool("tabs", false, "indent with tabs")
}

type emitMode string

const (
	emitCode    emitMode = "code"
	emitJSON    emitMode = "json"
	emitMsgpack emitMode = "msgpack"
)

func readEmitMode(value string) (emitMode, error) {
	switch m := emitMode(strings.ToLower(strings.TrimSpace(value))); m {
	case emitCode, emitJSON, emitMsgpack:
		return m, nil
	default:
		return "", fmt.Errorf("invalid --emit value %q (expected code|json|msgpack)", value)
	}
}

type transformSettings struct {
	filename    string
	errorFormat diagfmt.ErrorFormat
	sourceMap   bool
	outDir      string
	inPlace     bool
	emit        emitMode
	names       []string
	ignore      []string
	jobs        int
	ui          uiMode
	cache       bool
	cacheClear  bool
	indent      int
	tabs        bool
	maxErrors   uint
	quiet       bool
	timings     bool
	color       bool
}

// readTransformSettings merges flags over the project file: a value from
// hush.toml is used unless the flag was given explicitly.
func readTransformSettings(cmd *cobra.Command, cfg *config.Config) (transformSettings, error) {
	var s transformSettings
	flags := cmd.Flags()
	var err error

	if s.filename, err = flags.GetString("filename"); err != nil {
		return s, fmt.Errorf("failed to get filename flag: %w", err)
	}
	errorFormat, err := flags.GetString("error-format")
	if err != nil {
		return s, fmt.Errorf("failed to get error-format flag: %w", err)
	}
	if s.errorFormat, err = diagfmt.ParseErrorFormat(errorFormat); err != nil {
		return s, err
	}
	if s.sourceMap, err = flags.GetBool("source-map"); err != nil {
		return s, fmt.Errorf("failed to get source-map flag: %w", err)
	}
	if s.outDir, err = flags.GetString("out-dir"); err != nil {
		return s, fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	if s.inPlace, err = flags.GetBool("in-place"); err != nil {
		return s, fmt.Errorf("failed to get in-place flag: %w", err)
	}
	emit, err := flags.GetString("emit")
	if err != nil {
		return s, fmt.Errorf("failed to get emit flag: %w", err)
	}
	if s.emit, err = readEmitMode(emit); err != nil {
		return s, err
	}
	if s.names, err = flags.GetStringSlice("names"); err != nil {
		return s, fmt.Errorf("failed to get names flag: %w", err)
	}
	if s.ignore, err = flags.GetStringSlice("ignore"); err != nil {
		return s, fmt.Errorf("failed to get ignore flag: %w", err)
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	if s.cache, err = flags.GetBool("cache"); err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if s.cacheClear, err = flags.GetBool("cache-clear"); err != nil {
		return s, fmt.Errorf("failed to get cache-clear flag: %w", err)
	}
	s.cache = s.cache || s.cacheClear
	if s.indent, err = flags.GetInt("indent"); err != nil {
		return s, fmt.Errorf("failed to get indent flag: %w", err)
	}
	if s.tabs, err = flags.GetBool("tabs"); err != nil {
		return s, fmt.Errorf("failed to get tabs flag: %w", err)
	}

	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return s, err
	}
	s.maxErrors = uint(maxDiagnostics)
	if s.quiet, err = quietFlag(cmd); err != nil {
		return s, err
	}
	if s.timings, err = timingsFlag(cmd); err != nil {
		return s, err
	}
	if s.color, err = useColor(cmd, os.Stderr); err != nil {
		return s, err
	}

	if cfg != nil {
		if cfg.IsSet(config.KeyNames) && !flags.Changed("names") {
			s.names = cfg.Names
		}
		if cfg.IsSet(config.KeyErrorFormat) && !flags.Changed("error-format") {
			s.errorFormat = cfg.ErrorFormat
		}
		if cfg.IsSet(config.KeySourceMap) && !flags.Changed("source-map") {
			s.sourceMap = cfg.SourceMap
		}
		if cfg.IsSet(config.KeyJobs) && !flags.Changed("jobs") {
			s.jobs = cfg.Jobs
		}
		if cfg.IsSet(config.KeyOutDir) && !flags.Changed("out-dir") && !s.inPlace {
			s.outDir = cfg.OutDir
		}
		if cfg.IsSet(config.KeyIgnore) {
			s.ignore = append(append([]string(nil), cfg.Ignore...), s.ignore...)
		}
	}

	if s.inPlace && s.outDir != "" {
		return s, errors.New("--in-place and --out-dir are mutually exclusive")
	}
	if s.inPlace && s.emit != emitCode {
		return s, errors.New("--in-place only works with --emit code")
	}
	if s.indent < 1 {
		return s, errors.New("--indent must be positive")
	}
	return s, nil
}

func (s transformSettings) compiler(extra ...driver.CompilerOption) *driver.Compiler {
	opts := []driver.CompilerOption{
		driver.WithTracer(activeTracer),
		driver.WithIndent(s.indent, s.tabs),
	}
	if len(s.names) > 0 {
		opts = append(opts, driver.WithNames(s.names...))
	}
	return driver.NewCompiler(append(opts, extra...)...)
}

func (s transformSettings) options(filename string) driver.Options {
	return driver.Options{
		Filename:    filename,
		ErrorFormat: s.errorFormat,
		SourceMap:   s.sourceMap,
		MaxErrors:   s.maxErrors,
		Timings:     s.timings,
	}
}

func runTransform(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	s, err := readTransformSettings(cmd, projectConfig)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c := s.compiler()

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		if s.inPlace {
			return errors.New("--in-place needs file arguments")
		}
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return transformSingle(ctx, cmd, c, s, string(src), s.filename)
	}

	files, err := driver.ExpandPaths(ctx, args, s.ignore)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no JavaScript files found")
	}
	if len(files) == 1 && s.outDir == "" && !s.inPlace {
		// #nosec G304 -- path comes from the command line
		src, err := os.ReadFile(files[0])
		if err != nil {
			return fmt.Errorf("failed to process input file %s: %w", files[0], err)
		}
		name := files[0]
		if s.filename != "" {
			name = s.filename
		}
		return transformSingle(ctx, cmd, c, s, string(src), name)
	}
	if s.outDir == "" && !s.inPlace {
		return fmt.Errorf("%d input files: pass --out-dir or --in-place", len(files))
	}
	return transformBatch(ctx, cmd, c, s, files)
}

// transformSingle transforms one input and writes the result to stdout.
func transformSingle(ctx context.Context, cmd *cobra.Command, c *driver.Compiler, s transformSettings, src, filename string) error {
	out, err := c.Transform(ctx, src, s.options(filename))
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return errors.New("transform failed")
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), out.Timings)
	}
	data, err := s.render(c.FileSet(), out, "")
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return errors.New("transform failed")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func transformBatch(ctx context.Context, cmd *cobra.Command, c *driver.Compiler, s transformSettings, files []string) error {
	// в batch-режиме таймер по файлам не печатается, только общий
	opts := driver.BatchOptions{
		Options: driver.Options{
			ErrorFormat: s.errorFormat,
			SourceMap:   s.sourceMap,
			MaxErrors:   s.maxErrors,
		},
		Jobs:   s.jobs,
		Ignore: s.ignore,
	}
	if s.cache {
		cache, err := driver.OpenDiskCache("hush")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if s.cacheClear {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		opts.Cache = cache
	}

	started := time.Now()
	var (
		results []driver.BatchResult
		err     error
	)
	if !s.quiet && shouldUseTUI(s.ui, len(files)) {
		results, err = runBatchWithUI(ctx, cmd.ErrOrStderr(), s, files, opts)
	} else {
		results, err = c.TransformPaths(ctx, files, opts)
	}
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	rewrites, cached, unrendered := 0, 0, 0
	for _, r := range results {
		if r.Err != nil {
			reportFailure(cmd.ErrOrStderr(), r.Err)
			continue
		}
		rewrites += r.Output.Stats.Rewritten
		if r.Cached {
			cached++
		}
		dest := r.Path
		if s.outDir != "" {
			dest = outputPath(s.outDir, r.Path, s.emit)
		}
		data, err := s.render(c.FileSet(), r.Output, filepath.Base(dest))
		if err != nil {
			reportFailure(cmd.ErrOrStderr(), err)
			unrendered++
			continue
		}
		if err := writeOutput(dest, data, r.Output, s); err != nil {
			return err
		}
	}

	failed := driver.Failed(results) + unrendered
	if !s.quiet {
		printBatchSummary(cmd.ErrOrStderr(), s.color, len(results), rewrites, cached, failed)
	}
	if s.timings {
		printBatchTiming(cmd.ErrOrStderr(), len(results), time.Since(started))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

// marshalOutput encodes --emit json|msgpack results.
var marshalOutput = boundary.Marshal

// render is renderOutput with encoding failures reported like any other
// pipeline error, in the requested --error-format.
func (s transformSettings) render(fs *source.FileSet, out *driver.Output, mapFile string) ([]byte, error) {
	data, err := renderOutput(out, s.emit, mapFile)
	if err != nil {
		return nil, boundary.SerializeFailure(fs, s.errorFormat, err)
	}
	return data, nil
}

// renderOutput serializes out for --emit. For code with a map and no
// separate map file the map is inlined as a data URL.
func renderOutput(out *driver.Output, mode emitMode, mapFile string) ([]byte, error) {
	switch mode {
	case emitJSON:
		data, err := marshalOutput(out, boundary.EncodingJSON)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case emitMsgpack:
		return marshalOutput(out, boundary.EncodingMsgpack)
	}
	code := out.Code
	if out.Map == "" {
		return []byte(code), nil
	}
	if mapFile != "" {
		return []byte(code + "//# sourceMappingURL=" + mapFile + ".map\n"), nil
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(out.Map))
	return []byte(code + "//# sourceMappingURL=data:application/json;charset=utf-8;base64," + encoded + "\n"), nil
}

func writeOutput(dest string, data []byte, out *driver.Output, s transformSettings) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if s.emit == emitCode && out.Map != "" {
		if err := os.WriteFile(dest+".map", []byte(out.Map), 0o600); err != nil {
			return fmt.Errorf("failed to write %s.map: %w", dest, err)
		}
	}
	return nil
}

// outputPath mirrors path under outDir. Paths inside the working directory
// keep their relative layout; others keep only the base name.
func outputPath(outDir, path string, mode emitMode) string {
	rel := filepath.Base(path)
	if wd, err := os.Getwd(); err == nil {
		if abs, err := filepath.Abs(path); err == nil {
			if r, err := filepath.Rel(wd, abs); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			}
		}
	}
	switch mode {
	case emitJSON:
		rel += ".json"
	case emitMsgpack:
		rel += ".msgpack"
	}
	return filepath.Join(outDir, rel)
}

// reportFailure prints the already formatted text of a pipeline error.
func reportFailure(w io.Writer, err error) {
	var de *driver.Error
	if errors.As(err, &de) {
		fmt.Fprintln(w, de.Formatted)
		return
	}
	fmt.Fprintln(w, err.Error())
}

func printBatchSummary(w io.Writer, colored bool, files, rewrites, cached, failed int) {
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{ok, bad} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	line := fmt.Sprintf("%s %d file(s), %d rewrite(s)", ok.Sprint("hush:"), files, rewrites)
	if cached > 0 {
		line += fmt.Sprintf(", %d cached", cached)
	}
	if failed > 0 {
		line += ", " + bad.Sprintf("%d failed", failed)
	}
	fmt.Fprintln(w, line)
}
