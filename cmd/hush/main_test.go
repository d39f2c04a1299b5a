package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hush/internal/boundary"
	"hush/internal/driver"
)

var registerOnce sync.Once

// resetFlags возвращает флаги к значениям по умолчанию: cobra хранит их между Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func executeCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	registerOnce.Do(func() {
		rootCmd.AddCommand(transformCmd, tokenizeCmd, parseCmd, versionCmd)
		registerPersistentFlags(rootCmd)
	})
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestTransformStdin(t *testing.T) {
	stdout, _, err := executeCLI(t, "if (foo) {\n    console.log(\"Foo\")\n}\n", "transform")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	want := "if (foo) {\n    (void 0)(\"Foo\");\n}\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestTransformStdinJSONError(t *testing.T) {
	stdout, stderr, err := executeCLI(t, "if (", "transform", "--error-format", "json", "--filename", "in.js")
	if err == nil {
		t.Fatal("expected error for invalid input")
	}
	if stdout != "" {
		t.Fatalf("no output expected on failure, got %q", stdout)
	}
	line := strings.SplitN(stderr, "\n", 2)[0]
	var decoded struct {
		Diagnostics []struct {
			Code     string `json:"code"`
			Location struct {
				File string `json:"file"`
			} `json:"location"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, stderr)
	}
	if len(decoded.Diagnostics) == 0 || decoded.Diagnostics[0].Location.File != "in.js" {
		t.Fatalf("unexpected diagnostics: %+v", decoded)
	}
}

func TestTransformEmitJSON(t *testing.T) {
	stdout, _, err := executeCLI(t, "console.warn(1)", "transform", "--emit", "json")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	var out struct {
		Code string `json:"code"`
		Map  string `json:"map"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("bad json %q: %v", stdout, err)
	}
	if out.Code != "(void 0)(1);\n" || out.Map != "" {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestTransformNamesFlag(t *testing.T) {
	stdout, _, err := executeCLI(t, "logger.info(1); console.log(2)", "transform", "--names", "logger")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if stdout != "(void 0)(1);\nconsole.log(2);\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestTransformBatchOutDir(t *testing.T) {
	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "a.js"), "console.log(1)\n")
	writeTestFile(t, filepath.Join(src, "b.js"), "console.log(2)\n")
	writeTestFile(t, filepath.Join(src, "bad.js"), "if (\n")
	outDir := filepath.Join(t.TempDir(), "out")

	_, stderr, err := executeCLI(t, "", "transform", src, "--out-dir", outDir, "--ui", "off", "--quiet", "--source-map")
	if err == nil || !strings.Contains(err.Error(), "1 of 3 file(s) failed") {
		t.Fatalf("expected one failure, got %v", err)
	}
	if !strings.Contains(stderr, "bad.js") {
		t.Fatalf("stderr should mention bad.js:\n%s", stderr)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "a.js"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "(void 0)(1);\n//# sourceMappingURL=a.js.map\n" {
		t.Fatalf("a.js = %q", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "a.js.map")); err != nil {
		t.Fatalf("missing map: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "bad.js")); !os.IsNotExist(err) {
		t.Fatalf("failed file must not be written, stat err = %v", err)
	}
}

func TestTransformInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	writeTestFile(t, path, "console.log(1)\n")
	writeTestFile(t, filepath.Join(dir, "b.js"), "let x = 1\n")

	if _, _, err := executeCLI(t, "", "transform", dir, "--in-place", "--ui", "off", "--quiet"); err != nil {
		t.Fatalf("transform: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "(void 0)(1);\n" {
		t.Fatalf("a.js = %q", got)
	}
}

func TestTransformSeveralFilesNeedDestination(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.js"), "a()\n")
	writeTestFile(t, filepath.Join(dir, "b.js"), "b()\n")
	_, _, err := executeCLI(t, "", "transform", dir)
	if err == nil || !strings.Contains(err.Error(), "--out-dir") {
		t.Fatalf("expected destination error, got %v", err)
	}
}

func TestParseShortDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.js")
	writeTestFile(t, path, "if (\n")
	stdout, _, err := executeCLI(t, "", "parse", path, "--format", "short")
	if err == nil {
		t.Fatal("expected error for invalid file")
	}
	if !strings.Contains(stdout, "SYN") || !strings.Contains(stdout, "bad.js") {
		t.Fatalf("unexpected short output %q", stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := executeCLI(t, "", "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "hush" || payload.GitCommit != "unknown" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestRenderOutputInlineMap(t *testing.T) {
	data, err := renderOutput(&driver.Output{Code: "a;\n", Map: "{}"}, emitCode, "")
	if err != nil {
		t.Fatal(err)
	}
	want := "a;\n//# sourceMappingURL=data:application/json;charset=utf-8;base64,e30=\n"
	if string(data) != want {
		t.Fatalf("got %q, want %q", data, want)
	}
}

func TestReadModes(t *testing.T) {
	if m, err := readEmitMode(" MsgPack "); err != nil || m != emitMsgpack {
		t.Errorf("readEmitMode = %v, %v", m, err)
	}
	if _, err := readEmitMode("yaml"); err == nil {
		t.Error("expected error for unknown emit mode")
	}
	if m, err := readUIMode(""); err != nil || m != uiModeAuto {
		t.Errorf("readUIMode(\"\") = %v, %v", m, err)
	}
	if shouldUseTUI(uiModeOn, 1) {
		t.Error("a single file never gets the progress UI")
	}
	if !shouldUseTUI(uiModeOn, 2) || shouldUseTUI(uiModeOff, 5) {
		t.Error("explicit --ui must win for batches")
	}
}

func TestOutputPathOutsideWorkdir(t *testing.T) {
	dir := t.TempDir()
	got := outputPath("/out", filepath.Join(dir, "lib", "a.js"), emitJSON)
	if got != filepath.Join("/out", "a.js.json") {
		t.Fatalf("outputPath = %q", got)
	}
}

func TestTransformBatchCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "a.js"), "console.log(1)\n")
	writeTestFile(t, filepath.Join(src, "b.js"), "console.log(2)\n")
	outDir := filepath.Join(t.TempDir(), "out")
	args := []string{"transform", src, "--out-dir", outDir, "--ui", "off", "--color", "off"}

	if _, _, err := executeCLI(t, "", append(args, "--cache")...); err != nil {
		t.Fatalf("first run: %v", err)
	}
	_, stderr, err := executeCLI(t, "", append(args, "--cache")...)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !strings.Contains(stderr, "2 rewrite(s), 2 cached") {
		t.Fatalf("second run should hit the cache:\n%s", stderr)
	}
	_, stderr, err = executeCLI(t, "", append(args, "--cache-clear")...)
	if err != nil {
		t.Fatalf("clearing run: %v", err)
	}
	if strings.Contains(stderr, "cached") {
		t.Fatalf("a cleared cache cannot hit:\n%s", stderr)
	}
}

func failEncoding(t *testing.T) {
	t.Helper()
	marshalOutput = func(_ *driver.Output, enc boundary.Encoding) ([]byte, error) {
		return nil, &boundary.SerializationError{Encoding: enc, Err: errors.New("boom")}
	}
	t.Cleanup(func() { marshalOutput = boundary.Marshal })
}

func TestTransformEncodingFailureUsesErrorFormat(t *testing.T) {
	failEncoding(t)
	stdout, stderr, err := executeCLI(t, "console.log(1)", "transform", "--emit", "json", "--error-format", "json")
	if err == nil || err.Error() != "transform failed" {
		t.Fatalf("expected transform failure, got %v", err)
	}
	if stdout != "" {
		t.Fatalf("no output expected, got %q", stdout)
	}
	line := strings.SplitN(stderr, "\n", 2)[0]
	var decoded struct {
		Diagnostics []struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, stderr)
	}
	if len(decoded.Diagnostics) != 1 || decoded.Diagnostics[0].Code != "BND5001" {
		t.Fatalf("unexpected diagnostics: %+v", decoded)
	}
	if decoded.Diagnostics[0].Message != "failed to serialize json: boom" {
		t.Fatalf("message = %q", decoded.Diagnostics[0].Message)
	}
}

func TestTransformBatchCountsEncodingFailures(t *testing.T) {
	failEncoding(t)
	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "a.js"), "console.log(1)\n")
	writeTestFile(t, filepath.Join(src, "b.js"), "console.log(2)\n")
	outDir := filepath.Join(t.TempDir(), "out")

	_, stderr, err := executeCLI(t, "", "transform", src, "--out-dir", outDir, "--emit", "msgpack", "--ui", "off", "--quiet")
	if err == nil || !strings.Contains(err.Error(), "2 of 2 file(s) failed") {
		t.Fatalf("encoding failures must fail the batch, got %v", err)
	}
	if strings.Count(stderr, "error[BND5001]: failed to serialize msgpack: boom") != 2 {
		t.Fatalf("expected two formatted failures:\n%s", stderr)
	}
	if _, err := os.Stat(filepath.Join(outDir, "a.js.msgpack")); !os.IsNotExist(err) {
		t.Fatalf("nothing should be written, stat err = %v", err)
	}
}

func TestTransformBatchTimingsOnlyTotal(t *testing.T) {
	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "a.js"), "console.log(1)\n")
	writeTestFile(t, filepath.Join(src, "b.js"), "console.log(2)\n")
	outDir := filepath.Join(t.TempDir(), "out")

	_, stderr, err := executeCLI(t, "", "transform", src, "--out-dir", outDir, "--ui", "off", "--quiet", "--timings")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !strings.Contains(stderr, "transformed 2 file(s) in ") {
		t.Fatalf("missing batch timing:\n%s", stderr)
	}
	if strings.Contains(stderr, "timings:") {
		t.Fatalf("per-file phase tables must not be printed in batch mode:\n%s", stderr)
	}
}
