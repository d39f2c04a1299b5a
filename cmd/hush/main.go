package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hush/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hush",
	Short: "Strip console calls from JavaScript",
	Long: `hush rewrites every console.<name> member access in JavaScript sources
to void 0 and prints the result, leaving everything else as it was parsed`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupCommand,
	PersistentPostRunE: teardownCommand,
}

// main registers subcommands and persistent flags, then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerPersistentFlags вынесен отдельно, чтобы тесты собирали то же дерево флагов.
func registerPersistentFlags(cmd *cobra.Command) {
	// Глобальные флаги
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("config", "", "project file (default: hush.toml or .hush.yaml found upwards from the working directory)")

	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0=off)")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
