package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hush/internal/diagfmt"
	"hush/internal/driver"
	"hush/internal/version"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.js",
	Short: "Parse a JavaScript file and print its syntax tree or diagnostics",
	Long: `Parse runs the parser alone, without rewriting. With --format
pretty|json|tree it prints the syntax tree; with --format diag|diag-json|
sarif|short it prints only the diagnostics`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree|diag|diag-json|sarif|short)")
	parseCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	parseCmd.Flags().Bool("fullpath", false, "emit absolute file paths in diagnostics")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	result.Bag.Sort()
	result.Bag.Dedup()

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	out := cmd.OutOrStdout()
	switch format = strings.ToLower(format); format {
	case "diag":
		diagfmt.Pretty(out, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     colored,
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "diag-json":
		err = diagfmt.JSON(out, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			Indent:           true,
		})
	case "sarif":
		err = diagfmt.Sarif(out, result.Bag, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "hush",
			ToolVersion:    version.Current().Version,
			InvocationArgs: os.Args[1:],
		})
	case "short":
		err = diagfmt.Short(out, result.Bag, result.FileSet, withNotes)
	case "pretty", "json", "tree":
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     colored,
				Context:   2,
				PathMode:  pathMode,
				ShowNotes: withNotes,
			})
		}
		if result.Bag.HasErrors() {
			break
		}
		switch format {
		case "pretty":
			err = diagfmt.FormatASTPretty(out, result.Builder, result.FileID, result.FileSet)
		case "json":
			err = diagfmt.FormatASTJSON(out, result.Builder, result.FileID)
		default:
			err = diagfmt.FormatASTTree(out, result.Builder, result.FileID, result.FileSet)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%d error(s) in %s", result.Bag.ErrorCount(), filePath)
	}
	return nil
}
