package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}

func maxDiagnosticsFlag(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("--max-diagnostics must be >= 0")
	}
	return n, nil
}

func quietFlag(cmd *cobra.Command) (bool, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return quiet, nil
}

func timingsFlag(cmd *cobra.Command) (bool, error) {
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return false, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return timings, nil
}
