package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hush/internal/version"
)

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
	color       bool
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

const versionTagline = "quiet in production"

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hush build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readVersionOptions(cmd)
		if err != nil {
			return err
		}
		info := version.Current()
		if opts.format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), info, opts)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, opts)
		return nil
	},
}

func readVersionOptions(cmd *cobra.Command) (versionOptions, error) {
	var opts versionOptions
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	full, err := flags.GetBool("full")
	if err != nil {
		return opts, fmt.Errorf("failed to get full flag: %w", err)
	}
	if opts.showHash, err = flags.GetBool("hash"); err != nil {
		return opts, fmt.Errorf("failed to get hash flag: %w", err)
	}
	if opts.showMessage, err = flags.GetBool("message"); err != nil {
		return opts, fmt.Errorf("failed to get message flag: %w", err)
	}
	if opts.showDate, err = flags.GetBool("date"); err != nil {
		return opts, fmt.Errorf("failed to get date flag: %w", err)
	}
	opts.showHash = opts.showHash || full
	opts.showMessage = opts.showMessage || full
	opts.showDate = opts.showDate || full

	opts.format = strings.ToLower(format)
	switch opts.format {
	case "pretty", "json":
		// supported
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	if opts.color, err = useColor(cmd, os.Stdout); err != nil {
		return opts, err
	}
	return opts, nil
}

func renderVersionPretty(out io.Writer, info version.Info, opts versionOptions) {
	fmt.Fprintf(out, "hush %s: %s\n", version.Colorize(info.Version, opts.color), versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", version.ValueOrUnknown(info.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", version.ValueOrUnknown(info.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", version.ValueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info version.Info, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "hush",
		Version: info.Version,
		Tagline: versionTagline,
	}
	if opts.showHash {
		payload.GitCommit = version.ValueOrUnknown(info.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = version.ValueOrUnknown(info.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = version.ValueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
