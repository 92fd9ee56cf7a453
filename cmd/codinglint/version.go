package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"codinglint/internal/version"
)

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
	showPlugins bool
}

type versionPayload struct {
	Tool       string            `json:"tool"`
	Version    string            `json:"version"`
	Tagline    string            `json:"tagline"`
	GitCommit  string            `json:"git_commit,omitempty"`
	GitMessage string            `json:"git_message,omitempty"`
	BuildDate  string            `json:"build_date,omitempty"`
	GoVersion  string            `json:"go_version,omitempty"`
	Plugins    map[string]string `json:"plugins,omitempty"`
}

const versionTagline = "one coding cookie at a time"

func newVersionCmd(a *app) *cobra.Command {
	var (
		format   string
		opts     versionOptions
		showFull bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show codinglint build fingerprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.format = strings.ToLower(format)
			if showFull {
				opts.showHash, opts.showMessage, opts.showDate, opts.showPlugins = true, true, true, true
			}
			switch opts.format {
			case "pretty", "json":
				// supported
			default:
				return usageError(fmt.Errorf("unsupported format %q (must be pretty or json)", format))
			}

			info := version.Current()
			plugins := a.pluginVersions()
			if opts.format == "json" {
				return renderVersionJSON(cmd.OutOrStdout(), info, plugins, opts)
			}
			renderVersionPretty(cmd.OutOrStdout(), info, plugins, opts)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&opts.showMessage, "message", false, "include git commit message")
	cmd.Flags().BoolVar(&opts.showDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&opts.showPlugins, "plugins", false, "include plugin versions")
	cmd.Flags().BoolVar(&showFull, "full", false, "show every recorded bit of build metadata")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func (a *app) pluginVersions() map[string]string {
	out := make(map[string]string)
	for _, p := range a.registry.All() {
		out[p.Name()] = p.Version()
	}
	return out
}

func renderVersionPretty(out io.Writer, info version.Info, plugins map[string]string, opts versionOptions) {
	fmt.Fprintf(out, "%s %s: %s\n", appName, version.Colored(valueOrUnknown(info.Version)), versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(info.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:   %s (%s, %s)\n", valueOrUnknown(info.BuildDate), info.GoVersion, info.Platform)
	}
	if opts.showPlugins {
		for _, name := range slices.Sorted(maps.Keys(plugins)) {
			fmt.Fprintf(out, "plugin:  %s %s\n", name, plugins[name])
		}
	}
	if !opts.showHash && !opts.showMessage && !opts.showDate && !opts.showPlugins {
		fmt.Fprintln(out, "set --hash, --message, --date, --plugins, or --full for more build trivia")
	}
}

func renderVersionJSON(out io.Writer, info version.Info, plugins map[string]string, opts versionOptions) error {
	payload := versionPayload{
		Tool:    appName,
		Version: valueOrUnknown(info.Version),
		Tagline: versionTagline,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(info.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
		payload.GoVersion = info.GoVersion
	}
	if opts.showPlugins {
		payload.Plugins = plugins
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return strings.TrimSpace(s)
}
