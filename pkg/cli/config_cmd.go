package cli

import (
	"fmt"

	"github.com/getmockd/sessiontrace/pkg/cli/internal/output"
	"github.com/getmockd/sessiontrace/pkg/cliconfig"
	"github.com/spf13/cobra"
)

// ConfigEntry is one row of `sessiontrace config`.
type ConfigEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.LoadAll()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return printConfig(cmd, g, cfg)
		},
	}
}

func printConfig(cmd *cobra.Command, g *globalFlags, cfg *cliconfig.CLIConfig) error {
	entries := make([]ConfigEntry, 0, len(cliconfig.Keys))
	for _, key := range cliconfig.Keys {
		source := cfg.Sources[key]
		if source == "" {
			source = cliconfig.SourceDefault
		}
		entries = append(entries, ConfigEntry{Key: key, Value: cfg.Value(key), Source: source})
	}

	w := cmd.OutOrStdout()
	if g.jsonOutput {
		return output.JSON(w, entries)
	}

	tw := output.Table(w)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Value, e.Source)
	}
	return tw.Flush()
}
