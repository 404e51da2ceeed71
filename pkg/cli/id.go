package cli

import (
	"errors"
	"fmt"

	"github.com/getmockd/sessiontrace/internal/id"
	"github.com/getmockd/sessiontrace/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

// maxCount bounds --count so a typo cannot flood the terminal.
const maxCount = 10000

// IDOutput is the JSON form of id subcommand results.
type IDOutput struct {
	Kind string   `json:"kind"`
	IDs  []string `json:"ids"`
}

func newIDCmd(g *globalFlags) *cobra.Command {
	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Generate or shorten identifiers",
		Example: `  # New session identifier
  sessiontrace id session

  # Five request identifiers as JSON
  sessiontrace id request --count 5 --json

  # Short display form of a session identifier
  sessiontrace id short 7a9f2c1e-4b3d-4e8a-9c2f-1d3e5f7a9b0c`,
	}

	idCmd.AddCommand(
		newGenerateCmd(g, "session", "Generate session identifiers (UUID v4)", id.SessionID),
		newGenerateCmd(g, "request", "Generate request identifiers (r_ + 8 hex)", id.RequestID),
		&cobra.Command{
			Use:   "short <id>...",
			Short: "Print the short display form of identifiers",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				shorts := make([]string, len(args))
				for i, full := range args {
					shorts[i] = id.Short(full)
				}
				return printIDs(cmd, g, "short", shorts)
			},
		},
	)
	return idCmd
}

func newGenerateCmd(g *globalFlags, kind, short string, next func() string) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || count > maxCount {
				return fmt.Errorf("--count must be between 1 and %d, got %d", maxCount, count)
			}
			ids := make([]string, count)
			for i := range ids {
				ids[i] = next()
			}
			return printIDs(cmd, g, kind, ids)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of identifiers to generate")
	return cmd
}

func printIDs(cmd *cobra.Command, g *globalFlags, kind string, ids []string) error {
	if len(ids) == 0 {
		return errors.New("no identifiers")
	}
	w := cmd.OutOrStdout()
	if g.jsonOutput {
		return output.JSON(w, IDOutput{Kind: kind, IDs: ids})
	}
	for _, s := range ids {
		fmt.Fprintln(w, s)
	}
	return nil
}
