package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/getmockd/sessiontrace/pkg/cliconfig"
	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	jsonOutput bool
}

// NewRootCommand builds the sessiontrace command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "sessiontrace",
		Short: "sessiontrace issues privacy-preserving session and request identifiers",
		Long: `sessiontrace tags HTTP traffic with opaque identifiers: a random session
identifier kept in a cookie, and a fresh request identifier per request.
Logs only ever carry the 6-character short form of a session identifier.

Configuration can be provided via flags, environment variables (SESSIONTRACE_*),
.sessiontracerc.yaml in the current directory, or
~/.config/sessiontrace/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			applyOutputConfig(cmd, g)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&g.jsonOutput, "json", false, "Output command results in JSON format")

	rootCmd.AddCommand(
		newServeCmd(),
		newIDCmd(g),
		newConfigCmd(g),
		newVersionCmd(g),
	)
	return rootCmd
}

// applyOutputConfig takes --json from configuration when the flag was not
// given. Config errors are left to commands that need the full config.
func applyOutputConfig(cmd *cobra.Command, g *globalFlags) {
	if cmd.Flags().Changed("json") {
		return
	}
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return
	}
	g.jsonOutput = cfg.JSON
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
