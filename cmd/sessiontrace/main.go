// sessiontrace CLI - privacy-preserving session and request identifiers over HTTP
package main

import "github.com/getmockd/sessiontrace/pkg/cli"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	cli.Execute()
}
