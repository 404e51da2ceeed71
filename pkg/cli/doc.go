// Package cli provides the command-line interface for sessiontrace.
//
//   - serve: run the HTTP server that issues session and request identifiers
//   - id session|request: generate identifiers (--count N)
//   - id short: print the 6-character display form of identifiers
//   - config: display effective configuration and value sources
//   - version: show version information
//
// Every command accepts --json for machine-readable output.
package cli
