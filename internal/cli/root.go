// Package cli implements the chromatic command-line interface.
//
// This package provides commands for coloring graphs with the ILP pipeline,
// generating standard test graphs, serving the HTTP API and managing the
// solution cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - color: Compute a minimum coloring of a graph file
//   - generate: Write a named graph family (petersen, cycle, ...) to a file
//   - serve: Run the HTTP API
//   - cache: Manage the solution cache
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/chromatic/config.toml, or from the
// file named by --config. Flags override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Example
//
//	import "github.com/matzehuels/chromatic/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background(), os.Stderr); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
)

// Execute builds the root command and runs it with ctx. Logs go to logw.
func Execute(ctx context.Context, logw io.Writer) error {
	c := New(logw, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
