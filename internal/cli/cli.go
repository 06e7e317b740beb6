// Package cli implements the cutplan command-line interface.
//
// The CLI is built on cobra with structured logging via charmbracelet/log.
// All commands support --verbose (-v) for debug-level logging; the logger is
// carried on the command context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is the release version stamped into the binary.
const Version = "1.0.0"

// appName is the application name used for directories and display.
const appName = "cutplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Cutplan plans panel cuts on stock sheets",
		Long:         `Cutplan packs rectangular panels onto stock sheets using a bottom-left placement heuristic, and exports the resulting cut layouts as SVG, PDF, DXF, Excel cut lists, and QR part labels.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.showCommand())

	return root
}
