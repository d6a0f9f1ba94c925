// Package cli implements the dwgrender command-line interface.
//
// dwgrender is a thin demo surface over the dwg resolution core: it loads a
// JSON dump of decoded drawing records, resolves it to draw records, and
// either rasterizes them to a PNG (render) or prints statistics and
// diagnostics (inspect). The CLI is built with cobra and logs through
// charmbracelet/log, which is also bridged into the core's slog hook when
// --verbose is set.
package cli

import (
	"context"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dwgkit/dwg"
)

// Execute runs the dwgrender CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "dwgrender",
		Short:        "dwgrender resolves decoded drawing dumps into geometry",
		Long:         "dwgrender loads a JSON dump of decoded CAD drawing records, resolves entities, block inserts, and colors into renderer-agnostic geometry, and renders or inspects the result.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			if verbose {
				// Surface the core's diagnostics through the same logger.
				dwg.SetLogger(slog.New(logger))
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newInspectCmd())

	return root.ExecuteContext(context.Background())
}
