package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwgkit/dwg"
)

// newInspectCmd creates the inspect command: resolve a dump and print what
// came out without rendering anything.
func newInspectCmd() *cobra.Command {
	var showRecords bool

	cmd := &cobra.Command{
		Use:   "inspect <document.json>",
		Short: "Resolve a drawing dump and print statistics and diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			res := dwg.Resolve(doc)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "entities: %d  layers: %d  blocks: %d\n",
				len(doc.Entities), len(doc.Layers), len(doc.Blocks))
			fmt.Fprintf(out, "records: %d  resolved: %d  skipped: %d  errored: %d\n",
				len(res.Records), res.Stats.Resolved, res.Stats.Skipped, res.Stats.Errored)
			if min, max, ok := res.Bounds(); ok {
				fmt.Fprintf(out, "bounds: (%.3f, %.3f, %.3f) .. (%.3f, %.3f, %.3f)\n",
					min.X, min.Y, min.Z, max.X, max.Y, max.Z)
			}
			for _, d := range res.Diags {
				fmt.Fprintf(out, "diagnostic: %s\n", d)
			}
			if showRecords {
				for i, rec := range res.Records {
					geom := fmt.Sprintf("polyline[%d]", len(rec.Polyline))
					if rec.Mesh != nil {
						geom = fmt.Sprintf("mesh[%dv %dt]", len(rec.Mesh.Vertices), len(rec.Mesh.Indices)/3)
					}
					fmt.Fprintf(out, "%4d  layer=%-12s color=%s %s\n", i, rec.Layer, rec.Color, geom)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showRecords, "records", false, "list every resolved record")
	return cmd
}
