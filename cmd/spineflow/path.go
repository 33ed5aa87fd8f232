package main

import (
	"fmt"

	"github.com/phanxgames/spineflow"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the spine geometry of a layout",
	Long:  "Show every screen's reference points, the spine's segments with their arc lengths, and the flow limits.",
	Args:  cobra.NoArgs,
	RunE:  runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func formatVec(v spineflow.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

func runPath(cmd *cobra.Command, args []string) error {
	c, err := newCoordinator(spineflow.Config{})
	if err != nil {
		return err
	}
	defer c.Dispose()

	out := cmd.OutOrStdout()
	path := c.Path()
	layout := c.Layout()

	fmt.Fprintln(out, "Layout")
	fmt.Fprintln(out, "======")
	fmt.Fprintf(out, "Viewport: %.0fx%.0f\n", layout.Viewport.Width, layout.Viewport.Height)
	fmt.Fprintf(out, "Scrollable height: %.0f\n", layout.ScrollableHeight)
	fmt.Fprintf(out, "Vertical offset unit: %.2f\n\n", path.VerticalOffsetUnit)

	fmt.Fprintln(out, "Screens:")
	for i, s := range path.Screens {
		fmt.Fprintf(out, "  [%d] top %s  center %s  bottom %s\n", i, formatVec(s.Top), formatVec(s.Center), formatVec(s.Bottom))
		if s.HasHandle1 {
			fmt.Fprintf(out, "      handle in  %s\n", formatVec(s.Handle1))
		}
		if s.HasHandle2 {
			fmt.Fprintf(out, "      handle out %s\n", formatVec(s.Handle2))
		}
	}

	fmt.Fprintln(out, "\nSegments:")
	lengths := path.Curve.SegmentLengths()
	for i, seg := range path.Curve.Segments() {
		kind := "line"
		if _, ok := seg.(spineflow.CubicBezier); ok {
			kind = "bezier"
		}
		fmt.Fprintf(out, "  [%d] %-6s %s -> %s  length %.2f\n", i, kind, formatVec(seg.Start()), formatVec(seg.End()), lengths[i])
	}

	flow := c.Flow()
	fmt.Fprintln(out, "\nFlow:")
	fmt.Fprintf(out, "  Spine length: %.2f\n", flow.SpineLength())
	fmt.Fprintf(out, "  Mesh extent: %.2f\n", flow.Extent())
	fmt.Fprintf(out, "  Max flow offset: %.3f\n", flow.MaxFlowOffset())
	return nil
}
