package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/phanxgames/spineflow"
	"github.com/spf13/cobra"
)

// traceSettleLimit caps the frames a sweep waits for smoothing at each stop.
const traceSettleLimit = 600

var (
	traceScript string
	traceSteps  int
	traceFormat string
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Print frame parameters for a scroll sweep or script",
	Long: `Drive the coordinator headlessly and print the parameters of selected frames.

With --script every snapshot step of the script is printed. Without it the
scroll ratio sweeps from 0 to 1 in --steps stops, and the settled frame at
each stop is printed.`,
	Args: cobra.NoArgs,
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringVar(&traceScript, "script", "", "scroll script (JSON) to replay")
	traceCmd.Flags().IntVar(&traceSteps, "steps", 10, "sweep stops when no script is given")
	traceCmd.Flags().StringVarP(&traceFormat, "format", "f", "table", "output format: table or json")
}

type traceRow struct {
	Step  int    `json:"step"`
	Label string `json:"label,omitempty"`
	spineflow.Params
}

func runTrace(cmd *cobra.Command, args []string) error {
	if traceFormat != "table" && traceFormat != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", traceFormat)
	}
	c, err := newCoordinator(spineflow.Config{})
	if err != nil {
		return err
	}
	defer c.Dispose()

	var rows []traceRow
	if traceScript != "" {
		script, err := spineflow.LoadScrollScript(traceScript)
		if err != nil {
			return err
		}
		err = script.Run(c, func(step int, label string, p spineflow.Params) {
			rows = append(rows, traceRow{Step: step, Label: label, Params: p})
		})
		if err != nil {
			return err
		}
	} else {
		if traceSteps < 1 {
			return fmt.Errorf("steps must be at least 1, got %d", traceSteps)
		}
		rows = sweep(c, traceSteps)
	}

	if traceFormat == "json" {
		return writeTraceJSON(cmd.OutOrStdout(), rows)
	}
	return writeTraceTable(cmd.OutOrStdout(), rows)
}

// sweep scrolls from 0 to 1 in steps stops and records each settled frame.
func sweep(c *spineflow.Coordinator, steps int) []traceRow {
	rows := make([]traceRow, 0, steps+1)
	for i := 0; i <= steps; i++ {
		c.OnScroll(float64(i) / float64(steps))
		p, _ := c.Frame(0)
		for n := 0; !c.Settled() && n < traceSettleLimit; n++ {
			p, _ = c.Frame(0)
		}
		rows = append(rows, traceRow{Step: i, Params: p})
	}
	return rows
}

func writeTraceJSON(w io.Writer, rows []traceRow) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeTraceTable(w io.Writer, rows []traceRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "step\tlabel\tprogress\tpathOffset\tdash\topacity\tscale\talpha\tcameraY\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%.4f\t%.3f\t%.3f\t%.4f\t%.1f\t\n",
			r.Step, r.Label, r.Progress, r.PathOffset, r.DashOffset,
			r.IngredientOpacity, r.IngredientScale, r.AlphaTransition, r.CameraY)
	}
	return tw.Flush()
}
