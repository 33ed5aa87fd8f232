package main

import (
	"github.com/phanxgames/spineflow"
	"github.com/phanxgames/spineflow/render"
	"github.com/spf13/cobra"
)

var (
	runShowFPS       bool
	runIntro         bool
	runScript        string
	runScreenshotDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open an interactive window",
	Long: `Open a window and scroll through the layout with the mouse wheel, arrow keys,
J/K, Page Up/Down, Space, Home and End. Escape quits.

With --script the window replays a scroll script instead of reading input,
saving a screenshot at every snapshot step, and closes when the script ends.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runShowFPS, "fps", false, "show the FPS and parameter overlay")
	runCmd.Flags().BoolVar(&runIntro, "intro", false, "play the intro flow animation")
	runCmd.Flags().StringVar(&runScript, "script", "", "scroll script (JSON) to replay")
	runCmd.Flags().StringVar(&runScreenshotDir, "screenshots", "screenshots", "directory for script screenshots")
}

func runRun(cmd *cobra.Command, args []string) error {
	c, err := newCoordinator(spineflow.Config{Intro: runIntro})
	if err != nil {
		return err
	}
	defer c.Dispose()

	cfg := render.RunConfig{
		Title:         "spineflow",
		ShowFPS:       runShowFPS,
		Debug:         debugMode,
		ScreenshotDir: runScreenshotDir,
	}
	if runScript != "" {
		if cfg.Script, err = spineflow.LoadScrollScript(runScript); err != nil {
			return err
		}
	}
	return render.Run(c, cfg)
}
