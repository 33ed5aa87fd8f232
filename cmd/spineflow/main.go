package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/phanxgames/spineflow"
	"github.com/spf13/cobra"
)

var (
	layoutPath string
	verbose    bool
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "spineflow",
	Short: "Scroll-driven spine animation: preview, snapshot and trace",
	Long: `spineflow threads a curve through a column of anchor rectangles and flows a
deformable mesh along it as the page scrolls. The subcommands open an
interactive window, render still frames, replay scroll scripts and print the
geometry of a layout.

Layouts are TOML files; without --layout a built-in three-screen page is used.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			level := slog.LevelInfo
			if debugMode {
				level = slog.LevelDebug
			}
			l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			spineflow.SetLogger(l)
			gg.SetLogger(l)
		}
		spineflow.SetDebugMode(debugMode)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&layoutPath, "layout", "l", "", "layout TOML file (default: built-in three-screen page)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "debug geometry, checks and per-frame timings")
}

// loadLayout reads --layout, or returns the default layout.
func loadLayout() (spineflow.Layout, error) {
	if layoutPath == "" {
		return spineflow.DefaultLayout(), nil
	}
	return spineflow.LoadLayout(layoutPath)
}

// newCoordinator builds a coordinator from --layout with cfg as overrides.
func newCoordinator(cfg spineflow.Config) (*spineflow.Coordinator, error) {
	layout, err := loadLayout()
	if err != nil {
		return nil, err
	}
	return spineflow.NewCoordinator(layout, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
