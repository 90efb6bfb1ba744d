// cubeview - 3D box scene viewer
// Walk through a scene of coloured boxes described in a JSON or YAML file,
// in the terminal or in a desktop window.
//
// Controls:
//
//	W/S/A/D     - Move forward/back/left/right
//	Space       - Move up
//	Shift/C     - Move down
//	Mouse       - Look around (while captured)
//	P/Tab       - Capture or release the mouse
//	M           - Toggle flying and ground-plane walking
//	F           - Toggle wireframe
//	B           - Toggle full-bright (no shading)
//	G           - Toggle software/hardware pipeline
//	H           - Toggle HUD overlay
//	R           - Reload the scene and reset the camera
//	Esc         - Quit
package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/cubeview/internal/config"
)

const defaultScene = "objects.json"

var version = "dev"

// globalFlags are shared by every command. The tuning flags override the
// config file only when given.
type globalFlags struct {
	config string
	debug  bool

	near        float64
	k           float64
	speed       float64
	sensitivity float64
	smoothing   float64
	frameDelay  time.Duration
	loadBudget  int
}

// loadConfig reads the config file and applies the tuning flags set on cmd.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(g.config)
	if err != nil {
		return cfg, err
	}
	cfg = g.override(cfg, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// override copies the flags for which changed reports true into cfg.
func (g *globalFlags) override(cfg config.Config, changed func(name string) bool) config.Config {
	if changed("near") {
		cfg.Near = g.near
	}
	if changed("k") {
		cfg.K = g.k
	}
	if changed("speed") {
		cfg.MoveSpeed = g.speed
	}
	if changed("sensitivity") {
		cfg.LookSensitivity = g.sensitivity
	}
	if changed("smoothing") {
		cfg.LookSmoothing = g.smoothing
	}
	if changed("frame-delay") {
		cfg.FrameDelay = g.frameDelay
	}
	if changed("load-budget") {
		cfg.LoadBudget = g.loadBudget
	}
	return cfg
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:   "cubeview",
		Short: "View box scenes in the terminal or a window",
		Long: "cubeview renders a scene of coloured boxes, read from a JSON or YAML\n" +
			"description, with a free-moving first-person camera.",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&g.config, "config", "cubeview.yaml", "config file (missing file uses defaults)")
	pf.BoolVar(&g.debug, "debug", false, "log at debug level")

	defaults := config.Default()
	pf.Float64Var(&g.near, "near", defaults.Near, "near plane in camera space (<= 0)")
	pf.Float64Var(&g.k, "k", defaults.K, "perspective constant")
	pf.Float64Var(&g.speed, "speed", defaults.MoveSpeed, "movement per frame")
	pf.Float64Var(&g.sensitivity, "sensitivity", defaults.LookSensitivity, "radians per mouse unit")
	pf.Float64Var(&g.smoothing, "smoothing", defaults.LookSmoothing, "look spring frequency, 0 for none")
	pf.DurationVar(&g.frameDelay, "frame-delay", defaults.FrameDelay, "delay between frames")
	pf.IntVar(&g.loadBudget, "load-budget", defaults.LoadBudget, "objects loaded per frame, 0 for all")

	root.AddCommand(
		newViewCmd(&g),
		newSnapshotCmd(&g),
		newExportCmd(&g),
	)
	return root
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
