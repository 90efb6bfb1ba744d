package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/cubeview/internal/logging"
	"github.com/taigrr/cubeview/pkg/export"
	"github.com/taigrr/cubeview/pkg/scene"
)

func newExportCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [scene] [out.glb]",
		Short: "Write a scene as binary glTF",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, out := defaultScene, args[0]
			if len(args) == 2 {
				path, out = args[0], args[1]
			}
			logger := logging.New(os.Stderr, logging.Level(g.debug))
			return exportScene(path, out, logger)
		},
	}
}

// exportScene loads every object of the description at path and writes
// them to out.
func exportScene(path, out string, logger *log.Logger) error {
	if ext := strings.ToLower(filepath.Ext(out)); ext != ".glb" {
		return fmt.Errorf("output %s: use a .glb name", out)
	}

	loader := scene.NewLoader(scene.NewFileSource(path), logger)
	if err := loader.Step(0); err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	boxes := loader.Scene().Boxes()
	if err := export.WriteGLB(out, boxes); err != nil {
		return err
	}
	logger.Info("exported", "path", out, "objects", len(boxes))
	return nil
}
