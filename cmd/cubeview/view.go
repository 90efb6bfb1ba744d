package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taigrr/cubeview/internal/logging"
)

const (
	backendTerminal = "terminal"
	backendWindow   = "window"
)

func newViewCmd(g *globalFlags) *cobra.Command {
	var (
		backend string
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "view [scene]",
		Short: "Open a scene interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultScene
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}

			switch backend {
			case backendTerminal:
				// The screen belongs to the renderer, so logs go to a file.
				logger, f, err := logging.OpenFile(logFile, logging.Level(g.debug))
				if err != nil {
					return fmt.Errorf("open log: %w", err)
				}
				defer f.Close()
				return runTerminal(cmd.Context(), cfg, path, logger)
			case backendWindow:
				logger := logging.New(os.Stderr, logging.Level(g.debug))
				return runWindow(cfg, path, logger)
			default:
				return fmt.Errorf("unknown backend %q (use %s or %s)", backend, backendTerminal, backendWindow)
			}
		},
	}
	cmd.Flags().StringVar(&backend, "backend", backendTerminal, "render backend: terminal or window")
	cmd.Flags().StringVar(&logFile, "log-file", "cubeview.log", "log file for the terminal backend")
	return cmd
}

// logClose logs a failed close without failing the command.
func logClose(logger *log.Logger, what string, err error) {
	if err != nil {
		logger.Warn("close", "what", what, "err", err)
	}
}
