package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/cubeview/internal/config"
	"github.com/taigrr/cubeview/pkg/control"
	"github.com/taigrr/cubeview/pkg/render"
)

// Mouse motion arrives in cells; scale it to about one unit per pixel.
const (
	cellMotionX = 8.0
	cellMotionY = 16.0
)

var (
	hudFg = color.RGBA{220, 220, 220, 255}
	hudBg = color.RGBA{0, 0, 0, 255}
)

// runTerminal shows the scene with half-block cells until Esc or a signal.
// Events are read on the terminal's goroutine and handed to the frame loop,
// which is the only place the camera and scene change.
func runTerminal(ctx context.Context, cfg config.Config, path string, logger *log.Logger) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	fbWidth, fbHeight := render.CellSize(cols, rows)

	s, err := newSession(cfg, path, fbWidth, fbHeight, logger)
	if err != nil {
		return err
	}
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	hud := newHUD(path)

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		logClose(logger, "terminal", term.Shutdown(context.Background()))
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		mouseSeen    bool
		lastX, lastY int
	)
	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			cols, rows = ev.Width, ev.Height
			term.Erase()
			term.Resize(cols, rows)
			w, h := render.CellSize(cols, rows)
			fb.Resize(w, h)
			s.resize(w, h)

		case uv.KeyPressEvent:
			s.handle(control.Match(ev.MatchString))

		case uv.MouseMotionEvent:
			if mouseSeen {
				dx, dy := ev.X-lastX, ev.Y-lastY
				s.ctrl.MouseMove(float64(dx)*cellMotionX, float64(dy)*cellMotionY)
			}
			mouseSeen = true
			lastX, lastY = ev.X, ev.Y
		}
	}

	logger.Info("terminal view started", "cols", cols, "rows", rows)
	for {
		frameStart := time.Now()

	drain:
		for {
			select {
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}
		if s.ctrl.Quitting() {
			logger.Info("quit")
			return nil
		}
		select {
		case <-ctx.Done():
			logger.Info("interrupted")
			return nil
		default:
		}

		stats, err := s.frame(fb)
		if err != nil {
			return err
		}

		area := uv.Rect(0, 0, cols, rows)
		fb.Draw(term, area)
		hud.tick()
		if s.ctrl.HUD {
			drawHUD(term, area, hud.lines(s.ctrl, stats))
		}
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < cfg.FrameDelay {
			time.Sleep(cfg.FrameDelay - elapsed)
		}
	}
}

// drawHUD writes text lines over the top rows of area.
func drawHUD(scr uv.Screen, area uv.Rectangle, lines []string) {
	for i, line := range lines {
		row := area.Min.Y + i
		if row >= area.Max.Y {
			return
		}
		col := area.Min.X
		for _, r := range line {
			if col >= area.Max.X {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style:   uv.Style{Fg: hudFg, Bg: hudBg},
			})
			col++
		}
	}
}
