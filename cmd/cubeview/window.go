package main

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/taigrr/cubeview/internal/config"
	"github.com/taigrr/cubeview/pkg/control"
	"github.com/taigrr/cubeview/pkg/render"
)

// keyNames maps window keys onto the names used by control bindings.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyW:          "w",
	ebiten.KeyS:          "s",
	ebiten.KeyA:          "a",
	ebiten.KeyD:          "d",
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeySpace:      "space",
	ebiten.KeyShiftLeft:  "shift",
	ebiten.KeyShiftRight: "shift",
	ebiten.KeyC:          "c",
	ebiten.KeyR:          "r",
	ebiten.KeyF:          "f",
	ebiten.KeyB:          "b",
	ebiten.KeyP:          "p",
	ebiten.KeyTab:        "tab",
	ebiten.KeyM:          "m",
	ebiten.KeyG:          "g",
	ebiten.KeyH:          "h",
	ebiten.KeyEscape:     "escape",
}

// window is the desktop backend. In software mode it shows the framebuffer;
// in hardware mode it is itself the Surface and batches triangles for the
// GPU.
type window struct {
	s   *session
	hud *hud

	fb     *render.Framebuffer
	pixels []byte
	batch  *triangleBatch
	canvas *ebiten.Image
	white  *ebiten.Image

	width, height int
	cursorX       int
	cursorY       int
	cursorSeen    bool
	err           error
}

func runWindow(cfg config.Config, path string, logger *log.Logger) error {
	s, err := newSession(cfg, path, cfg.Width, cfg.Height, logger)
	if err != nil {
		return err
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	w := &window{
		s:      s,
		hud:    newHUD(path),
		fb:     render.NewFramebuffer(cfg.Width, cfg.Height),
		batch:  &triangleBatch{},
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		width:  cfg.Width,
		height: cfg.Height,
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("cubeview - " + w.hud.name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS())

	logger.Info("window view started", "width", cfg.Width, "height", cfg.Height)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	logger.Info("quit")
	return nil
}

// Update applies input once per tick.
func (w *window) Update() error {
	if w.err != nil {
		return w.err
	}

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a := control.Lookup(keyNames[k]); !a.Movement() {
			w.s.handle(a)
		}
	}
	for _, a := range heldMovement(ebiten.IsKeyPressed) {
		w.s.handle(a)
	}
	if w.s.ctrl.Quitting() {
		return ebiten.Termination
	}

	if w.s.ctrl.Captured() {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	x, y := ebiten.CursorPosition()
	if w.cursorSeen {
		w.s.ctrl.MouseMove(float64(x-w.cursorX), float64(y-w.cursorY))
	}
	w.cursorX, w.cursorY, w.cursorSeen = x, y, true
	return nil
}

// heldMovement returns each movement action with at least one key held,
// once, in action order.
func heldMovement(pressed func(ebiten.Key) bool) []control.Action {
	var held [control.MoveDown + 1]bool
	for k, name := range keyNames {
		if a := control.Lookup(name); a.Movement() && pressed(k) {
			held[a] = true
		}
	}
	var out []control.Action
	for a, on := range held {
		if on {
			out = append(out, control.Action(a))
		}
	}
	return out
}

// Draw renders one frame onto screen.
func (w *window) Draw(screen *ebiten.Image) {
	var (
		stats render.FrameStats
		err   error
	)
	if w.s.renderer.Hardware {
		w.canvas = screen
		w.batch.reset()
		stats, err = w.s.frame(w)
		w.flush()
		w.canvas = nil
	} else {
		stats, err = w.s.frame(w.fb)
		w.pixels = framebufferBytes(w.fb, w.pixels)
		screen.WritePixels(w.pixels)
	}
	if err != nil {
		// Reported from the next Update, which stops the game.
		w.err = err
		return
	}

	w.hud.tick()
	if w.s.ctrl.HUD {
		ebitenutil.DebugPrint(screen, strings.Join(w.hud.lines(w.s.ctrl, stats), "\n"))
	}
}

// Layout follows the window size so the origin stays centred.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.fb.Resize(outsideWidth, outsideHeight)
		w.s.resize(outsideWidth, outsideHeight)
	}
	return w.width, w.height
}

// Clear implements render.Surface.
func (w *window) Clear(c render.Color) {
	w.canvas.Fill(c)
}

// DrawLine implements render.Surface.
func (w *window) DrawLine(x0, y0, x1, y1 float64, c render.Color) {
	vector.StrokeLine(w.canvas, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, false)
}

// FillTriangle implements render.Surface. Triangles are drawn at flush.
func (w *window) FillTriangle(v [3]render.ScreenVertex, c render.Color) {
	w.batch.add(v, c)
}

// flush submits the batch in one draw call.
func (w *window) flush() {
	verts, indices := w.batch.build()
	if len(indices) == 0 {
		return
	}
	w.canvas.DrawTriangles(verts, indices, w.white, &ebiten.DrawTrianglesOptions{})
}

// framebufferBytes flattens fb into RGBA bytes, reusing buf.
func framebufferBytes(fb *render.Framebuffer, buf []byte) []byte {
	n := len(fb.Pixels) * 4
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	for i, p := range fb.Pixels {
		buf[i*4] = p.R
		buf[i*4+1] = p.G
		buf[i*4+2] = p.B
		buf[i*4+3] = 255
	}
	return buf
}

var _ render.Surface = (*window)(nil)
