package scene

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// LoadState is the state of a Loader.
type LoadState int

const (
	// Loading means some described names have not been loaded yet.
	Loading LoadState = iota
	// Ready means every described name is in the scene.
	Ready
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// Loader builds a Scene from a Source a few objects at a time.
//
// It moves from Loading(remaining) to Ready(scene) when remaining becomes
// empty. Reset throws the scene away and starts over from a fresh read of
// the source.
type Loader struct {
	src    Source
	logger *log.Logger

	state     LoadState
	listed    bool
	remaining []string
	total     int
	scene     *Scene
}

// NewLoader returns a loader in the Loading state. A nil logger discards
// output.
func NewLoader(src Source, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		src:    src,
		logger: logger,
		state:  Loading,
		scene:  New(),
	}
}

// State returns the current load state.
func (l *Loader) State() LoadState {
	return l.state
}

// Progress returns how many objects are loaded out of how many are described.
func (l *Loader) Progress() (loaded, total int) {
	return l.scene.Len(), l.total
}

// Scene returns the finished scene, or nil while still loading.
func (l *Loader) Scene() *Scene {
	if l.state != Ready {
		return nil
	}
	return l.scene
}

// Step loads up to budget more objects. A budget of zero or less loads
// everything that remains. Any error is fatal for the scene: a malformed
// record is never partially shown.
func (l *Loader) Step(budget int) error {
	if l.state == Ready {
		return nil
	}

	if !l.listed {
		names, err := l.src.Names()
		if err != nil {
			return fmt.Errorf("list objects: %w", err)
		}
		l.remaining = names
		l.total = len(names)
		l.listed = true
		l.logger.Debug("listing scene", "objects", l.total)
	}

	if budget <= 0 || budget > len(l.remaining) {
		budget = len(l.remaining)
	}

	for _, name := range l.remaining[:budget] {
		rec, err := l.src.Record(name)
		if err != nil {
			return fmt.Errorf("load object %q: %w", name, err)
		}
		box := NewBox(name, rec)
		if err := l.scene.Add(box); err != nil {
			return err
		}
		l.logger.Debug("loaded object", "name", name, "color", box.Color)
	}
	l.remaining = l.remaining[budget:]

	if len(l.remaining) == 0 {
		l.state = Ready
		l.logger.Debug("scene ready", "objects", l.scene.Len())
	}
	return nil
}

// Reset discards the scene and returns to Loading. A caching source is
// invalidated so the description is read again.
func (l *Loader) Reset() {
	if inv, ok := l.src.(Invalidator); ok {
		inv.Invalidate()
	}
	l.state = Loading
	l.listed = false
	l.remaining = nil
	l.total = 0
	l.scene = New()
	l.logger.Debug("scene reset")
}
