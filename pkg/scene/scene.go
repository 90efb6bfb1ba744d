package scene

import "fmt"

// Scene maps object names to boxes and remembers load order.
type Scene struct {
	names []string
	boxes map[string]*Box
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{boxes: make(map[string]*Box)}
}

// Add inserts a box. Names are unique keys.
func (s *Scene) Add(b *Box) error {
	if _, dup := s.boxes[b.Name]; dup {
		return fmt.Errorf("scene: duplicate object %q", b.Name)
	}
	s.names = append(s.names, b.Name)
	s.boxes[b.Name] = b
	return nil
}

// Names returns object names in load order.
func (s *Scene) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Boxes returns the boxes in load order.
func (s *Scene) Boxes() []*Box {
	out := make([]*Box, len(s.names))
	for i, name := range s.names {
		out[i] = s.boxes[name]
	}
	return out
}

// Len returns the number of boxes.
func (s *Scene) Len() int {
	return len(s.names)
}
