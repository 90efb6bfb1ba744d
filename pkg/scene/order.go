package scene

import (
	"cmp"
	"slices"
)

// DrawOrder returns boxes in the order they should be painted: every opaque
// box first, in the given order, then the transparent ones from least to most
// opaque.
//
// Transparent boxes are ordered by alpha, not by distance to the camera.
// Overlapping translucent boxes can therefore blend in the wrong order; true
// depth sorting is not attempted.
func DrawOrder(boxes []*Box) []*Box {
	out := make([]*Box, 0, len(boxes))
	var transparent []*Box
	for _, b := range boxes {
		if b.Opaque() {
			out = append(out, b)
		} else {
			transparent = append(transparent, b)
		}
	}

	slices.SortStableFunc(transparent, func(a, b *Box) int {
		return cmp.Compare(a.Color.A, b.Color.A)
	})
	return append(out, transparent...)
}
