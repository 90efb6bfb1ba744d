package main

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/cubeview/pkg/render"
)

// batchTriangle is one queued triangle and its submission order.
type batchTriangle struct {
	v     [3]render.ScreenVertex
	c     render.Color
	depth float64 // mean w; larger is farther
	seq   int
}

// triangleBatch collects a frame of triangles for one DrawTriangles call.
// The GPU target has no depth buffer, so build orders them like a painter:
// opaque triangles far to near, then translucent ones in the order they
// were submitted, which already follows the scene's draw order.
type triangleBatch struct {
	tris    []batchTriangle
	verts   []ebiten.Vertex
	indices []uint16
}

func (b *triangleBatch) reset() {
	b.tris = b.tris[:0]
}

func (b *triangleBatch) add(v [3]render.ScreenVertex, c render.Color) {
	b.tris = append(b.tris, batchTriangle{
		v:     v,
		c:     c,
		depth: (v[0].W + v[1].W + v[2].W) / 3,
		seq:   len(b.tris),
	})
}

// order sorts the queued triangles into drawing order.
func (b *triangleBatch) order() {
	slices.SortStableFunc(b.tris, func(x, y batchTriangle) int {
		xo, yo := x.c.A == 255, y.c.A == 255
		switch {
		case xo && !yo:
			return -1
		case !xo && yo:
			return 1
		case xo && yo:
			switch {
			case x.depth > y.depth:
				return -1
			case x.depth < y.depth:
				return 1
			}
		}
		return x.seq - y.seq
	})
}

// build returns vertices and indices for the white source image. Vertex
// colours carry the triangle colour with straight alpha.
func (b *triangleBatch) build() ([]ebiten.Vertex, []uint16) {
	b.order()
	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	for _, t := range b.tris {
		// Indices are 16 bit; drop what does not fit rather than wrap.
		if len(b.verts)+3 > 1<<16 {
			break
		}
		base := uint16(len(b.verts))
		r, g, bl, a := float32(t.c.R)/255, float32(t.c.G)/255, float32(t.c.B)/255, float32(t.c.A)/255
		for _, v := range t.v {
			b.verts = append(b.verts, ebiten.Vertex{
				DstX:   float32(v.X),
				DstY:   float32(v.Y),
				SrcX:   1,
				SrcY:   1,
				ColorR: r,
				ColorG: g,
				ColorB: bl,
				ColorA: a,
			})
		}
		b.indices = append(b.indices, base, base+1, base+2)
	}
	return b.verts, b.indices
}
