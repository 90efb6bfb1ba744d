// Package export writes cubeview scenes to other formats.
package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/cubeview/pkg/math3d"
	"github.com/taigrr/cubeview/pkg/scene"
)

// glTF shares the description's axes: Y up, Z toward the viewer's front.
// Boxes are exported in description space, without the screen flip.

// Document builds a glTF document with one node, mesh and material per box.
// Rotations go on the node; the mesh holds the scaled box.
func Document(boxes []*scene.Box) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "cubeview"

	var buf bytes.Buffer
	root := make([]int, 0, len(boxes))

	for _, b := range boxes {
		meshIdx, err := addBoxMesh(doc, &buf, b)
		if err != nil {
			return nil, fmt.Errorf("export %q: %w", b.Name, err)
		}

		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        b.Name,
			Mesh:        gltf.Index(meshIdx),
			Translation: [3]float64{b.Pose.Position.X, b.Pose.Position.Y, b.Pose.Position.Z},
			Rotation:    Quaternion(b.Pose.Rotation),
			Scale:       [3]float64{1, 1, 1},
		})
		root = append(root, len(doc.Nodes)-1)
	}

	if buf.Len() > 0 {
		doc.Buffers = []*gltf.Buffer{{ByteLength: buf.Len(), Data: buf.Bytes()}}
	}
	if len(doc.Scenes) == 0 {
		doc.Scenes = []*gltf.Scene{{Name: "scene"}}
		doc.Scene = gltf.Index(0)
	}
	doc.Scenes[0].Nodes = root
	return doc, nil
}

// WriteGLB exports boxes to a binary glTF file.
func WriteGLB(path string, boxes []*scene.Box) error {
	doc, err := Document(boxes)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Quaternion converts Euler angles applied about X, then Y, then Z into a
// glTF rotation (x, y, z, w).
func Quaternion(rot math3d.Vec3) [4]float64 {
	sx, cx := math.Sincos(rot.X / 2)
	sy, cy := math.Sincos(rot.Y / 2)
	sz, cz := math.Sincos(rot.Z / 2)

	// q = qz · qy · qx
	return [4]float64{
		sx*cy*cz - cx*sy*sz,
		cx*sy*cz + sx*cy*sz,
		cx*cy*sz - sx*sy*cz,
		cx*cy*cz + sx*sy*sz,
	}
}

// addBoxMesh appends the geometry of b to buf and registers its accessors,
// mesh and material. Each face gets its own four vertices for flat normals.
func addBoxMesh(doc *gltf.Document, buf *bytes.Buffer, b *scene.Box) (int, error) {
	var (
		positions [24][3]float32
		normals   [24][3]float32
		indices   [36]uint16
	)
	for f, q := range scene.Quads() {
		n := b.Normals[f]
		for i, vi := range q {
			v := b.Vertices[vi]
			positions[f*4+i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
			normals[f*4+i] = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		}
		base := uint16(f * 4)
		copy(indices[f*6:], []uint16{base, base + 1, base + 2, base, base + 2, base + 3})
	}

	posAcc, err := addView(doc, buf, positions, gltf.TargetArrayBuffer, gltf.AccessorVec3, gltf.ComponentFloat, 24)
	if err != nil {
		return 0, err
	}
	lo, hi := b.Vertices[0], b.Vertices[0]
	for _, v := range b.Vertices[1:] {
		lo, hi = lo.Min(v), hi.Max(v)
	}
	doc.Accessors[posAcc].Min = []float64{lo.X, lo.Y, lo.Z}
	doc.Accessors[posAcc].Max = []float64{hi.X, hi.Y, hi.Z}

	normAcc, err := addView(doc, buf, normals, gltf.TargetArrayBuffer, gltf.AccessorVec3, gltf.ComponentFloat, 24)
	if err != nil {
		return 0, err
	}
	idxAcc, err := addView(doc, buf, indices, gltf.TargetElementArrayBuffer, gltf.AccessorScalar, gltf.ComponentUshort, 36)
	if err != nil {
		return 0, err
	}

	c := b.Color
	mat := &gltf.Material{
		Name: b.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{
				float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255,
			},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}
	if !b.Opaque() {
		mat.AlphaMode = gltf.AlphaBlend
	}
	doc.Materials = append(doc.Materials, mat)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: b.Name,
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{
				gltf.POSITION: posAcc,
				gltf.NORMAL:   normAcc,
			},
			Indices:  gltf.Index(idxAcc),
			Material: gltf.Index(len(doc.Materials) - 1),
			Mode:     gltf.PrimitiveTriangles,
		}},
	})
	return len(doc.Meshes) - 1, nil
}

// addView writes data little-endian at a 4-byte aligned offset and adds a
// buffer view plus accessor for it.
func addView(doc *gltf.Document, buf *bytes.Buffer, data any, target gltf.Target,
	typ gltf.AccessorType, comp gltf.ComponentType, count int,
) (int, error) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
	offset := buf.Len()
	if err := binary.Write(buf, binary.LittleEndian, data); err != nil {
		return 0, err
	}

	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: buf.Len() - offset,
		Target:     target,
	})
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    gltf.Index(len(doc.BufferViews) - 1),
		ComponentType: comp,
		Type:          typ,
		Count:         count,
	})
	return len(doc.Accessors) - 1, nil
}
