// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/pkg/math"
)

// boxEdges lists the 12 edges of a box as corner index pairs, with corner i
// taking max X when bit 0 is set, max Y for bit 1 and max Z for bit 2.
var boxEdges = [12][2]uint32{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// BBoxWireframe returns the edges of the box [lo, hi] as a line mesh with
// vertex colour c.
func BBoxWireframe(lo, hi math.Vec3, c math.Vec4) *scene.Mesh {
	m := &scene.Mesh{Name: "bbox", Primitive: scene.Lines, HasColor: true}
	for i := 0; i < 8; i++ {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		m.Vertices = append(m.Vertices, scene.Vertex{Position: p, Color: c})
	}
	for _, e := range boxEdges {
		m.Indices = append(m.Indices, e[0], e[1])
	}
	return m
}

// BBoxTransform maps the box [-1, 1]³ onto box, padded by pad on every side.
func BBoxTransform(box scene.BBox, pad float32) math.Mat4 {
	half := box.Size().Scale(0.5).Add(math.Vec3{X: pad, Y: pad, Z: pad})
	return math.TranslateVec(box.Center()).Mul(math.Scale(half.X, half.Y, half.Z))
}
