// Package scene holds CPU-side mesh data for the demos: vertex layouts,
// bounding boxes, built-in shapes, glTF/OBJ import and the GPU upload of all
// of it.
package scene

import (
	"strconv"

	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/pkg/math"
)

// Primitive is the topology a mesh's indices describe.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	LineLoop
	LineStrip
	Points
	TriangleStrip
	TriangleFan
)

// Valid reports whether p names a known topology.
func (p Primitive) Valid() bool {
	return p >= Triangles && p <= TriangleFan
}

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case LineLoop:
		return "line_loop"
	case LineStrip:
		return "line_strip"
	case Points:
		return "points"
	case TriangleStrip:
		return "triangle_strip"
	case TriangleFan:
		return "triangle_fan"
	}
	return "invalid"
}

// Vertex is the interleaved layout uploaded to the GPU. Attribute locations
// follow field order: 0 position, 1 normal, 2 texcoords, 3 tangent,
// 4 bitangent, 5 color.
type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	TexCoords math.Vec2
	Tangent   math.Vec3
	Bitangent math.Vec3
	Color     math.Vec4
}

// Mesh is one drawable batch with its material textures.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Indices   []uint32
	Primitive Primitive
	Textures  []texture.Ref
	// HasColor is set when Vertex.Color carries real data.
	HasColor bool

	vao, vbo, ebo uint32
	indexCount    int32
}

// Model is the set of meshes a scheme renders. Textures is shared by every
// mesh and released with the model.
type Model struct {
	Meshes    []*Mesh
	Textures  *texture.Library
	Directory string

	released bool
}

// NewModel creates an empty model drawing its textures from lib.
func NewModel(lib *texture.Library) *Model {
	return &Model{Textures: lib}
}

// Empty reports whether the model has any vertex data.
func (m *Model) Empty() bool {
	if m == nil {
		return true
	}
	for _, mesh := range m.Meshes {
		if len(mesh.Vertices) > 0 {
			return false
		}
	}
	return true
}

// MaxTextureUnits is the largest texture count of any mesh, at least 1.
// Units from this number up are free while the model draws.
func (m *Model) MaxTextureUnits() int {
	n := 1
	if m == nil {
		return n
	}
	for _, mesh := range m.Meshes {
		if len(mesh.Textures) > n {
			n = len(mesh.Textures)
		}
	}
	return n
}

// SamplerNames returns the uniform each of the mesh's textures binds to, in
// texture order. Counters run per kind starting at 1.
func (m *Mesh) SamplerNames() []string {
	counts := map[texture.Kind]int{}
	names := make([]string, len(m.Textures))
	for i, ref := range m.Textures {
		counts[ref.Kind]++
		names[i] = ref.Kind.SamplerPrefix() + strconv.Itoa(counts[ref.Kind])
	}
	return names
}
