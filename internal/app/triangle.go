package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gldemos/internal/config"
	"github.com/Faultbox/gldemos/internal/engine/input"
	"github.com/Faultbox/gldemos/internal/engine/renderer"
	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/internal/engine/shader"
	"github.com/Faultbox/gldemos/pkg/math"
)

var triangleColor = math.Vec4{1, 0.5, 0.2, 1}

// Triangle draws an indexed rectangle made of two triangles, in wireframe
// until Space is pressed.
type Triangle struct {
	program   *shader.Program
	mesh      *scene.Mesh
	wireframe bool
}

// NewTriangle uploads the rectangle. It needs a current GL context.
func NewTriangle(cfg *config.Config, _ Host) *Triangle {
	t := newTriangle()
	t.mesh.Upload()
	t.program = shader.Load(shader.Source{Dir: cfg.Resources.ShaderDir}, "triangle")
	return t
}

func newTriangle() *Triangle {
	return &Triangle{mesh: rectangle(), wireframe: true}
}

// rectangle returns the [-0.5, 0.5] square as two indexed triangles sharing
// the diagonal from bottom right to top left.
func rectangle() *scene.Mesh {
	corners := []math.Vec3{
		{X: 0.5, Y: 0.5},   // top right
		{X: 0.5, Y: -0.5},  // bottom right
		{X: -0.5, Y: -0.5}, // bottom left
		{X: -0.5, Y: 0.5},  // top left
	}
	m := &scene.Mesh{Name: "rectangle", Primitive: scene.Triangles}
	for _, p := range corners {
		m.Vertices = append(m.Vertices, scene.Vertex{Position: p, Normal: math.Vec3{Z: 1}})
	}
	m.Indices = []uint32{0, 1, 3, 1, 2, 3}
	return m
}

// Update does nothing; the scene is static.
func (t *Triangle) Update(float32, *input.State) {}

// Render draws the rectangle.
func (t *Triangle) Render() {
	renderer.Clear(0.2, 0.3, 0.3)
	renderer.SetWireframe(t.wireframe)
	t.program.Use()
	t.program.SetVec4("color", triangleColor)
	t.mesh.Draw(t.program, nil)
	renderer.SetWireframe(false)
}

// OnKey toggles wireframe with Space.
func (t *Triangle) OnKey(key sdl.Scancode, down bool) {
	if down && key == sdl.SCANCODE_SPACE {
		t.wireframe = !t.wireframe
	}
}

func (t *Triangle) OnMouseMove(float32, float32) {}
func (t *Triangle) OnScroll(float32)             {}
func (t *Triangle) OnResize(int, int)            {}

// Close releases the GPU resources.
func (t *Triangle) Close() {
	t.mesh.Release()
	t.program.Release()
}
