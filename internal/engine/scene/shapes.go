package scene

import (
	stdmath "math"

	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/pkg/math"
)

// cubeVertices holds position, normal and texcoords for the 36 corners of a
// cube spanning [-1, 1] on every axis, counter-clockwise when seen from
// outside.
var cubeVertices = [36][8]float32{
	// back
	{-1, -1, -1, 0, 0, -1, 0, 0},
	{1, 1, -1, 0, 0, -1, 1, 1},
	{1, -1, -1, 0, 0, -1, 1, 0},
	{1, 1, -1, 0, 0, -1, 1, 1},
	{-1, -1, -1, 0, 0, -1, 0, 0},
	{-1, 1, -1, 0, 0, -1, 0, 1},
	// front
	{-1, -1, 1, 0, 0, 1, 0, 0},
	{1, -1, 1, 0, 0, 1, 1, 0},
	{1, 1, 1, 0, 0, 1, 1, 1},
	{1, 1, 1, 0, 0, 1, 1, 1},
	{-1, 1, 1, 0, 0, 1, 0, 1},
	{-1, -1, 1, 0, 0, 1, 0, 0},
	// left
	{-1, 1, 1, -1, 0, 0, 1, 0},
	{-1, 1, -1, -1, 0, 0, 1, 1},
	{-1, -1, -1, -1, 0, 0, 0, 1},
	{-1, -1, -1, -1, 0, 0, 0, 1},
	{-1, -1, 1, -1, 0, 0, 0, 0},
	{-1, 1, 1, -1, 0, 0, 1, 0},
	// right
	{1, 1, 1, 1, 0, 0, 1, 0},
	{1, -1, -1, 1, 0, 0, 0, 1},
	{1, 1, -1, 1, 0, 0, 1, 1},
	{1, -1, -1, 1, 0, 0, 0, 1},
	{1, 1, 1, 1, 0, 0, 1, 0},
	{1, -1, 1, 1, 0, 0, 0, 0},
	// bottom
	{-1, -1, -1, 0, -1, 0, 0, 1},
	{1, -1, -1, 0, -1, 0, 1, 1},
	{1, -1, 1, 0, -1, 0, 1, 0},
	{1, -1, 1, 0, -1, 0, 1, 0},
	{-1, -1, 1, 0, -1, 0, 0, 0},
	{-1, -1, -1, 0, -1, 0, 0, 1},
	// top
	{-1, 1, -1, 0, 1, 0, 0, 1},
	{1, 1, 1, 0, 1, 0, 1, 0},
	{1, 1, -1, 0, 1, 0, 1, 1},
	{1, 1, 1, 0, 1, 0, 1, 0},
	{-1, 1, -1, 0, 1, 0, 0, 1},
	{-1, 1, 1, 0, 1, 0, 0, 0},
}

// cubeFieldPositions are the world positions of the cubes demo.
var cubeFieldPositions = [10]math.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 2, Y: 5, Z: -15},
	{X: -1.5, Y: -2.2, Z: -2.5},
	{X: -3.8, Y: -2, Z: -12.3},
	{X: 2.4, Y: -0.4, Z: -3.5},
	{X: -1.7, Y: 3, Z: -7.5},
	{X: 1.3, Y: -2, Z: -2.5},
	{X: 1.5, Y: 2, Z: -2.5},
	{X: 1.5, Y: 0.2, Z: -1.5},
	{X: -1.3, Y: 1, Z: -1.5},
}

// UnitCube returns a textured cube spanning [-1, 1].
func UnitCube() *Mesh {
	m := &Mesh{Name: "cube", Vertices: make([]Vertex, len(cubeVertices)), Indices: make([]uint32, len(cubeVertices))}
	for i, c := range cubeVertices {
		m.Vertices[i] = Vertex{
			Position:  math.Vec3{X: c[0], Y: c[1], Z: c[2]},
			Normal:    math.Vec3{X: c[3], Y: c[4], Z: c[5]},
			TexCoords: math.Vec2{X: c[6], Y: c[7]},
			Color:     math.Vec4{1, 1, 1, 1},
		}
		m.Indices[i] = uint32(i)
	}
	ComputeTangents(m.Vertices, m.Indices)
	return m
}

// Plane returns a horizontal square of half-size r at height y facing +Y.
// Texture coordinates run 0..r so a texture repeats once per unit.
func Plane(r, y float32) *Mesh {
	corners := [4][4]float32{
		{r, r, r, 0},
		{-r, r, 0, 0},
		{-r, -r, 0, r},
		{r, -r, r, r},
	}
	m := &Mesh{Name: "plane"}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, Vertex{
			Position:  math.Vec3{X: c[0], Y: y, Z: c[1]},
			Normal:    math.Vec3{Y: 1},
			TexCoords: math.Vec2{X: c[2], Y: c[3]},
			Color:     math.Vec4{1, 1, 1, 1},
		})
	}
	m.Indices = []uint32{0, 1, 2, 0, 2, 3}
	ComputeTangents(m.Vertices, m.Indices)
	return m
}

// Circle returns a unit circle of n segments around the given axis
// (0 = X, 1 = Y, 2 = Z) as a line loop.
func Circle(n int, axis int, color math.Vec4) *Mesh {
	if n < 3 {
		n = 3
	}
	m := &Mesh{Name: "circle", Primitive: LineLoop, HasColor: true}
	for i := 0; i < n; i++ {
		a := 2 * stdmath.Pi * float64(i) / float64(n)
		s, c := float32(stdmath.Sin(a)), float32(stdmath.Cos(a))
		var p math.Vec3
		switch axis {
		case 0:
			p = math.Vec3{Y: c, Z: s}
		case 1:
			p = math.Vec3{X: c, Z: s}
		default:
			p = math.Vec3{X: c, Y: s}
		}
		m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: p, Color: color})
		m.Indices = append(m.Indices, uint32(i))
	}
	return m
}

// TrackballGizmo returns three mutually perpendicular unit circles as one
// line mesh, colored red, green and blue by the axis they surround.
func TrackballGizmo(n int) *Mesh {
	colors := [3]math.Vec4{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}
	gizmo := &Mesh{Name: "trackball", Primitive: Lines, HasColor: true}
	for axis, color := range colors {
		c := Circle(n, axis, color)
		base := uint32(len(gizmo.Vertices))
		count := uint32(len(c.Vertices))
		gizmo.Vertices = append(gizmo.Vertices, c.Vertices...)
		for i := uint32(0); i < count; i++ {
			gizmo.Indices = append(gizmo.Indices, base+i, base+(i+1)%count)
		}
	}
	return gizmo
}

// LightMarker returns a small untextured cube spanning [-0.5, 0.5] used to
// mark the light position.
func LightMarker() *Mesh {
	m := UnitCube()
	m.Name = "light"
	Transform(m.Vertices, math.UniformScale(0.5))
	return m
}

// TestScene builds the viewer's default model: three half-size cubes above
// a 25x25 ground plane at y = -0.5, all textured with woodTexture.
func TestScene(lib *texture.Library, woodTexture string) *Model {
	model := NewModel(lib)
	var textures []texture.Ref
	if lib != nil && woodTexture != "" {
		ref, _ := lib.Load(woodTexture, texture.Diffuse)
		textures = append(textures, ref)
	}

	for _, pos := range []math.Vec3{{X: 0, Y: 1.5, Z: 0}, {X: 2, Y: 0, Z: 1}, {X: -1, Y: 0, Z: 2}} {
		cube := UnitCube()
		cube.Textures = textures
		Transform(cube.Vertices, math.TranslateVec(pos).Mul(math.UniformScale(0.5)))
		model.Meshes = append(model.Meshes, cube)
	}

	plane := Plane(25, -0.5)
	plane.Textures = textures
	model.Meshes = append(model.Meshes, plane)
	return model
}

// CubeField returns the model matrices of the cubes demo: cube i sits at its
// fixed position, turned 20*i degrees about (1, 0.3, 0.5).
func CubeField() []math.Mat4 {
	axis := math.Vec3{X: 1, Y: 0.3, Z: 0.5}.Normalize()
	out := make([]math.Mat4, len(cubeFieldPositions))
	for i, pos := range cubeFieldPositions {
		out[i] = math.TranslateVec(pos).Mul(math.RotateAxis(axis, math.Radians(20*float32(i))))
	}
	return out
}
