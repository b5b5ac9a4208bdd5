package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gldemos/internal/config"
	"github.com/Faultbox/gldemos/internal/engine/camera"
	"github.com/Faultbox/gldemos/internal/engine/input"
	"github.com/Faultbox/gldemos/internal/engine/renderer"
	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/internal/engine/shader"
	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/pkg/math"
)

// cubesMix is the weight of the second texture.
const cubesMix = 0.2

// Cubes is the first-person camera demo: ten textured cubes and a free
// flying camera driven by WASD, the mouse and the wheel.
type Cubes struct {
	host    Host
	camera  *camera.Camera
	program *shader.Program
	cube    *scene.Mesh
	lib     *texture.Library
	models  []math.Mat4
	aspect  float32
}

// NewCubes loads the cube textures and shaders. It needs a current GL context.
func NewCubes(cfg *config.Config, host Host) *Cubes {
	lib := texture.NewLibrary()
	container, _ := lib.Load(cfg.ResourcePath("container.jpg"), texture.Diffuse)
	face, _ := lib.Load(cfg.ResourcePath("awesomeface.png"), texture.Diffuse)

	c := newCubes(host, cfg.Camera)
	c.lib = lib
	c.cube.Textures = []texture.Ref{container, face}
	c.cube.Upload()
	c.program = shader.Load(shader.Source{Dir: cfg.Resources.ShaderDir}, "cubes")
	return c
}

func newCubes(host Host, camCfg config.CameraConfig) *Cubes {
	cam := camera.NewAt(math.Vec3{Z: 3})
	cam.MovementSpeed = camCfg.Speed
	cam.MouseSensitivity = camCfg.Sensitivity
	cam.SetZoom(camCfg.Zoom)

	cube := scene.UnitCube()
	scene.Transform(cube.Vertices, math.UniformScale(0.5))

	return &Cubes{
		host:   host,
		camera: cam,
		cube:   cube,
		models: scene.CubeField(),
		aspect: 1,
	}
}

// Update moves the camera with the held WASD keys.
func (c *Cubes) Update(dt float32, in *input.State) {
	for _, m := range heldMovements(in) {
		c.camera.ProcessKeyboard(m, dt)
	}
}

// Render draws the cube field.
func (c *Cubes) Render() {
	renderer.Clear(0.2, 0.3, 0.3)

	c.program.Use()
	c.program.SetFloat("mixValue", cubesMix)
	c.program.SetMat4("projection", c.camera.Projection(c.aspect))
	c.program.SetMat4("view", c.camera.ViewMatrix())
	for _, m := range c.models {
		c.program.SetMat4("model", m)
		c.cube.Draw(c.program, c.lib)
	}
}

// OnKey toggles mouse capture with T.
func (c *Cubes) OnKey(key sdl.Scancode, down bool) {
	if down && key == sdl.SCANCODE_T {
		c.host.SetMouseCaptured(!c.host.MouseCaptured())
	}
}

// OnMouseMove turns the camera while the mouse is captured.
func (c *Cubes) OnMouseMove(dx, dy float32) {
	if c.host.MouseCaptured() {
		c.camera.ProcessMouseMovement(dx, dy)
	}
}

// OnScroll zooms.
func (c *Cubes) OnScroll(dy float32) {
	c.camera.ProcessMouseScroll(dy)
}

// OnResize keeps the projection aspect in step with the drawable.
func (c *Cubes) OnResize(width, height int) {
	if width > 0 && height > 0 {
		c.aspect = float32(width) / float32(height)
	}
}

// Close releases the GPU resources.
func (c *Cubes) Close() {
	c.cube.Release()
	c.lib.Release()
	c.program.Release()
}
