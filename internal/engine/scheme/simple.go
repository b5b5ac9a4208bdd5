package scheme

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gldemos/internal/engine/camera"
	"github.com/Faultbox/gldemos/internal/engine/renderer"
	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/internal/engine/shader"
	"github.com/Faultbox/gldemos/pkg/math"
)

// Simple draws the model in a single pass with a headlight shader.
type Simple struct {
	base
	program *shader.Program
}

// NewSimple loads the simple_rendering program from src.
func NewSimple(src shader.Source) *Simple {
	return &Simple{program: shader.Load(src, "simple_rendering")}
}

// NewSimpleFor creates a simple scheme and binds model and nav.
func NewSimpleFor(src shader.Source, model *scene.Model, nav *camera.Navigation) *Simple {
	s := NewSimple(src)
	s.Init(model, nav)
	return s
}

// Render draws one frame.
func (s *Simple) Render() {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.5, 0.5, 0.5, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if !s.ready() {
		return
	}

	cam := s.nav.Camera()
	vp := renderer.CurrentViewport()

	s.program.Use()
	s.program.SetMat4("projection", cam.Projection(vp.Aspect()))
	s.program.SetMat4("view", cam.ViewMatrix())
	s.program.SetMat4("model", math.Identity())
	s.program.SetVec3("viewPos", cam.Position())
	s.model.Draw(s.program)
}

// Release frees the shader program. The model is not owned by the scheme.
func (s *Simple) Release() {
	s.program.Release()
}
