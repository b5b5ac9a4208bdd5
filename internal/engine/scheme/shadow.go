package scheme

import (
	stdmath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/engine/camera"
	"github.com/Faultbox/gldemos/internal/engine/debug"
	"github.com/Faultbox/gldemos/internal/engine/renderer"
	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/internal/engine/shader"
	"github.com/Faultbox/gldemos/internal/engine/shadow"
	"github.com/Faultbox/gldemos/internal/logger"
	"github.com/Faultbox/gldemos/pkg/math"
)

const (
	// DefaultGizmoScale is the gizmo radius as a fraction of half the
	// screen height.
	DefaultGizmoScale = 0.4

	gizmoSegments = 64

	// markerScreenFraction is the light marker size relative to the
	// screen height.
	markerScreenFraction = 0.03
)

var (
	markerColor = math.Vec4{1, 1, 0.6, 1}
	bboxColor   = math.Vec4{0.8, 0.8, 0.8, 1}
)

// Shadow renders the model lit by a directional light in two passes: a depth
// pass from the light into a shadow map, then a colour pass that samples it.
// The trackball gizmo and a light marker are drawn on top.
type Shadow struct {
	base

	program  *shader.Program
	depth    *shader.Program
	overlay  *shader.Program
	depthMap *shadow.Map

	gizmo   *scene.Mesh
	marker  *scene.Mesh
	boxMesh *scene.Mesh

	GizmoScale   float32
	ShowOverlays bool
	ShowBBox     bool
}

// NewShadow loads the shadow programs from src and creates a shadow map of
// the given resolution. Failures are logged and leave the scheme degraded.
func NewShadow(src shader.Source, resolution int32) *Shadow {
	s := &Shadow{
		program:      shader.Load(src, "shadow_rendering"),
		depth:        shader.Load(src, "depth_mapping"),
		overlay:      shader.LoadPair(src, "point", "uniform_color"),
		gizmo:        scene.TrackballGizmo(gizmoSegments),
		marker:       scene.LightMarker(),
		boxMesh:      debug.BBoxWireframe(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1}, bboxColor),
		GizmoScale:   DefaultGizmoScale,
		ShowOverlays: true,
	}

	m, err := shadow.NewMap(resolution)
	if err != nil {
		logger.Error("shadow map unavailable", zap.Error(err))
	}
	s.depthMap = m

	s.gizmo.Upload()
	s.marker.Upload()
	s.boxMesh.Upload()
	return s
}

// NewShadowFor creates a shadow scheme and binds model and nav.
func NewShadowFor(src shader.Source, resolution int32, model *scene.Model, nav *camera.Navigation) *Shadow {
	s := NewShadow(src, resolution)
	s.Init(model, nav)
	return s
}

// Render draws one frame.
func (s *Shadow) Render() {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if !s.ready() {
		return
	}

	vp := renderer.CurrentViewport()
	lightSpace := s.light.SpaceMatrix()

	// Depth pass.
	if s.depthMap.Valid() {
		s.depth.Use()
		s.depth.SetMat4("lightSpaceMatrix", lightSpace)
		s.depth.SetMat4("model", math.Identity())
		s.depthMap.Bind()
		s.model.Draw(s.depth)
		s.depthMap.Unbind()
	}
	vp.Restore()

	// Colour pass.
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	cam := s.nav.Camera()
	projection := cam.Projection(vp.Aspect())
	view := cam.ViewMatrix()

	s.program.Use()
	s.program.SetMat4("projection", projection)
	s.program.SetMat4("view", view)
	s.program.SetMat4("model", math.Identity())
	s.program.SetVec3("viewPos", cam.Position())
	s.program.SetVec3("lightPos", s.light.Position)
	s.program.SetVec3("lightDir", s.light.Direction)
	s.program.SetMat4("lightSpaceMatrix", lightSpace)
	s.program.SetInt("shadowMap", s.colorTexUnits)

	var depthTexture uint32
	if s.depthMap.Valid() {
		depthTexture = s.depthMap.DepthTexture
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(s.colorTexUnits))
	gl.BindTexture(gl.TEXTURE_2D, depthTexture)
	gl.ActiveTexture(gl.TEXTURE0)

	s.model.Draw(s.program)

	gl.ActiveTexture(gl.TEXTURE0 + uint32(s.colorTexUnits))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	if s.ShowOverlays || s.ShowBBox {
		s.drawOverlays(projection, view, cam.Zoom)
	}
}

func (s *Shadow) drawOverlays(projection, view math.Mat4, fovDeg float32) {
	s.overlay.Use()
	s.overlay.SetMat4("projection", projection)
	s.overlay.SetMat4("view", view)

	s.overlay.SetBool("useVertexColor", true)
	if s.ShowBBox {
		s.overlay.SetMat4("model", debug.BBoxTransform(s.bbox, 0))
		s.boxMesh.Draw(s.overlay, nil)
	}
	if !s.ShowOverlays {
		return
	}

	s.overlay.SetMat4("model", GizmoTransform(s.nav.TrackballCenter(), s.nav.TrackballDistance(), fovDeg, s.GizmoScale))
	s.gizmo.Draw(s.overlay, nil)

	if m, ok := MarkerTransform(s.light.Position, view, fovDeg); ok {
		s.overlay.SetBool("useVertexColor", false)
		s.overlay.SetVec4("color", markerColor)
		s.overlay.SetMat4("model", m)
		s.marker.Draw(s.overlay, nil)
	}
}

// Release frees the programs, the shadow map and the overlay meshes. The
// model is not owned by the scheme.
func (s *Shadow) Release() {
	s.program.Release()
	s.depth.Release()
	s.overlay.Release()
	s.depthMap.Release()
	s.gizmo.Release()
	s.marker.Release()
	s.boxMesh.Release()
}

// GizmoTransform places the unit-circle gizmo at the pivot, scaled so that
// its radius covers scale of half the screen height whatever the distance
// and field of view.
func GizmoTransform(pivot math.Vec3, distance, fovDeg, scale float32) math.Mat4 {
	r := halfHeight(fovDeg) * distance * scale
	return math.TranslateVec(pivot).Mul(math.UniformScale(r))
}

// MarkerTransform places the light marker at position with a size that is a
// fixed fraction of the screen height. It reports false when the position
// is not in front of the camera.
func MarkerTransform(position math.Vec3, view math.Mat4, fovDeg float32) (math.Mat4, bool) {
	depth := -view.TransformPoint(position).Z
	if depth <= 0 {
		return math.Identity(), false
	}
	size := 2 * halfHeight(fovDeg) * depth * markerScreenFraction
	return math.TranslateVec(position).Mul(math.UniformScale(size)), true
}

// halfHeight is tan(fov/2): half the view height at unit depth.
func halfHeight(fovDeg float32) float32 {
	return float32(stdmath.Tan(float64(math.Radians(fovDeg)) / 2))
}
