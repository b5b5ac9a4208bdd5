package app

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/config"
	"github.com/Faultbox/gldemos/internal/engine/camera"
	"github.com/Faultbox/gldemos/internal/engine/input"
	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/internal/engine/scheme"
	"github.com/Faultbox/gldemos/internal/engine/shader"
	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/internal/logger"
	"github.com/Faultbox/gldemos/pkg/math"
)

// Viewer shows a model with trackball navigation through one of the
// rendering schemes.
//
// Keys: WASD move, R reset the camera, F re-centre the pivot on the model,
// 1 and 2 select the simple and shadow schemes, O toggles the shadow overlays,
// T toggles mouse capture.
type Viewer struct {
	host   Host
	camCfg config.CameraConfig
	model  *scene.Model
	nav    *camera.Navigation
	bbox   scene.BBox

	schemes map[string]scheme.Scheme
	active  string
	log     *zap.Logger
}

// NewViewer loads the configured model, or the built-in test scene, and
// creates both rendering schemes. It needs a current GL context.
func NewViewer(cfg *config.Config, host Host) *Viewer {
	lib := texture.NewLibrary()
	var model *scene.Model
	if cfg.Viewer.Model != "" {
		model = scene.LoadModel(cfg.Viewer.Model, lib)
	} else {
		model = scene.TestScene(lib, cfg.ResourcePath("wood.png"))
	}
	model.Upload()

	nav := camera.NewNavigation(camera.New(math.Identity()))
	src := shader.Source{Dir: cfg.Resources.ShaderDir}

	shadowScheme := scheme.NewShadowFor(src, cfg.Viewer.ShadowResolution, model, nav)
	shadowScheme.GizmoScale = cfg.Viewer.GizmoScale

	schemes := map[string]scheme.Scheme{
		config.SchemeSimple: scheme.NewSimpleFor(src, model, nav),
		config.SchemeShadow: shadowScheme,
	}
	return newViewer(host, cfg.Camera, model, nav, schemes, cfg.Viewer.Scheme)
}

func newViewer(host Host, camCfg config.CameraConfig, model *scene.Model, nav *camera.Navigation,
	schemes map[string]scheme.Scheme, active string) *Viewer {
	v := &Viewer{
		host:    host,
		camCfg:  camCfg,
		model:   model,
		nav:     nav,
		schemes: schemes,
		log:     logger.Named("viewer"),
	}
	if model != nil {
		v.bbox, _ = scene.ComputeBBox(model.Meshes)
	}
	nav.MovementSpeed = camCfg.Speed
	nav.MouseSensitivity = camCfg.Sensitivity
	v.resetCamera()
	v.useScheme(active)
	return v
}

// Active returns the name of the scheme in use.
func (v *Viewer) Active() string { return v.active }

func (v *Viewer) useScheme(name string) {
	if _, ok := v.schemes[name]; !ok {
		v.log.Warn("unknown rendering scheme", zap.String("scheme", name))
		return
	}
	v.active = name
	v.log.Info("rendering scheme selected", zap.String("scheme", name))
}

func (v *Viewer) resetCamera() {
	v.nav.Frame(v.bbox.Min(), v.bbox.Max())
	v.nav.Camera().SetZoom(v.camCfg.Zoom)
}

// Update moves the camera with the held WASD keys.
func (v *Viewer) Update(dt float32, in *input.State) {
	for _, m := range heldMovements(in) {
		v.nav.ProcessKeyboard(m, dt)
	}
}

// Render draws with the active scheme.
func (v *Viewer) Render() {
	if s, ok := v.schemes[v.active]; ok {
		s.Render()
	}
}

// OnKey handles the viewer's key bindings.
func (v *Viewer) OnKey(key sdl.Scancode, down bool) {
	if !down {
		return
	}
	switch key {
	case sdl.SCANCODE_R:
		v.resetCamera()
	case sdl.SCANCODE_F:
		v.nav.SetTrackballCenter(v.bbox.Center())
	case sdl.SCANCODE_1:
		v.useScheme(config.SchemeSimple)
	case sdl.SCANCODE_2:
		v.useScheme(config.SchemeShadow)
	case sdl.SCANCODE_O:
		if s, ok := v.schemes[config.SchemeShadow].(*scheme.Shadow); ok {
			s.ShowOverlays = !s.ShowOverlays
		}
	case sdl.SCANCODE_B:
		if s, ok := v.schemes[config.SchemeShadow].(*scheme.Shadow); ok {
			s.ShowBBox = !s.ShowBBox
		}
	case sdl.SCANCODE_T:
		v.host.SetMouseCaptured(!v.host.MouseCaptured())
	}
}

// OnMouseMove orbits around the pivot while the mouse is captured.
func (v *Viewer) OnMouseMove(dx, dy float32) {
	if v.host.MouseCaptured() {
		v.nav.ProcessMouseMovement(dx, dy)
	}
}

// OnScroll dollies or zooms.
func (v *Viewer) OnScroll(dy float32) {
	v.nav.ProcessMouseScroll(dy)
}

// OnResize does nothing; the schemes read the viewport every frame.
func (v *Viewer) OnResize(_, _ int) {}

// Close releases the schemes and the model.
func (v *Viewer) Close() {
	for _, s := range v.schemes {
		s.Release()
	}
	v.model.Release()
}
