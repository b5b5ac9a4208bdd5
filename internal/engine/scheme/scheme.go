// Package scheme implements the viewer's rendering schemes. A scheme draws
// one frame of a scene.Model as seen through a camera.Navigation and leaves
// the active texture unit, framebuffer and viewport as it found them.
package scheme

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/engine/camera"
	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/internal/engine/shadow"
	"github.com/Faultbox/gldemos/internal/logger"
	"github.com/Faultbox/gldemos/pkg/math"
)

// Scheme draws a model.
type Scheme interface {
	Render()
	SetModel(model *scene.Model)
	SetNavigation(nav *camera.Navigation)
	Release()
}

// base holds what every scheme derives from its model.
type base struct {
	model *scene.Model
	nav   *camera.Navigation

	bbox          scene.BBox
	center        math.Vec3
	light         shadow.Light
	colorTexUnits int32
}

// SetModel binds model and derives the bounding box, its centre, the default
// light and the first texture unit free for non-material textures.
func (b *base) SetModel(model *scene.Model) {
	b.model = model

	var meshes []*scene.Mesh
	if model != nil {
		meshes = model.Meshes
	}
	box, ok := scene.ComputeBBox(meshes)
	if !ok {
		logger.Warn("model has no vertices, using an empty bounding box")
	}
	b.bbox = box
	b.center = box.Center()
	b.light = shadow.LightFromBBox(box.Min(), box.Max())
	b.colorTexUnits = int32(model.MaxTextureUnits())

	logger.Debug("scheme model bound",
		zap.Float32s("bbox", []float32{box.XMin, box.XMax, box.YMin, box.YMax, box.ZMin, box.ZMax}),
		zap.Int32("color_tex_units", b.colorTexUnits),
	)
	logger.Debug("light placed",
		zap.Float32s("position", []float32{b.light.Position.X, b.light.Position.Y, b.light.Position.Z}),
		zap.Float32("near", b.light.NearPlane),
		zap.Float32("far", b.light.FarPlane),
		zap.Float32("radius", b.light.Radius),
	)
}

// SetNavigation sets the navigation whose camera the scheme renders from.
func (b *base) SetNavigation(nav *camera.Navigation) {
	b.nav = nav
}

// Init binds model and nav and frames the camera on the model's bounding box
// with the pivot at its centre.
func (b *base) Init(model *scene.Model, nav *camera.Navigation) {
	b.SetModel(model)
	b.SetNavigation(nav)
	if nav != nil {
		nav.Frame(b.bbox.Min(), b.bbox.Max())
	}
}

// SetLight overrides the light derived from the bounding box.
func (b *base) SetLight(l shadow.Light) {
	b.light = l
}

// Light returns the current light.
func (b *base) Light() shadow.Light { return b.light }

// BBox returns the bounding box of the bound model.
func (b *base) BBox() scene.BBox { return b.bbox }

// Center returns the bounding box centre.
func (b *base) Center() math.Vec3 { return b.center }

// ColorTexUnits returns the number of texture units the model's meshes use.
func (b *base) ColorTexUnits() int32 { return b.colorTexUnits }

func (b *base) ready() bool {
	return b.model != nil && b.nav != nil
}
