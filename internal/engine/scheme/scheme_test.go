package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gldemos/internal/engine/camera"
	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/internal/engine/shadow"
	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/pkg/math"
)

var (
	_ Scheme = (*Simple)(nil)
	_ Scheme = (*Shadow)(nil)
)

func cubeModel() *scene.Model {
	m := scene.NewModel(nil)
	m.Meshes = append(m.Meshes, scene.UnitCube())
	return m
}

func TestShadowSchemeLightForUnitBox(t *testing.T) {
	s := &Shadow{}
	s.SetModel(cubeModel())

	assert.Equal(t, scene.BBox{XMin: -1, XMax: 1, YMin: -1, YMax: 1, ZMin: -1, ZMax: 1}, s.BBox())
	l := s.Light()
	assert.InDelta(t, 0.51*math.Sqrt(12), l.Radius, 1e-5)
	assert.Less(t, l.NearPlane, l.FarPlane)

	c := s.BBox().Corners()
	assert.True(t, l.Covers(c[:]))
}

func TestColorTexUnits(t *testing.T) {
	s := &Simple{}
	s.SetModel(cubeModel())
	assert.Equal(t, int32(1), s.ColorTexUnits())

	m := cubeModel()
	m.Meshes[0].Textures = []texture.Ref{
		{Index: 0, Kind: texture.Diffuse},
		{Index: 1, Kind: texture.Specular},
		{Index: 2, Kind: texture.Normal},
	}
	m.Meshes = append(m.Meshes, scene.Plane(1, 0))
	s.SetModel(m)
	assert.Equal(t, int32(3), s.ColorTexUnits())
}

func TestSetModelEmpty(t *testing.T) {
	s := &Shadow{}
	s.SetModel(scene.NewModel(nil))
	assert.Equal(t, scene.BBox{}, s.BBox())
	assert.Less(t, s.Light().NearPlane, s.Light().FarPlane)
	assert.Equal(t, int32(1), s.ColorTexUnits())

	s.SetModel(nil)
	assert.Equal(t, int32(1), s.ColorTexUnits())
	assert.False(t, s.ready())
}

func TestSetLightOverrides(t *testing.T) {
	s := &Shadow{}
	s.SetModel(cubeModel())
	custom := shadow.Light{
		Position:  math.Vec3{X: -2, Y: 4, Z: -1},
		Direction: math.Vec3{X: 2, Y: -4, Z: 1}.Normalize(),
		NearPlane: 1,
		FarPlane:  7.5,
		Radius:    10,
	}
	s.SetLight(custom)
	assert.Equal(t, custom, s.Light())
}

func TestInitFramesCamera(t *testing.T) {
	m := scene.TestScene(nil, "")
	nav := camera.NewNavigation(camera.New(math.Identity()))

	s := &Simple{}
	s.Init(m, nav)
	require.True(t, s.ready())

	center := s.Center()
	pivot := nav.TrackballCenter()
	assert.InDelta(t, center.X, pivot.X, 1e-3)
	assert.InDelta(t, center.Y, pivot.Y, 1e-3)
	assert.InDelta(t, center.Z, pivot.Z, 1e-3)

	// The eye looks down -Z from in front of the box.
	eye := nav.Camera().Position()
	assert.Greater(t, eye.Z, s.BBox().ZMax)
	assert.True(t, nav.Camera().Orthonormal(1e-4))
}

func TestGizmoTransformKeepsScreenSize(t *testing.T) {
	pivot := math.Vec3{X: 1, Y: 2, Z: 3}
	near := GizmoTransform(pivot, 2, 45, 0.4)
	far := GizmoTransform(pivot, 20, 45, 0.4)

	assert.Equal(t, pivot, near.Translation())
	// Radius divided by distance is constant.
	assert.InDelta(t, near[0]/2, far[0]/20, 1e-6)
	assert.InDelta(t, 0.4*halfHeight(45)*2, near[0], 1e-6)

	// A narrower field of view gives a smaller world-space radius.
	zoomed := GizmoTransform(pivot, 2, 20, 0.4)
	assert.Less(t, zoomed[0], near[0])
}

func TestMarkerTransform(t *testing.T) {
	view := math.Identity()

	m, ok := MarkerTransform(math.Vec3{Z: -10}, view, 45)
	require.True(t, ok)
	m2, ok := MarkerTransform(math.Vec3{Z: -20}, view, 45)
	require.True(t, ok)
	assert.InDelta(t, 2*m[0], m2[0], 1e-5)
	assert.Equal(t, math.Vec3{Z: -10}, m.Translation())

	_, ok = MarkerTransform(math.Vec3{Z: 5}, view, 45)
	assert.False(t, ok)
}

func TestHalfHeight(t *testing.T) {
	assert.InDelta(t, 1, halfHeight(90), 1e-6)
	assert.InDelta(t, 0.41421356, halfHeight(45), 1e-6)
}
