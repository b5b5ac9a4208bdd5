package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gldemos/internal/logger"

	"github.com/Faultbox/gldemos/pkg/math"
)

func newFramedNavigation() *Navigation {
	n := NewNavigation(New(math.Identity()))
	n.Frame(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
	return n
}

func TestSetTrackballCenterFromIdentity(t *testing.T) {
	n := NewNavigation(New(math.Identity()))

	n.SetTrackballCenter(math.Vec3{Z: -5})

	assert.InDelta(t, 5.0, n.TrackballDistance(), eps)
	assertVecNear(t, math.Vec3{Z: -5}, n.TrackballCenter())
}

func TestSetTrackballCenterTurnsTowardsPoint(t *testing.T) {
	cam := NewAt(math.Vec3{X: 1, Y: 2, Z: 3})
	n := NewNavigation(cam)
	p := math.Vec3{X: -2, Y: 0, Z: -1}

	n.SetTrackballCenter(p)

	assertVecNear(t, math.Vec3{X: 1, Y: 2, Z: 3}, cam.Position(), "eye must not move")
	assertVecNear(t, p.Sub(cam.Position()).Normalize(), cam.Front())
	assertVecNear(t, p, n.TrackballCenter())
	assert.InDelta(t, p.Distance(cam.Position()), n.TrackballDistance(), eps)
	assert.True(t, cam.Orthonormal(1e-5))
}

func TestSetTrackballCenterAlreadyAhead(t *testing.T) {
	cam := NewAt(math.Vec3{})
	n := NewNavigation(cam)
	before := cam.ViewMatrix()

	n.SetTrackballCenter(math.Vec3{Z: -3})

	assert.Equal(t, before, cam.ViewMatrix(), "parallel fronts must short-circuit to identity")
	assert.InDelta(t, 3.0, n.TrackballDistance(), eps)
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestSetTrackballCenterBehindEyeWarns(t *testing.T) {
	logs := observeLogs(t)
	n := NewNavigation(New(math.Identity()))

	n.SetTrackballCenter(math.Vec3{Z: 5})

	// No rotation axis exists, so the camera keeps facing -Z and the pivot
	// lands at the same distance in front of it.
	assert.Equal(t, math.Identity(), n.Camera().ViewMatrix())
	assertVecNear(t, math.Vec3{Z: -5}, n.TrackballCenter())
	assert.Equal(t, 1, logs.FilterMessage("trackball center is behind the camera, pivot placed in front").Len())

	n.SetTrackballCenter(math.Vec3{X: 1, Z: 5})
	assert.Equal(t, 1, logs.Len(), "off-axis points behind the eye still rotate")
	assertVecNear(t, math.Vec3{X: 1, Z: 5}, n.TrackballCenter())
}

func TestMouseMovementKeepsPivot(t *testing.T) {
	moves := [][2]float32{{10, 0}, {0, -25}, {120, 80}, {-300, 45}, {0.5, 0.25}}
	for _, m := range moves {
		n := newFramedNavigation()
		n.SetTrackballCenter(math.Vec3{X: 0.3, Y: -0.2, Z: 0.1})
		pivot := n.TrackballCenter()
		dist := n.TrackballDistance()

		n.ProcessMouseMovement(m[0], m[1])

		assertVecNear(t, pivot, n.TrackballCenter(), "move %v", m)
		assert.InDelta(t, dist, n.Camera().Position().Distance(pivot), eps, "move %v", m)
		assert.True(t, n.Camera().Orthonormal(1e-4))
	}
}

func TestMouseMovementSequenceKeepsPivot(t *testing.T) {
	n := newFramedNavigation()
	pivot := n.TrackballCenter()

	for i := 0; i < 50; i++ {
		n.ProcessMouseMovement(float32(i%7)-3, float32(i%5)-2)
	}

	// Rotations compose without drift correction; allow for float32 accumulation.
	got := n.TrackballCenter()
	assert.InDelta(t, pivot.X, got.X, 1e-3)
	assert.InDelta(t, pivot.Y, got.Y, 1e-3)
	assert.InDelta(t, pivot.Z, got.Z, 1e-3)
}

func TestMoveCameraToTrackballDistance(t *testing.T) {
	n := newFramedNavigation()
	cam := n.Camera()
	pivot := n.TrackballCenter()

	for _, d := range []float32{cam.NearPlane, 0.5, 2, 17, cam.FarPlane} {
		n.MoveCameraToTrackballDistance(d)

		assert.InDelta(t, d, n.TrackballDistance(), eps)
		assertVecNear(t, pivot, n.TrackballCenter())
		assert.InDelta(t, d, cam.Position().Distance(pivot), 1e-3)
	}
}

func TestKeyboardIgnoresPivot(t *testing.T) {
	n := NewNavigation(NewAt(math.Vec3{}))
	n.SetTrackballCenter(math.Vec3{Z: -4})

	n.ProcessKeyboard(Right, 2)

	assertVecNear(t, math.Vec3{X: 2 * DefaultSpeed}, n.Camera().Position())
	assert.InDelta(t, 4.0, n.TrackballDistance(), eps)
}

func TestScrollDolliesBetweenPlanes(t *testing.T) {
	n := newFramedNavigation()
	cam := n.Camera()
	d := n.TrackballDistance()
	require.Greater(t, d, cam.NearPlane)
	require.Less(t, d, cam.FarPlane)
	zoom := cam.Zoom

	n.ProcessMouseScroll(1)

	assert.InDelta(t, d*0.98, n.TrackballDistance(), eps)
	assert.Equal(t, zoom, cam.Zoom)
}

func TestScrollRatioIsClamped(t *testing.T) {
	n := newFramedNavigation()
	d := n.TrackballDistance()

	n.ProcessMouseScroll(100)

	assert.InDelta(t, d*0.9, n.TrackballDistance(), eps)
}

func TestScrollAtFarPlaneZoomsFOV(t *testing.T) {
	n := newFramedNavigation()
	cam := n.Camera()
	cam.SetZoom(30)
	n.MoveCameraToTrackballDistance(cam.FarPlane)

	n.ProcessMouseScroll(-1)

	assert.Equal(t, cam.FarPlane, n.TrackballDistance())
	assert.InDelta(t, 30*1.02, cam.Zoom, eps)
}

func TestScrollAtNearPlaneZoomsFOV(t *testing.T) {
	n := newFramedNavigation()
	cam := n.Camera()
	n.MoveCameraToTrackballDistance(cam.NearPlane)

	n.ProcessMouseScroll(2)

	assert.Equal(t, cam.NearPlane, n.TrackballDistance())
	assert.InDelta(t, DefaultZoom*0.96, cam.Zoom, eps)
}

func TestScrollLeavesPinnedPlane(t *testing.T) {
	n := newFramedNavigation()
	cam := n.Camera()
	n.MoveCameraToTrackballDistance(cam.FarPlane)

	// Zooming in at the far plane dollies again.
	n.ProcessMouseScroll(1)

	assert.Less(t, n.TrackballDistance(), cam.FarPlane)
	assert.Equal(t, float32(DefaultZoom), cam.Zoom)
}

func TestScrollClampsToFarPlane(t *testing.T) {
	n := newFramedNavigation()
	cam := n.Camera()
	n.MoveCameraToTrackballDistance(cam.FarPlane * 0.99)

	n.ProcessMouseScroll(-5)

	assert.Equal(t, cam.FarPlane, n.TrackballDistance())
}

func TestFrame(t *testing.T) {
	n := newFramedNavigation()
	cam := n.Camera()

	// Σ extents of the [-1,1] cube is 6.
	assertVecNear(t, math.Vec3{Z: 6}, cam.Position())
	assertVecNear(t, math.Vec3{}, n.TrackballCenter())
	assert.InDelta(t, 6.0, n.TrackballDistance(), eps)
	assert.Less(t, cam.NearPlane, n.TrackballDistance())
	assert.Greater(t, cam.FarPlane, n.TrackballDistance())
}
