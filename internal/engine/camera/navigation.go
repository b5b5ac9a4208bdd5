package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/logger"
	"github.com/Faultbox/gldemos/pkg/math"
)

// Scroll zoom limits: one wheel notch changes distance or FOV by 2%, at most 10%.
const (
	scrollStep     = 0.02
	maxScrollRatio = 0.1
)

// Navigation drives a Camera trackball style: orbiting, dollying and zooming
// around a pivot that sits in front of the eye.
type Navigation struct {
	camera *Camera

	// trackballCenter is the pivot in camera space. It always lies on the
	// camera's -Z axis, so Z equals minus the pivot distance.
	trackballCenter math.Vec3

	MovementSpeed    float32
	MouseSensitivity float32
}

// NewNavigation wraps cam with the pivot one unit in front of the eye.
func NewNavigation(cam *Camera) *Navigation {
	if cam == nil {
		cam = New(math.Identity())
	}
	return &Navigation{
		camera:           cam,
		trackballCenter:  math.Vec3{Z: -1},
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
	}
}

// Camera returns the navigated camera.
func (n *Navigation) Camera() *Camera {
	return n.camera
}

// SetTrackballCenter turns the camera in place so that it faces the world point
// p and makes p the new pivot.
func (n *Navigation) SetTrackballCenter(p math.Vec3) {
	view := n.camera.ViewMatrix()
	target := view.TransformPoint(p)
	d := target.Length()
	if d == 0 {
		logger.Warn("trackball center coincides with the eye, ignored")
		return
	}

	// Rotate in camera space so the target lands on -Z; the eye is the origin
	// of camera space and therefore does not move.
	dir := target.Scale(1 / d)
	if dir.X == 0 && dir.Y == 0 && dir.Z > 0 {
		// VecToVecRotation has no axis for opposite vectors and returns
		// identity, so the pivot ends up in front of the eye instead of p.
		logger.Warn("trackball center is behind the camera, pivot placed in front",
			zap.Float32s("center", []float32{p.X, p.Y, p.Z}),
			zap.Float32("distance", d),
		)
	}
	r := math.VecToVecRotation(dir, math.Vec3{Z: -1})
	n.camera.Reset(r.Mul(view))
	n.trackballCenter = math.Vec3{Z: -d}

	logger.Debug("trackball center set",
		zap.Float32s("center", []float32{p.X, p.Y, p.Z}),
		zap.Float32("distance", d),
	)
}

// TrackballCenter returns the pivot in world space.
func (n *Navigation) TrackballCenter() math.Vec3 {
	return n.camera.ViewMatrix().RigidInverse().TransformPoint(n.trackballCenter)
}

// TrackballDistance returns the eye-to-pivot distance.
func (n *Navigation) TrackballDistance() float32 {
	return -n.trackballCenter.Z
}

// MoveCameraToTrackballDistance dollies the camera along its view axis so the
// pivot, fixed in world space, ends up exactly d away.
func (n *Navigation) MoveCameraToTrackballDistance(d float32) {
	n.camera.Translate(math.Vec3{Z: d + n.trackballCenter.Z})
	n.trackballCenter.Z = -d
}

// ProcessKeyboard strafes the camera in its own frame, independent of the pivot.
func (n *Navigation) ProcessKeyboard(direction Movement, dt float32) {
	n.camera.Translate(movementDelta(direction, n.MovementSpeed*dt))
}

// ProcessMouseMovement orbits the camera about the pivot. dx and dy are pixel
// offsets with y growing upwards.
func (n *Navigation) ProcessMouseMovement(dx, dy float32) {
	k := math.Radians(n.MouseSensitivity)
	yaw := dx * k
	pitch := -dy * k

	n.camera.Translate(n.trackballCenter)
	n.camera.Rotate(yaw, pitch, 0)
	n.camera.Translate(n.trackballCenter.Neg())
}

// ProcessMouseScroll dollies towards or away from the pivot. Once the distance
// is pinned at the near (zooming in) or far (zooming out) clip plane the field
// of view changes instead, so every wheel step has a visible effect.
func (n *Navigation) ProcessMouseScroll(dy float32) {
	ratio := math.Clamp(scrollStep*dy, -maxScrollRatio, maxScrollRatio)
	cam := n.camera
	d := n.TrackballDistance()

	if (d == cam.NearPlane && ratio > 0) || (d == cam.FarPlane && ratio < 0) {
		cam.SetZoom(cam.Zoom * (1 - ratio))
		return
	}
	n.MoveCameraToTrackballDistance(math.Clamp(d*(1-ratio), cam.NearPlane, cam.FarPlane))
}

// Frame places the camera in front of the box [lo, hi], looking at its centre
// along world -Z, and derives clip planes from the box size. The pivot becomes
// the box centre.
func (n *Navigation) Frame(lo, hi math.Vec3) {
	center := lo.Lerp(hi, 0.5)
	ext := hi.Sub(lo)
	dist := ext.X + ext.Y + ext.Z
	if dist <= 0 {
		dist = 1
	}
	diag := ext.Length()
	if diag <= 0 {
		diag = 1
	}

	eye := center.Add(math.Vec3{Z: dist})
	cam := n.camera
	cam.Reset(math.LookAt(eye, center, math.Vec3{Y: 1}))
	cam.NearPlane = 0.01 * dist
	cam.FarPlane = 10 * (dist + diag)
	cam.Zoom = DefaultZoom
	n.SetTrackballCenter(center)

	logger.Debug("camera framed",
		zap.Float32("distance", dist),
		zap.Float32("near", cam.NearPlane),
		zap.Float32("far", cam.FarPlane),
	)
}
