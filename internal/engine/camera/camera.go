// Package camera provides the view-matrix camera and the trackball navigation
// built on top of it.
package camera

import (
	"github.com/Faultbox/gldemos/pkg/math"
)

// Movement is a camera-relative keyboard direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Default camera options.
const (
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0
	DefaultNearPlane   = 0.1
	DefaultFarPlane    = 100.0

	MinZoom = 1.0
	MaxZoom = 45.0
)

// Camera stores a rigid world-to-camera transform plus projection parameters.
// The upper-left 3x3 of the view matrix is a pure rotation and the translation
// lives in the last column; the eye position is derived, never stored.
type Camera struct {
	view math.Mat4

	// Zoom is the vertical field of view in degrees, kept in [MinZoom, MaxZoom].
	Zoom      float32
	NearPlane float32
	FarPlane  float32

	MovementSpeed    float32
	MouseSensitivity float32
}

// New creates a camera with the given view matrix and default options.
func New(view math.Mat4) *Camera {
	return &Camera{
		view:             view,
		Zoom:             DefaultZoom,
		NearPlane:        DefaultNearPlane,
		FarPlane:         DefaultFarPlane,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
	}
}

// NewAt creates a camera at position looking down world -Z.
func NewAt(position math.Vec3) *Camera {
	c := New(math.Identity())
	c.SetPosition(position)
	return c
}

// Reset replaces the view matrix.
func (c *Camera) Reset(view math.Mat4) {
	c.view = view
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return c.view
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *Camera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.Zoom), aspect, c.NearPlane, c.FarPlane)
}

// Position returns the eye position in world space, -R^T * t.
func (c *Camera) Position() math.Vec3 {
	rt := c.view.Rotation().Transpose()
	return rt.TransformDirection(c.view.Translation()).Neg()
}

// SetPosition moves the eye to p in world space keeping the current rotation.
func (c *Camera) SetPosition(p math.Vec3) {
	c.view = c.view.SetTranslation(c.view.TransformDirection(p).Neg())
}

// Front returns the world-space viewing direction (camera -Z).
func (c *Camera) Front() math.Vec3 {
	return c.view.Row(2).Neg()
}

// Up returns the world-space up direction (camera +Y).
func (c *Camera) Up() math.Vec3 {
	return c.view.Row(1)
}

// Right returns the world-space right direction (camera +X).
func (c *Camera) Right() math.Vec3 {
	return c.view.Row(0)
}

// Translate moves the eye by delta expressed in camera space. Moving "forward"
// is always along the current view direction regardless of yaw and pitch.
func (c *Camera) Translate(delta math.Vec3) {
	c.view = c.view.SetTranslation(c.view.Translation().Sub(delta))
}

// Rotate turns the camera by yaw (about camera Y), pitch (about camera X) and
// roll (about camera Z), all in radians. With R = Ry*Rx*Rz the view becomes
// R^T * view; the eye stays where it is.
func (c *Camera) Rotate(yaw, pitch, roll float32) {
	r := math.EulerRotation(yaw, pitch, roll)
	c.view = r.Transpose().Mul(c.view)
}

// SetZoom sets the field of view, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = math.Clamp(zoom, MinZoom, MaxZoom)
}

// ProcessKeyboard moves the eye first-person style.
func (c *Camera) ProcessKeyboard(direction Movement, dt float32) {
	c.Translate(movementDelta(direction, c.MovementSpeed*dt))
}

// ProcessMouseMovement turns the camera about its own eye. dx and dy are pixel
// offsets with y growing upwards.
func (c *Camera) ProcessMouseMovement(dx, dy float32) {
	k := math.Radians(c.MouseSensitivity)
	c.Rotate(-dx*k, dy*k, 0)
}

// ProcessMouseScroll changes the field of view.
func (c *Camera) ProcessMouseScroll(dy float32) {
	c.SetZoom(c.Zoom - dy)
}

// Orthonormal reports whether the rotation block is orthonormal within eps.
func (c *Camera) Orthonormal(eps float32) bool {
	r := c.view.Rotation()
	return r.Mul(r.Transpose()).ApproxEqual(math.Identity(), eps)
}

func movementDelta(direction Movement, velocity float32) math.Vec3 {
	var t math.Vec3
	switch direction {
	case Forward:
		t.Z = -velocity
	case Backward:
		t.Z = velocity
	case Left:
		t.X = -velocity
	case Right:
		t.X = velocity
	}
	return t
}
