package shadow

import (
	"github.com/Faultbox/gldemos/pkg/math"
)

// Light is a directional light with an orthographic shadow frustum.
// Radius is the half extent of the square frustum cross-section.
type Light struct {
	Position  math.Vec3
	Direction math.Vec3
	NearPlane float32
	FarPlane  float32
	Radius    float32
}

// depthMargin widens near/far by this fraction of the box diagonal.
const depthMargin = 0.01

// LightFromBBox places a light beyond the max corner hi of the box [lo, hi],
// looking back through the box centre, with a frustum that contains every
// corner of the box.
func LightFromBBox(lo, hi math.Vec3) Light {
	diag := hi.Sub(lo)
	if diag.Length() < 1e-6 {
		diag = math.Vec3{X: 1, Y: 1, Z: 1}.Normalize()
		hi = lo.Add(diag)
	}
	length := diag.Length()
	center := lo.Add(hi).Scale(0.5)
	position := hi.Add(diag.Scale(0.5))

	margin := depthMargin * length
	return Light{
		Position:  position,
		Direction: center.Sub(position).Normalize(),
		NearPlane: max(position.Distance(hi)-margin, margin),
		FarPlane:  position.Distance(lo) + margin,
		Radius:    0.51 * length,
	}
}

// Up returns the up vector used for the light view. Z is used when the
// light points along Y.
func (l Light) Up() math.Vec3 {
	if math.Abs(l.Direction.Normalize().Y) > 0.999 {
		return math.Vec3{Z: 1}
	}
	return math.Vec3{Y: 1}
}

// View returns the world-to-light transform.
func (l Light) View() math.Mat4 {
	return math.LookAt(l.Position, l.Position.Add(l.Direction), l.Up())
}

// Projection returns the orthographic light projection.
func (l Light) Projection() math.Mat4 {
	return math.Ortho(-l.Radius, l.Radius, -l.Radius, l.Radius, l.NearPlane, l.FarPlane)
}

// SpaceMatrix returns Projection·View, the lightSpaceMatrix shader uniform.
func (l Light) SpaceMatrix() math.Mat4 {
	return l.Projection().Mul(l.View())
}

// Covers reports whether every point lies inside the light frustum.
func (l Light) Covers(points []math.Vec3) bool {
	m := l.SpaceMatrix()
	const eps = 1e-4
	for _, p := range points {
		c := m.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
		for i := 0; i < 3; i++ {
			if c[i] < -1-eps || c[i] > 1+eps {
				return false
			}
		}
	}
	return true
}
