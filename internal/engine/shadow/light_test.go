package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gldemos/pkg/math"
)

func corners(lo, hi math.Vec3) []math.Vec3 {
	var out []math.Vec3
	for i := 0; i < 8; i++ {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		out = append(out, p)
	}
	return out
}

func TestLightFromBBoxCube(t *testing.T) {
	lo := math.Vec3{X: -1, Y: -1, Z: -1}
	hi := math.Vec3{X: 1, Y: 1, Z: 1}
	l := LightFromBBox(lo, hi)

	diag := math.Sqrt(12)
	assert.InDelta(t, 0.51*diag, l.Radius, 1e-5)
	assert.InDelta(t, 2, l.Position.X, 1e-6)
	assert.InDelta(t, 2, l.Position.Y, 1e-6)
	assert.InDelta(t, 2, l.Position.Z, 1e-6)

	inv := 1 / math.Sqrt(3)
	assert.InDelta(t, -inv, l.Direction.X, 1e-5)
	assert.InDelta(t, -inv, l.Direction.Y, 1e-5)
	assert.InDelta(t, -inv, l.Direction.Z, 1e-5)

	assert.InDelta(t, math.Sqrt(3)-0.01*diag, l.NearPlane, 1e-5)
	assert.InDelta(t, 3*math.Sqrt(3)+0.01*diag, l.FarPlane, 1e-5)
	assert.Less(t, l.NearPlane, l.FarPlane)
	assert.Greater(t, l.NearPlane, float32(0))

	assert.True(t, l.Covers(corners(lo, hi)))
	assert.False(t, l.Covers([]math.Vec3{{X: 10, Y: -10}}))
}

func TestLightFromBBoxCoversBoxes(t *testing.T) {
	boxes := []struct {
		name   string
		lo, hi math.Vec3
	}{
		{"ground plane", math.Vec3{X: -25, Y: -0.5, Z: -25}, math.Vec3{X: 25, Y: 2, Z: 25}},
		{"offset", math.Vec3{X: 10, Y: 20, Z: 30}, math.Vec3{X: 11, Y: 25, Z: 31}},
		{"flat", math.Vec3{X: -3, Y: 0, Z: -1}, math.Vec3{X: 3, Y: 0, Z: 1}},
		{"tall", math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 5, Z: 0}},
	}
	for _, tt := range boxes {
		t.Run(tt.name, func(t *testing.T) {
			l := LightFromBBox(tt.lo, tt.hi)
			require.Less(t, l.NearPlane, l.FarPlane)
			assert.InDelta(t, 1, l.Direction.Length(), 1e-5)
			assert.True(t, l.Covers(corners(tt.lo, tt.hi)))
			assert.True(t, l.Covers([]math.Vec3{tt.lo.Lerp(tt.hi, 0.5)}))
		})
	}
}

func TestLightUpAvoidsParallel(t *testing.T) {
	l := LightFromBBox(math.Vec3{}, math.Vec3{Y: 5})
	assert.InDelta(t, -1, l.Direction.Y, 1e-6)
	assert.Equal(t, math.Vec3{Z: 1}, l.Up())

	l = LightFromBBox(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, math.Vec3{Y: 1}, l.Up())
}

func TestLightFromDegenerateBBox(t *testing.T) {
	p := math.Vec3{X: 3, Y: 4, Z: 5}
	l := LightFromBBox(p, p)

	assert.InDelta(t, 0.51, l.Radius, 1e-5)
	assert.Less(t, l.NearPlane, l.FarPlane)
	assert.InDelta(t, 1, l.Direction.Length(), 1e-5)
	assert.True(t, l.Covers([]math.Vec3{p}))
}

func TestLightSpaceMatrixMapsCenterInside(t *testing.T) {
	lo := math.Vec3{X: -2, Y: 0, Z: -2}
	hi := math.Vec3{X: 2, Y: 1, Z: 2}
	l := LightFromBBox(lo, hi)

	c := l.SpaceMatrix().TransformPoint(lo.Lerp(hi, 0.5))
	assert.InDelta(t, 0, c.X, 1e-4)
	assert.InDelta(t, 0, c.Y, 1e-4)
	assert.True(t, c.Z > -1 && c.Z < 1)

	assert.True(t, l.SpaceMatrix().ApproxEqual(l.Projection().Mul(l.View()), 1e-6))
}
