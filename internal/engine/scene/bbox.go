package scene

import "github.com/Faultbox/gldemos/pkg/math"

// BBox is an axis-aligned bounding box.
type BBox struct {
	XMin, XMax float32
	YMin, YMax float32
	ZMin, ZMax float32
}

// ComputeBBox scans every vertex of every mesh. ok is false when there are no
// vertices, in which case the box is zero.
func ComputeBBox(meshes []*Mesh) (box BBox, ok bool) {
	for _, mesh := range meshes {
		for i := range mesh.Vertices {
			p := mesh.Vertices[i].Position
			if !ok {
				box = BBox{p.X, p.X, p.Y, p.Y, p.Z, p.Z}
				ok = true
				continue
			}
			box.extend(p)
		}
	}
	return box, ok
}

// extend grows the box to contain p. Each axis is checked against both
// bounds independently.
func (b *BBox) extend(p math.Vec3) {
	if p.X < b.XMin {
		b.XMin = p.X
	}
	if p.X > b.XMax {
		b.XMax = p.X
	}
	if p.Y < b.YMin {
		b.YMin = p.Y
	}
	if p.Y > b.YMax {
		b.YMax = p.Y
	}
	if p.Z < b.ZMin {
		b.ZMin = p.Z
	}
	if p.Z > b.ZMax {
		b.ZMax = p.Z
	}
}

// Min returns the (xmin, ymin, zmin) corner.
func (b BBox) Min() math.Vec3 { return math.Vec3{X: b.XMin, Y: b.YMin, Z: b.ZMin} }

// Max returns the (xmax, ymax, zmax) corner.
func (b BBox) Max() math.Vec3 { return math.Vec3{X: b.XMax, Y: b.YMax, Z: b.ZMax} }

// Center returns the midpoint of the box.
func (b BBox) Center() math.Vec3 { return b.Min().Lerp(b.Max(), 0.5) }

// Size returns the extent along each axis.
func (b BBox) Size() math.Vec3 { return b.Max().Sub(b.Min()) }

// Diagonal returns the length of the main diagonal.
func (b BBox) Diagonal() float32 { return b.Size().Length() }

// Corners returns all eight corners.
func (b BBox) Corners() [8]math.Vec3 {
	var c [8]math.Vec3
	for i := range c {
		c[i] = math.Vec3{X: b.XMin, Y: b.YMin, Z: b.ZMin}
		if i&1 != 0 {
			c[i].X = b.XMax
		}
		if i&2 != 0 {
			c[i].Y = b.YMax
		}
		if i&4 != 0 {
			c[i].Z = b.ZMax
		}
	}
	return c
}
