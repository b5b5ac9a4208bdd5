package renderer

import "github.com/go-gl/gl/v4.1-core/gl"

// Viewport is a GL viewport rectangle: x, y, width, height.
type Viewport [4]int32

// CurrentViewport reads GL_VIEWPORT.
func CurrentViewport() Viewport {
	var v Viewport
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return v
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v[2] <= 0 || v[3] <= 0 {
		return 1
	}
	return float32(v[2]) / float32(v[3])
}

// Restore makes v the current viewport.
func (v Viewport) Restore() {
	gl.Viewport(v[0], v[1], v[2], v[3])
}
