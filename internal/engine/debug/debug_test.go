package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gldemos/internal/engine/scene"
	"github.com/Faultbox/gldemos/pkg/math"
)

func TestBBoxWireframe(t *testing.T) {
	lo := math.Vec3{X: -1, Y: -2, Z: -3}
	hi := math.Vec3{X: 4, Y: 5, Z: 6}
	m := BBoxWireframe(lo, hi, math.Vec4{1, 1, 1, 1})

	require.Len(t, m.Vertices, 8)
	require.Len(t, m.Indices, 24)
	assert.Equal(t, scene.Lines, m.Primitive)

	box, ok := scene.ComputeBBox([]*scene.Mesh{m})
	require.True(t, ok)
	assert.Equal(t, scene.BBox{XMin: -1, XMax: 4, YMin: -2, YMax: 5, ZMin: -3, ZMax: 6}, box)

	// Every edge joins corners that differ in exactly one coordinate.
	for i := 0; i < len(m.Indices); i += 2 {
		d := m.Indices[i] ^ m.Indices[i+1]
		assert.True(t, d == 1 || d == 2 || d == 4, "edge %d-%d", m.Indices[i], m.Indices[i+1])
	}
}

func TestBBoxTransform(t *testing.T) {
	box := scene.BBox{XMin: 0, XMax: 2, YMin: -1, YMax: 1, ZMin: 4, ZMax: 8}
	m := BBoxTransform(box, 0)

	lo := m.TransformPoint(math.Vec3{X: -1, Y: -1, Z: -1})
	hi := m.TransformPoint(math.Vec3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, box.Min(), lo)
	assert.Equal(t, box.Max(), hi)

	padded := BBoxTransform(box, 0.5).TransformPoint(math.Vec3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, math.Vec3{X: 2.5, Y: 1.5, Z: 8.5}, padded)
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "viewer")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// Two rows, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "viewer_2024-05-01_12-30-00.000.png"), name)

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{B: 255, A: 255}, color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, color.RGBAModel.Convert(img.At(0, 1)))
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	_, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}
