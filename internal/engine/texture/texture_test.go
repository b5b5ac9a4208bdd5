package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tgaHeader builds an 18 byte header for a w*h image.
func tgaHeader(imageType byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x1 BGR, bottom-up: red then green.
	data := append(tgaHeader(tgaTypeTrueColor, 2, 1, 24, false), 0, 0, 255, 0, 255, 0)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	n, ok := img.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, n.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, n.NRGBAAt(1, 0))
}

func TestDecodeTGABottomUpRows(t *testing.T) {
	// 1x2, first stored row is the bottom one.
	data := append(tgaHeader(tgaTypeTrueColor, 1, 2, 32, false),
		255, 0, 0, 255, // blue, bottom
		0, 0, 255, 128, // red, top
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	n := img.(*image.NRGBA)
	assert.Equal(t, color.NRGBA{R: 255, A: 128}, n.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, n.NRGBAAt(0, 1))
}

func TestDecodeTGARLE(t *testing.T) {
	// Run of 3 white pixels then one raw black pixel, top-to-bottom.
	data := append(tgaHeader(tgaTypeTrueColorRLE, 4, 1, 24, true),
		0x82, 255, 255, 255,
		0x00, 0, 0, 0,
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	n := img.(*image.NRGBA)
	for x := 0; x < 3; x++ {
		assert.Equal(t, color.NRGBA{255, 255, 255, 255}, n.NRGBAAt(x, 0))
	}
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, n.NRGBAAt(3, 0))
}

func TestDecodeTGAGray(t *testing.T) {
	data := append(tgaHeader(tgaTypeGray, 2, 1, 8, true), 10, 200)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	g, ok := img.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, uint8(10), g.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(200), g.GrayAt(1, 0).Y)
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(1, 1, 1, 8, false); h[1] = 1; return h }()},
		{"bad depth", tgaHeader(tgaTypeTrueColor, 1, 1, 16, false)},
		{"truncated", append(tgaHeader(tgaTypeTrueColor, 2, 2, 24, false), 1, 2, 3)},
		{"zero size", tgaHeader(tgaTypeTrueColor, 0, 4, 24, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeFlipsVertically(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255}) // top
	src.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255}) // bottom

	img, err := Decode(encodePNG(t, src), ".png")
	require.NoError(t, err)
	assert.Equal(t, 3, img.Components)
	// First packed row is the bottom of the picture.
	assert.Equal(t, []byte{0, 0, 255, 255, 0, 0}, img.Pix)
}

func TestDecodeComponents(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 64})

	img, err := Decode(encodePNG(t, gray), ".png")
	require.NoError(t, err)
	assert.Equal(t, 1, img.Components)
	assert.Len(t, img.Pix, 4)

	img, err = Decode(encodePNG(t, translucent), ".png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Components)
	assert.Equal(t, []byte{255, 0, 0, 64}, img.Pix)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"), ".jpg")
	assert.Error(t, err)
}

type fakeUploader struct {
	next    uint32
	uploads int
	deleted []uint32
	fail    bool
}

func (f *fakeUploader) Upload(*Image) (uint32, error) {
	if f.fail {
		return 0, errors.New("no context")
	}
	f.next++
	f.uploads++
	return f.next, nil
}

func (f *fakeUploader) Delete(ids []uint32) {
	f.deleted = append(f.deleted, ids...)
}

func writeTexture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 2, 2))), 0644))
	return path
}

func TestLibraryCachesByNormalizedPath(t *testing.T) {
	dir := t.TempDir()
	path := writeTexture(t, dir, "wall.png")
	up := &fakeUploader{}
	lib := NewLibraryWith(up)

	a, ok := lib.Load(path, Diffuse)
	require.True(t, ok)
	b, ok := lib.Load(filepath.Join(dir, "sub", "..", "wall.png"), Specular)
	require.True(t, ok)

	assert.Equal(t, a.Index, b.Index)
	assert.Equal(t, Specular, b.Kind)
	assert.Equal(t, 1, up.uploads)
	assert.Equal(t, 1, lib.Len())
	assert.Equal(t, uint32(1), lib.ID(a))
	assert.Equal(t, path, lib.Path(a))
}

func TestLibraryMissingFileDegrades(t *testing.T) {
	up := &fakeUploader{}
	lib := NewLibraryWith(up)

	ref, ok := lib.Load(filepath.Join(t.TempDir(), "missing.png"), Diffuse)
	assert.False(t, ok)
	assert.Equal(t, uint32(0), lib.ID(ref))
	assert.Equal(t, 1, lib.Len())
	assert.Zero(t, up.uploads)

	// A second request does not retry.
	_, ok = lib.Load(lib.Path(ref), Diffuse)
	assert.False(t, ok)
	assert.Equal(t, 1, lib.Len())
}

func TestLibraryUploadFailure(t *testing.T) {
	path := writeTexture(t, t.TempDir(), "a.png")
	lib := NewLibraryWith(&fakeUploader{fail: true})

	ref, ok := lib.Load(path, Normal)
	assert.False(t, ok)
	assert.Equal(t, uint32(0), lib.ID(ref))
}

func TestLibraryRelease(t *testing.T) {
	dir := t.TempDir()
	up := &fakeUploader{}
	lib := NewLibraryWith(up)
	lib.Load(writeTexture(t, dir, "a.png"), Diffuse)
	lib.Load(writeTexture(t, dir, "b.png"), Height)

	lib.Release()
	lib.Release()

	assert.ElementsMatch(t, []uint32{1, 2}, up.deleted)
	assert.Zero(t, lib.Len())
	assert.Equal(t, uint32(0), lib.ID(Ref{Index: 0}))
}

func TestKindSamplerPrefix(t *testing.T) {
	assert.Equal(t, "texture_diffuse", Diffuse.SamplerPrefix())
	assert.Equal(t, "texture_specular", Specular.SamplerPrefix())
	assert.Equal(t, "texture_normal", Normal.SamplerPrefix())
	assert.Equal(t, "texture_height", Height.SamplerPrefix())
	assert.Equal(t, "height", Height.String())
}

func TestLibraryLoadBytes(t *testing.T) {
	up := &fakeUploader{}
	lib := NewLibraryWith(up)
	data := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 4)))

	a, ok := lib.LoadBytes("scene.glb#image0", data, "", Diffuse)
	require.True(t, ok)
	b, ok := lib.LoadBytes("scene.glb#image0", data, "", Normal)
	require.True(t, ok)
	assert.Equal(t, a.Index, b.Index)
	assert.Equal(t, Normal, b.Kind)
	assert.Equal(t, 1, up.uploads)

	bad, ok := lib.LoadBytes("scene.glb#image1", []byte{1, 2, 3}, "", Diffuse)
	assert.False(t, ok)
	assert.Equal(t, uint32(0), lib.ID(bad))
	assert.Equal(t, 2, lib.Len())
}
