// Package texture decodes images and owns the GL texture objects built from
// them.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// Image is tightly packed 8-bit pixel data ready for glTexImage2D. Rows are
// stored bottom-up, matching GL's texture origin.
type Image struct {
	Width      int
	Height     int
	Components int // 1, 3 or 4
	Pix        []byte
}

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Decode decodes data. ext selects the TGA decoder, which has no magic
// number; every other format is sniffed by the image package.
func Decode(data []byte, ext string) (*Image, error) {
	var (
		src image.Image
		err error
	)
	if strings.EqualFold(ext, ".tga") {
		src, err = DecodeTGA(data)
	} else {
		src, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	return pack(src), nil
}

// pack converts src to 1, 3 or 4 tightly packed components and flips it
// vertically.
func pack(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	comps := components(src)
	out := &Image{Width: w, Height: h, Components: comps, Pix: make([]byte, w*h*comps)}

	for y := 0; y < h; y++ {
		row := (h - 1 - y) * w * comps
		for x := 0; x < w; x++ {
			i := row + x*comps
			switch comps {
			case 1:
				out.Pix[i] = grayAt(src, b.Min.X+x, b.Min.Y+y)
			default:
				r, g, bl, a := nrgbaAt(src, b.Min.X+x, b.Min.Y+y)
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = r, g, bl
				if comps == 4 {
					out.Pix[i+3] = a
				}
			}
		}
	}
	return out
}

func components(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return 3
		}
	}
	return 4
}

func grayAt(img image.Image, x, y int) uint8 {
	if g, ok := img.(*image.Gray); ok {
		return g.GrayAt(x, y).Y
	}
	r, _, _, _ := img.At(x, y).RGBA()
	return uint8(r >> 8)
}

// nrgbaAt returns non-premultiplied 8-bit components.
func nrgbaAt(img image.Image, x, y int) (r, g, b, a uint8) {
	if n, ok := img.(*image.NRGBA); ok {
		c := n.NRGBAAt(x, y)
		return c.R, c.G, c.B, c.A
	}
	r32, g32, b32, a32 := img.At(x, y).RGBA()
	if a32 == 0 {
		return 0, 0, 0, 0
	}
	if a32 != 0xffff {
		r32 = r32 * 0xffff / a32
		g32 = g32 * 0xffff / a32
		b32 = b32 * 0xffff / a32
	}
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8), uint8(a32 >> 8)
}
