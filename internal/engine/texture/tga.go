package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	tgaTypeTrueColor    = 2
	tgaTypeGray         = 3
	tgaTypeTrueColorRLE = 10
	tgaTypeGrayRLE      = 11
)

// DecodeTGA decodes a TGA image. Supports true-color (24/32 bpp) and
// grayscale (8 bpp) images, uncompressed or RLE compressed. Grayscale input
// yields *image.Gray, everything else *image.NRGBA.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	gray := imageType == tgaTypeGray || imageType == tgaTypeGrayRLE
	switch imageType {
	case tgaTypeTrueColor, tgaTypeTrueColorRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
		}
	case tgaTypeGray, tgaTypeGrayRLE:
		if bpp != 8 {
			return nil, fmt.Errorf("unsupported grayscale TGA bit depth %d", bpp)
		}
	default:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA has zero size %dx%d", width, height)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	src := data[offset:]
	bytesPerPixel := bpp / 8

	// Bit 5 of the descriptor marks top-to-bottom row order.
	topToBottom := descriptor&0x20 != 0

	var pixels []byte
	if imageType == tgaTypeTrueColorRLE || imageType == tgaTypeGrayRLE {
		pixels = expandTGARLE(src, width*height, bytesPerPixel)
	} else {
		pixels = src
	}
	if len(pixels) < width*height*bytesPerPixel {
		return nil, fmt.Errorf("TGA pixel data truncated")
	}

	if gray {
		img := image.NewGray(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			destY := y
			if !topToBottom {
				destY = height - 1 - y
			}
			copy(img.Pix[destY*img.Stride:destY*img.Stride+width], pixels[y*width:(y+1)*width])
		}
		return img, nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		destY := y
		if !topToBottom {
			destY = height - 1 - y
		}
		for x := 0; x < width; x++ {
			i := (y*width + x) * bytesPerPixel
			a := uint8(255)
			if bytesPerPixel == 4 {
				a = pixels[i+3]
			}
			img.SetNRGBA(x, destY, color.NRGBA{R: pixels[i+2], G: pixels[i+1], B: pixels[i], A: a})
		}
	}
	return img, nil
}

// expandTGARLE unpacks RLE packets into raw pixel bytes. Output stops early
// when the input runs out.
func expandTGARLE(src []byte, pixelCount, bytesPerPixel int) []byte {
	out := make([]byte, 0, pixelCount*bytesPerPixel)
	n := 0
	i := 0

	for n < pixelCount && i < len(src) {
		packet := src[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+bytesPerPixel > len(src) {
				break
			}
			px := src[i : i+bytesPerPixel]
			i += bytesPerPixel
			for k := 0; k < count && n < pixelCount; k++ {
				out = append(out, px...)
				n++
			}
			continue
		}

		for k := 0; k < count && n < pixelCount; k++ {
			if i+bytesPerPixel > len(src) {
				return out
			}
			out = append(out, src[i:i+bytesPerPixel]...)
			i += bytesPerPixel
			n++
		}
	}
	return out
}
