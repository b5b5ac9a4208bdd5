package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLUploader uploads images as mipmapped 2D textures.
type GLUploader struct{}

// Upload creates a texture with REPEAT wrapping and trilinear filtering.
func (GLUploader) Upload(img *Image) (uint32, error) {
	var format int32
	switch img.Components {
	case 1:
		format = gl.RED
	case 3:
		format = gl.RGB
	case 4:
		format = gl.RGBA
	default:
		return 0, fmt.Errorf("unsupported component count %d", img.Components)
	}
	if img.Width == 0 || img.Height == 0 {
		return 0, fmt.Errorf("empty image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	// RGB and RED rows are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, format, int32(img.Width), int32(img.Height), 0,
		uint32(format), gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return id, nil
}

// Delete frees the given textures.
func (GLUploader) Delete(ids []uint32) {
	gl.DeleteTextures(int32(len(ids)), &ids[0])
}
