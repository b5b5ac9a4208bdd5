// Package renderer loads OpenGL and manages the default framebuffer state
// the demos share.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/logger"
)

// Info describes the OpenGL implementation.
type Info struct {
	Version         string
	Renderer        string
	GLSL            string
	MaxTextureUnits int32
}

// Init loads the OpenGL function pointers for the current context and sets
// the default state. It must run after the context is created.
func Init() (Info, error) {
	if err := gl.Init(); err != nil {
		return Info{}, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	info := Info{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	gl.GetIntegerv(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS, &info.MaxTextureUnits)

	logger.Info("OpenGL initialized",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
		zap.String("glsl", info.GLSL),
		zap.Int32("texture_units", info.MaxTextureUnits),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	return info, nil
}

// Resize sets the viewport to the whole drawable.
func Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Clear clears the colour and depth buffers to the given colour.
func Clear(r, g, b float32) {
	gl.ClearColor(r, g, b, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetWireframe switches polygon rasterisation between lines and fill.
func SetWireframe(on bool) {
	mode := uint32(gl.FILL)
	if on {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
}
