package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportAspect(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want float32
	}{
		{"4:3", Viewport{0, 0, 800, 600}, 800.0 / 600.0},
		{"offset", Viewport{100, 50, 1920, 1080}, 1920.0 / 1080.0},
		{"zero", Viewport{}, 1},
		{"zero height", Viewport{0, 0, 640, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.vp.Aspect(), 1e-6)
		})
	}
}
