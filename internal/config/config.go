// Package config handles loading and saving of the demo settings.
package config

import "fmt"

// Scheme names accepted by ViewerConfig.Scheme.
const (
	SchemeSimple = "simple"
	SchemeShadow = "shadow"
)

// Config holds all settings shared by the demo programs.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Resources ResourcesConfig `yaml:"resources"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	Fullscreen   bool `yaml:"fullscreen"`
	VSync        bool `yaml:"vsync"`
	CaptureMouse bool `yaml:"capture_mouse"`
}

// CameraConfig holds camera movement options.
type CameraConfig struct {
	Speed       float32 `yaml:"speed"`
	Sensitivity float32 `yaml:"sensitivity"`
	Zoom        float32 `yaml:"zoom"`
}

// ViewerConfig holds 3D viewer options.
type ViewerConfig struct {
	// Model is a .gltf/.glb/.obj path; empty shows the built-in test scene.
	Model            string  `yaml:"model"`
	Scheme           string  `yaml:"scheme"`
	ShadowResolution int32   `yaml:"shadow_resolution"`
	GizmoScale       float32 `yaml:"gizmo_scale"`
}

// ResourcesConfig locates assets and shader sources. Empty directories are
// resolved relative to the executable, except ScreenshotDir which defaults
// to the working directory.
type ResourcesConfig struct {
	Dir           string `yaml:"dir"`
	ShaderDir     string `yaml:"shader_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the values the demos were tuned for.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:        800,
			Height:       600,
			Fullscreen:   false,
			VSync:        true,
			CaptureMouse: true,
		},
		Camera: CameraConfig{
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
		},
		Viewer: ViewerConfig{
			Scheme:           SchemeShadow,
			ShadowResolution: 1024,
			GizmoScale:       0.4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects settings no demo can run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	switch c.Viewer.Scheme {
	case SchemeSimple, SchemeShadow:
	default:
		return fmt.Errorf("unknown rendering scheme %q", c.Viewer.Scheme)
	}
	if c.Viewer.ShadowResolution <= 0 {
		return fmt.Errorf("shadow resolution %d must be positive", c.Viewer.ShadowResolution)
	}
	if c.Camera.Zoom < 1 || c.Camera.Zoom > 45 {
		return fmt.Errorf("camera zoom %.1f outside [1, 45]", c.Camera.Zoom)
	}
	return nil
}
