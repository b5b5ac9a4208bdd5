package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagModel      = flag.String("model", "", "Model file to view (.gltf, .glb, .obj)")
	flagScheme     = flag.String("scheme", "", "Rendering scheme: simple or shadow")
	flagResources  = flag.String("resources", "", "Resource directory")
	flagShaders    = flag.String("shaders", "", "Directory with shader sources overriding the built-in ones")
	flagShots      = flag.String("screenshots", "", "Directory for F12 screenshots")
	flagWriteCfg   = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteCfg
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagModel != "" {
		cfg.Viewer.Model = *flagModel
	}
	if *flagScheme != "" {
		cfg.Viewer.Scheme = *flagScheme
	}
	if *flagResources != "" {
		cfg.Resources.Dir = *flagResources
	}
	if *flagShaders != "" {
		cfg.Resources.ShaderDir = *flagShaders
	}
	if *flagShots != "" {
		cfg.Resources.ScreenshotDir = *flagShots
	}
}
