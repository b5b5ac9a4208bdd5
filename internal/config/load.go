package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags, then
// resolves resource paths and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.resolvePaths(ExecutableDir()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GLDemos")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GLDemos")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gldemos")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gldemos")
	}
}

// ExecutableDir returns the absolute directory of the running binary, or the
// working directory if it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// resolvePaths makes resource paths absolute. An empty resource directory
// becomes <exeDir>/resources.
func (c *Config) resolvePaths(exeDir string) error {
	if c.Resources.Dir == "" {
		c.Resources.Dir = filepath.Join(exeDir, "resources")
	}
	var err error
	if c.Resources.Dir, err = filepath.Abs(c.Resources.Dir); err != nil {
		return fmt.Errorf("resolving resource dir: %w", err)
	}
	if c.Resources.ShaderDir != "" {
		if c.Resources.ShaderDir, err = filepath.Abs(c.Resources.ShaderDir); err != nil {
			return fmt.Errorf("resolving shader dir: %w", err)
		}
	}
	return nil
}

// ResourcePath joins elem onto the resource directory.
func (c *Config) ResourcePath(elem ...string) string {
	return filepath.Join(append([]string{c.Resources.Dir}, elem...)...)
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
