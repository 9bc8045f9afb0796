package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and export settings.
type Config struct {
	// Paths
	Scene      string   `json:"scene" yaml:"scene"`
	ExportDir  string   `json:"export_dir" yaml:"export_dir"`
	ExportName string   `json:"export_name" yaml:"export_name"`
	TextureDir string   `json:"texture_dir" yaml:"texture_dir"`
	Textures   []string `json:"textures" yaml:"textures"`

	// Export settings
	AxisForward   string  `json:"axis_forward" yaml:"axis_forward"`
	AxisUp        string  `json:"axis_up" yaml:"axis_up"`
	Scale         float64 `json:"scale" yaml:"scale"`
	Smoothing     string  `json:"smoothing" yaml:"smoothing"`
	PathMode      string  `json:"path_mode" yaml:"path_mode"`
	SimplifyRatio float64 `json:"simplify_ratio" yaml:"simplify_ratio"`

	// Texture previews
	Previews    bool `json:"previews" yaml:"previews"`
	PreviewSize int  `json:"preview_size" yaml:"preview_size"`
}

// Load reads a JSON or YAML config file, selected by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene      string
	ExportDir  string
	ExportName string
	TextureDir string
	Scale      float64
	Simplify   float64
	Previews   bool
}

// Resolve applies flag overrides and fills empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.ExportDir != "" {
		c.ExportDir = flags.ExportDir
	}
	if flags.ExportName != "" {
		c.ExportName = flags.ExportName
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Simplify > 0 {
		c.SimplifyRatio = flags.Simplify
	}
	if flags.Previews {
		c.Previews = true
	}

	if c.ExportDir == "" && c.Scene != "" {
		c.ExportDir = filepath.Join(filepath.Dir(c.Scene), "export")
	}
	if c.ExportName == "" && c.Scene != "" {
		base := filepath.Base(c.Scene)
		c.ExportName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	// Textures usually live next to the scene file.
	if c.TextureDir == "" && c.Scene != "" {
		c.TextureDir = filepath.Dir(c.Scene)
	}

	if c.AxisForward == "" {
		c.AxisForward = "-Z"
	}
	if c.AxisUp == "" {
		c.AxisUp = "Y"
	}
	if c.Scale <= 0 {
		c.Scale = 1.0
	}
	if c.Smoothing == "" {
		c.Smoothing = "face"
	}
	if c.PathMode == "" {
		c.PathMode = "copy"
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 128
	}
}

// Validate checks that the resolved config names a scene to load.
func (c *Config) Validate() error {
	if c.Scene == "" {
		return fmt.Errorf("config: no scene file given (use -scene or a config file)")
	}
	return nil
}
