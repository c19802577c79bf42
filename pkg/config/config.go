// Package config loads the optional burl.yaml project configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up next to a script.
const FileName = "burl.yaml"

// Config holds project-level settings for the CLI.
type Config struct {
	// Renderer is the OpenSCAD executable to invoke.
	Renderer string `yaml:"renderer"`
	// OutputDir receives transpiled .scad files.
	OutputDir string `yaml:"output_dir"`
	// RenderDir receives rendered artifacts.
	RenderDir string `yaml:"render_dir"`
	// ImageSize is the default still-image size in pixels.
	ImageSize [2]int `yaml:"image_size"`
	// ColorScheme is the default renderer color scheme.
	ColorScheme string `yaml:"color_scheme"`
}

// Default returns the settings used when no configuration file exists.
func Default() Config {
	return Config{
		Renderer:  "openscad",
		OutputDir: filepath.Join("output", "scad"),
		RenderDir: filepath.Join("output", "render"),
	}
}

// Load reads the configuration file in dir, falling back to defaults when
// it does not exist. Absent fields keep their defaults.
func Load(dir string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
