package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// File is the optional spicy.yaml. Zero values mean "not set" and leave the flag value in place.
type File struct {
	Sketch   string `yaml:"sketch"` // "dots" | "planets"
	Window   Window `yaml:"window"`
	FPS      int    `yaml:"fps"`
	Animate  *bool  `yaml:"animate,omitempty"`
	VSync    *bool  `yaml:"vsync,omitempty"`
	Stats    *bool  `yaml:"stats,omitempty"`
	AssetDir string `yaml:"asset_dir"`
	LogLevel string `yaml:"log_level"`
}

// Load reads a YAML config file. A missing file yields an error matching os.ErrNotExist.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

func Save(path string, f *File) error {
	b, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
