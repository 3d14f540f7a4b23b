package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const configFileName = ".auraflow.toml"

type Config struct {
	SaveDirectory string            `toml:"save_directory"`
	Confirmations bool              `toml:"confirmations"`
	SurfaceWidth  int               `toml:"surface_width"`
	SurfaceHeight int               `toml:"surface_height"`
	ExportScale   float64           `toml:"export_scale"`
	DefaultImage  string            `toml:"default_image"`
	GradientText  string            `toml:"gradient_text"`
	ImageText     string            `toml:"image_text"`
	LogFile       string            `toml:"log_file"`
	LogLevel      string            `toml:"log_level"`
	WatchImage    bool              `toml:"watch_image"`
	Fonts         map[string]string `toml:"fonts"`
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		SurfaceWidth:  defaultSurfaceWidth,
		SurfaceHeight: defaultSurfaceHeight,
		ExportScale:   defaultExportScale,
		GradientText:  defaultGradientText,
		ImageText:     defaultImageText,
		LogLevel:      "info",
		WatchImage:    true,
	}
}

// loadConfig reads ~/.auraflow.toml. A missing file yields the defaults; a
// broken one yields the defaults plus the parse error for the status line.
func loadConfig() (*Config, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return defaultConfig(), nil
	}
	return loadConfigFile(filepath.Join(homeDir, configFileName))
}

func loadConfigFile(path string) (*Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return defaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	config.normalize()
	return config, nil
}

// normalize expands paths and repairs out of range values.
func (c *Config) normalize() {
	c.SaveDirectory = expandPath(c.SaveDirectory)
	c.DefaultImage = expandPath(c.DefaultImage)
	c.LogFile = expandPath(c.LogFile)
	for token, path := range c.Fonts {
		c.Fonts[token] = expandPath(path)
	}
	if c.SurfaceWidth <= 0 {
		c.SurfaceWidth = defaultSurfaceWidth
	}
	if c.SurfaceHeight <= 0 {
		c.SurfaceHeight = defaultSurfaceHeight
	}
	if c.ExportScale <= 0 {
		c.ExportScale = defaultExportScale
	}
	if c.GradientText == "" {
		c.GradientText = defaultGradientText
	}
	if c.ImageText == "" {
		c.ImageText = defaultImageText
	}
}

func expandPath(value string) string {
	if value == "" {
		return ""
	}
	if expanded, err := homedir.Expand(value); err == nil {
		value = expanded
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// SurfaceSize is the editing surface in device pixels.
func (c *Config) SurfaceSize() Size {
	return Size{W: float64(c.SurfaceWidth), H: float64(c.SurfaceHeight)}
}

// ModeTexts returns the default contents for the background modes.
func (c *Config) ModeTexts() ModeTexts {
	return ModeTexts{Gradient: c.GradientText, Image: c.ImageText}
}
