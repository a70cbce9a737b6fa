package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultFPS       = 60
	DefaultMaxIter   = 200
	DefaultPalette   = 1
	DefaultFocal     = 2.0
	DefaultBlend     = 0.9
	DefaultAmplitude = 0.5
	DefaultSpeed     = 0.4
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Fractal FractalConfig `yaml:"fractal"`
	Tour    TourConfig    `yaml:"tour"`
	DataDir string        `yaml:"data_dir"`
}

type WindowConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

type RenderConfig struct {
	Backend     string  `yaml:"backend"` // auto, cpu, opengl
	MaxIter     int     `yaml:"max_iter"`
	Shadows     bool    `yaml:"shadows"`
	AO          bool    `yaml:"ao"`
	Specular    bool    `yaml:"specular"`
	SmoothColor bool    `yaml:"smooth_color"`
	Adaptive    bool    `yaml:"adaptive_step"`
	Palette     int     `yaml:"palette"`
	TAA         bool    `yaml:"taa"`
	TAABlend    float64 `yaml:"taa_blend"`
	FocalLength float64 `yaml:"focal_length"`
}

type FractalConfig struct {
	Preset         string    `yaml:"preset"` // named preset, empty uses c
	C              []float64 `yaml:"c,omitempty"`
	SliceAmplitude float64   `yaml:"slice_amplitude"`
	SliceSpeed     float64   `yaml:"slice_speed"`
	SliceAnimate   bool      `yaml:"slice_animate"`
}

type TourConfig struct {
	TransitionDuration float64 `yaml:"transition_duration"`
	StayDuration       float64 `yaml:"stay_duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			TargetFPS: DefaultFPS,
			Resizable: true,
		},
		Render: RenderConfig{
			Backend:     "auto",
			MaxIter:     DefaultMaxIter,
			Shadows:     true,
			AO:          true,
			Specular:    true,
			SmoothColor: true,
			Adaptive:    true,
			Palette:     DefaultPalette,
			TAA:         true,
			TAABlend:    DefaultBlend,
			FocalLength: DefaultFocal,
		},
		Fractal: FractalConfig{
			Preset:         "classic",
			SliceAmplitude: DefaultAmplitude,
			SliceSpeed:     DefaultSpeed,
			SliceAnimate:   true,
		},
		Tour: TourConfig{
			TransitionDuration: 4.0,
			StayDuration:       2.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d invalid", c.Window.Width, c.Window.Height)
	}
	switch c.Render.Backend {
	case "auto", "cpu", "opengl":
	default:
		return fmt.Errorf("unknown backend %q", c.Render.Backend)
	}
	if len(c.Fractal.C) != 0 && len(c.Fractal.C) != 4 {
		return fmt.Errorf("fractal c needs 4 components, got %d", len(c.Fractal.C))
	}
	if c.Render.TAABlend < 0 || c.Render.TAABlend > 1 {
		return fmt.Errorf("taa_blend %v outside [0,1]", c.Render.TAABlend)
	}
	return nil
}
