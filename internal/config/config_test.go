package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		t.Error("window size should be positive")
	}
	if cfg.Render.MaxIter != DefaultMaxIter {
		t.Errorf("expected max_iter %d, got %d", DefaultMaxIter, cfg.Render.MaxIter)
	}
	if cfg.Render.Backend != "auto" {
		t.Errorf("expected backend auto, got %s", cfg.Render.Backend)
	}
	if !cfg.Render.SmoothColor {
		t.Error("smooth_color should default on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Render.MaxIter = 750
	cfg.Render.SmoothColor = false
	cfg.Fractal.Preset = "dendrite"
	cfg.Fractal.C = []float64{0.1, -0.4, 0.2, 0.0}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Render.MaxIter != 750 {
		t.Errorf("expected max_iter 750, got %d", got.Render.MaxIter)
	}
	if got.Render.SmoothColor {
		t.Error("smooth_color false not preserved")
	}
	if got.Fractal.Preset != "dendrite" {
		t.Errorf("expected preset dendrite, got %s", got.Fractal.Preset)
	}
	if len(got.Fractal.C) != 4 || got.Fractal.C[1] != -0.4 {
		t.Errorf("fractal c not preserved: %v", got.Fractal.C)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("render:\n  max_iter: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Render.MaxIter != 42 {
		t.Errorf("expected max_iter 42, got %d", got.Render.MaxIter)
	}
	if got.Window.Width != DefaultWidth {
		t.Errorf("partial file lost window default: %d", got.Window.Width)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, body string
	}{
		{"backend", "render:\n  backend: vulkan\n"},
		{"c", "fractal:\n  c: [0.1, 0.2]\n"},
		{"blend", "render:\n  taa_blend: 1.5\n"},
		{"window", "window:\n  width: 0\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name+".yaml")
		if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: invalid config accepted", tt.name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetQualityPreset(t *testing.T) {
	p, ok := GetQualityPreset("quality")
	if !ok {
		t.Fatal("expected preset, got none")
	}
	if p.MaxIter != 500 {
		t.Errorf("expected max_iter 500, got %d", p.MaxIter)
	}

	if _, ok := GetQualityPreset("nonexistent"); ok {
		t.Error("expected miss for nonexistent preset")
	}
}

func TestListQualityPresets(t *testing.T) {
	names := ListQualityPresets()
	if len(names) != len(QualityPresets) {
		t.Errorf("expected %d presets, got %d", len(QualityPresets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Error("preset names not sorted")
		}
	}
}
