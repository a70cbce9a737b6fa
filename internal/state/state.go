// Package state owns the non-camera application state: fractal
// parameters, slice animation, quality knobs, cross-section, color, and
// the TAA settings. Everything lives in one App aggregate that the
// frontends pass explicitly into the update and render paths.
package state

import (
	"math"

	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/march"
	"github.com/san-kum/qjulia/internal/qmath"
	"github.com/san-kum/qjulia/internal/shade"
	"github.com/san-kum/qjulia/internal/taa"
)

const (
	MinIter = 20
	MaxIter = 2000

	MinAmplitude = 0.1
	MaxAmplitude = 1.0

	MinClipDistance = 0.2
)

// Slice drives the animated 4th coordinate: value = amplitude*sin(phase).
type Slice struct {
	Value     float64
	Phase     float64
	Amplitude float64
	Speed     float64
	Animate   bool
}

// Advance steps the slice animation by dt seconds.
func (s *Slice) Advance(dt float64) {
	if !s.Animate {
		return
	}
	s.Phase = qmath.Mod2Pi(s.Phase + s.Speed*dt)
	s.Value = s.Amplitude * math.Sin(s.Phase)
}

// SetAmplitude clamps the amplitude and keeps the value consistent.
func (s *Slice) SetAmplitude(a float64) {
	s.Amplitude = qmath.Clamp(a, MinAmplitude, MaxAmplitude)
	s.Value = s.Amplitude * math.Sin(s.Phase)
}

// Quality holds the render-quality knobs.
type Quality struct {
	MaxIter      int
	Shadows      bool
	AO           bool
	SmoothColor  bool
	Specular     bool
	AdaptiveStep bool
}

// SetMaxIter clamps the iteration cap into [MinIter, MaxIter].
func (q *Quality) SetMaxIter(n int) {
	if n < MinIter {
		n = MinIter
	}
	if n > MaxIter {
		n = MaxIter
	}
	q.MaxIter = n
}

// AddMaxIter applies a delta with the same clamp.
func (q *Quality) AddMaxIter(d int) { q.SetMaxIter(q.MaxIter + d) }

// CrossSection holds the clip mode and plane distance.
type CrossSection struct {
	Mode     march.ClipMode
	Distance float64
}

// SetMode selects a clip mode by index, ignoring out-of-range values.
func (c *CrossSection) SetMode(m int) {
	if m < 0 || m > int(march.ClipHideBeyond) {
		return
	}
	c.Mode = march.ClipMode(m)
}

// SetDistance keeps the plane at least MinClipDistance out.
func (c *CrossSection) SetDistance(d float64) {
	if d < MinClipDistance {
		d = MinClipDistance
	}
	c.Distance = d
}

// Color holds the palette selection, the always-on dynamics, and the
// exclusive effect. Exclusivity is structural: Effect is a single tagged
// value, so orbit-trap and physics color can never both be active.
type Color struct {
	Palette  int // 0 off, 1..10
	Dynamics shade.Dynamics
	Effect   Effect
}

// SetPalette wraps the palette index into [0,10].
func (c *Color) SetPalette(idx int) {
	if idx < 0 || idx > 10 {
		idx = 0
	}
	c.Palette = idx
}

// App is the top-level application state aggregate.
type App struct {
	Fractal fractal.Params
	Slice   Slice
	Quality Quality
	Clip    CrossSection
	Color   Color
	TAA     taa.Settings

	// Animations gates every eased transition; when false, transitions
	// apply instantly.
	Animations bool
}

// NewApp returns the startup state.
func NewApp() *App {
	return &App{
		Fractal: fractal.Default(),
		Slice: Slice{
			Amplitude: 0.5,
			Speed:     0.4,
		},
		Quality: Quality{
			MaxIter:      200,
			Shadows:      true,
			AO:           true,
			SmoothColor:  true,
			Specular:     true,
			AdaptiveStep: true,
		},
		Clip: CrossSection{
			Mode:     march.ClipOff,
			Distance: 1.0,
		},
		Color: Color{
			Palette:  1,
			Dynamics: shade.DefaultDynamics(),
			Effect:   Effect{},
		},
		TAA:        taa.DefaultSettings(),
		Animations: true,
	}
}

// MarchConfig assembles the marcher configuration for the current state.
func (a *App) MarchConfig() march.Config {
	return march.Config{
		Slice:        a.Slice.Value,
		C:            a.Fractal.C,
		MaxIter:      a.Quality.MaxIter,
		AdaptiveStep: a.Quality.AdaptiveStep,
		ClipMode:     a.Clip.Mode,
		ClipDistance: a.Clip.Distance,
	}
}

// ShadeOptions assembles the shading options for the current state.
func (a *App) ShadeOptions() shade.Options {
	return shade.Options{
		Shadows:     a.Quality.Shadows,
		AO:          a.Quality.AO,
		SmoothColor: a.Quality.SmoothColor,
		Specular:    a.Quality.Specular,
		MaxIter:     a.Quality.MaxIter,
		Palette:     a.Color.Palette,
		Slice:       a.Slice.Value,
		C:           a.Fractal.C,
	}
}
