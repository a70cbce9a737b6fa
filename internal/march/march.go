// Package march walks rays through the Julia set's distance field. The
// marcher is shared by the CPU reference renderer and the tests; the GPU
// fragment shader carries the same constants and step policy.
package march

import (
	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/qmath"
)

const (
	// MaxDist is the miss sentinel; any returned distance at or beyond
	// it means the ray left the scene.
	MaxDist = 150.0
	// HitThreshold is the surface acceptance distance.
	HitThreshold = 1e-4
	// MaxSteps bounds the march loop.
	MaxSteps = 256
	// SafeStep is the fixed advance used to step past a rejected hit in
	// the cross-section modes.
	SafeStep = 0.002
	// CrossSectionThreshold is the half-width of the rendered slab in
	// plane-only mode.
	CrossSectionThreshold = 0.01
)

// ClipMode selects the cross-section policy of the marcher.
type ClipMode int

const (
	ClipOff         ClipMode = iota // accept every hit
	ClipIgnoreFirst                 // peel the front shell, look through it
	ClipPlaneOnly                   // render only a thin slab at ClipDistance
	ClipHideBeyond                  // hits past ClipDistance are transparent
)

// Cycle returns the next mode in the 0-1-2-3-0 order.
func (m ClipMode) Cycle() ClipMode { return (m + 1) % 4 }

// Config carries everything the marcher needs besides the ray itself.
type Config struct {
	Slice        float64
	C            qmath.Vec4
	MaxIter      int
	AdaptiveStep bool
	ClipMode     ClipMode
	ClipDistance float64
}

// Hit is the result of a march.
type Hit struct {
	Dist  float64 // distance along the ray; >= MaxDist on a miss
	Steps int
	OK    bool
}

// stepSize implements the adaptive policy: half steps near the surface
// for precision, double steps far away for speed, a linear blend between.
func stepSize(d float64, adaptive bool) float64 {
	if !adaptive {
		return d
	}
	switch {
	case d < 0.01:
		return 0.5 * d
	case d > 0.5:
		return 2 * d
	default:
		return d * (1.0 + (d-0.01)*1.8)
	}
}

// March walks the ray origin + t*dir until the distance field reports a
// surface, applying the configured cross-section policy to each candidate
// hit. t never decreases and the loop runs at most MaxSteps iterations.
func March(origin, dir qmath.Vec3, cfg Config) Hit {
	t := 0.0
	peeling := false // currently stepping through the front shell
	peeled := false  // front shell fully traversed
	for i := 0; i < MaxSteps; i++ {
		p := origin.Add(dir.Scale(t))
		d := fractal.Estimate(p, cfg.Slice, cfg.C, cfg.MaxIter)
		if d >= HitThreshold && peeling {
			peeling = false
			peeled = true
		}
		if d < HitThreshold {
			switch cfg.ClipMode {
			case ClipIgnoreFirst:
				if !peeled {
					peeling = true
					t += SafeStep
					continue
				}
			case ClipPlaneOnly:
				if t-cfg.ClipDistance > CrossSectionThreshold || cfg.ClipDistance-t > CrossSectionThreshold {
					t += SafeStep
					continue
				}
			case ClipHideBeyond:
				if t > cfg.ClipDistance {
					t += SafeStep
					continue
				}
			}
			return Hit{Dist: t, Steps: i, OK: true}
		}
		t += stepSize(d, cfg.AdaptiveStep)
		if t > MaxDist {
			break
		}
	}
	return Hit{Dist: MaxDist, Steps: MaxSteps, OK: false}
}
