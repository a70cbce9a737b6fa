// Package shade turns marcher hits into colors: DE-gradient normals, a
// single fixed light, optional soft shadows, ambient occlusion and
// specular, then palette mapping and the color effects.
package shade

import (
	"math"

	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/march"
	"github.com/san-kum/qjulia/internal/qmath"
)

const (
	normalOffset = 0.001
	shadowSteps  = 32
	aoSamples    = 5
	aoStrength   = 0.5
	specularExp  = 32.0
)

// LightPos is the single point light of the fixed shading model.
var LightPos = qmath.Vec3{X: 10, Y: 10, Z: 10}

// Options mirrors the quality toggles that affect shading.
type Options struct {
	Shadows     bool
	AO          bool
	SmoothColor bool
	Specular    bool
	MaxIter     int
	Palette     int
	Slice       float64
	C           qmath.Vec4
}

// Normal estimates the surface normal at p by central differences of the
// distance field.
func Normal(p qmath.Vec3, slice float64, c qmath.Vec4, maxIter int) qmath.Vec3 {
	e := normalOffset
	dx := fractal.Estimate(qmath.Vec3{X: p.X + e, Y: p.Y, Z: p.Z}, slice, c, maxIter) -
		fractal.Estimate(qmath.Vec3{X: p.X - e, Y: p.Y, Z: p.Z}, slice, c, maxIter)
	dy := fractal.Estimate(qmath.Vec3{X: p.X, Y: p.Y + e, Z: p.Z}, slice, c, maxIter) -
		fractal.Estimate(qmath.Vec3{X: p.X, Y: p.Y - e, Z: p.Z}, slice, c, maxIter)
	dz := fractal.Estimate(qmath.Vec3{X: p.X, Y: p.Y, Z: p.Z + e}, slice, c, maxIter) -
		fractal.Estimate(qmath.Vec3{X: p.X, Y: p.Y, Z: p.Z - e}, slice, c, maxIter)
	n := qmath.Vec3{X: dx, Y: dy, Z: dz}
	if n.Length() == 0 {
		// Degenerate gradient deep in the interior; face the light so
		// the pixel is at least lit deterministically.
		return qmath.Vec3{X: 0, Y: 1, Z: 0}
	}
	return n.Normalize()
}

// SoftShadow marches from p toward the light and returns an occlusion
// factor in [0,1]: 0 fully shadowed, 1 fully lit. The running minimum of
// 10*d/t approximates a penumbra.
func SoftShadow(p qmath.Vec3, slice float64, c qmath.Vec4, maxIter int) float64 {
	toLight := LightPos.Sub(p)
	maxT := toLight.Length()
	dir := toLight.Scale(1 / maxT)

	res := 1.0
	t := 10 * march.HitThreshold // start clear of the surface
	for i := 0; i < shadowSteps; i++ {
		if t >= maxT {
			break
		}
		d := fractal.Estimate(p.Add(dir.Scale(t)), slice, c, maxIter)
		if d < 5*march.HitThreshold {
			return 0
		}
		if s := 10 * d / t; s < res {
			res = s
		}
		t += d
	}
	return qmath.Clamp(res, 0, 1)
}

// AmbientOcclusion samples the field along the normal at growing offsets
// and darkens where nearby geometry crowds the point. The raw occlusion is
// blended at half strength so AO never fully blackens a pixel.
func AmbientOcclusion(p, n qmath.Vec3, slice float64, c qmath.Vec4, maxIter int) float64 {
	occlusion := 0.0
	for i := 0; i < aoSamples; i++ {
		h := 0.02 + 0.12*float64(i)
		d := fractal.Estimate(p.Add(n.Scale(h)), slice, c, maxIter)
		if d < h {
			occlusion += (h - d) / h
		}
	}
	occlusion = qmath.Clamp(occlusion/aoSamples, 0, 1)
	return 1 - occlusion*aoStrength
}

// Shade computes the final color for a hit point. rayDir is the incoming
// (unnormalized ok) view ray direction.
func Shade(p, rayDir qmath.Vec3, opts Options) qmath.Vec3 {
	n := Normal(p, opts.Slice, opts.C, opts.MaxIter)
	l := LightPos.Sub(p).Normalize()

	diffuse := qmath.Clamp(n.Dot(l), 0, 1)

	shadow := 1.0
	if opts.Shadows {
		shadow = SoftShadow(p, opts.Slice, opts.C, opts.MaxIter)
	}

	var base qmath.Vec3
	if opts.Palette == 0 {
		base = qmath.Vec3{X: 1, Y: 1, Z: 1}
	} else {
		var iter float64
		if opts.SmoothColor {
			iter = fractal.SmoothIterationCount(p, opts.Slice, opts.C, opts.MaxIter)
		} else {
			iter = fractal.IterationCount(p, opts.Slice, opts.C, opts.MaxIter)
		}
		t := qmath.Clamp(iter/float64(opts.MaxIter), 0, 1)
		base = Palette(opts.Palette, t)
	}

	col := base.Scale(0.2 + 0.8*diffuse*shadow)

	if opts.Specular {
		view := rayDir.Scale(-1).Normalize()
		half := l.Add(view).Normalize()
		spec := math.Pow(qmath.Clamp(n.Dot(half), 0, 1), specularExp) * shadow
		col = col.Add(qmath.Vec3{X: spec, Y: spec, Z: spec}.Scale(0.5))
	}

	if opts.AO {
		col = col.Scale(AmbientOcclusion(p, n, opts.Slice, opts.C, opts.MaxIter))
	}

	return col.Clamp01()
}
