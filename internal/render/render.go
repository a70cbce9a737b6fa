// Package render is the CPU reference renderer: the full ray-march,
// shade and TAA pipeline on software framebuffers. It backs the terminal
// frontend and the offline render command, and mirrors what the GUI
// shaders do on the GPU.
package render

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/march"
	"github.com/san-kum/qjulia/internal/qmath"
	"github.com/san-kum/qjulia/internal/shade"
	"github.com/san-kum/qjulia/internal/state"
	"github.com/san-kum/qjulia/internal/taa"
)

type Renderer struct {
	workers int
}

func NewRenderer() *Renderer {
	return &Renderer{workers: runtime.NumCPU()}
}

// RenderFrame draws one frame into dst. The jitter offsets every ray by
// a sub-pixel amount; depth is written against the unjittered synthetic
// projection so the resolve pass can reconstruct world positions.
func (r *Renderer) RenderFrame(dst *taa.Target, a *state.App, cam *camera.State, jx, jy float64, proj, view mgl32.Mat4, elapsed float64) {
	w, h := dst.W, dst.H
	aspect := float64(w) / float64(h)
	forward, right, up := cam.Basis()
	cfg := a.MarchConfig()
	opts := a.ShadeOptions()
	viewProj := proj.Mul4(view)

	var wg sync.WaitGroup
	chunk := (h + r.workers - 1) / r.workers
	for wkr := 0; wkr < r.workers; wkr++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			end := start + chunk
			if end > h {
				end = h
			}
			for y := start; y < end; y++ {
				for x := 0; x < w; x++ {
					r.renderPixel(dst, x, y, a, cam, jx, jy, aspect,
						forward, right, up, cfg, opts, viewProj, elapsed)
				}
			}
		}(wkr * chunk)
	}
	wg.Wait()
}

func (r *Renderer) renderPixel(dst *taa.Target, x, y int, a *state.App, cam *camera.State,
	jx, jy, aspect float64, forward, right, up qmath.Vec3,
	cfg march.Config, opts shade.Options, viewProj mgl32.Mat4, elapsed float64) {

	px := ((float64(x)+0.5+jx)/float64(dst.W)*2 - 1) * aspect
	py := 1 - (float64(y)+0.5+jy)/float64(dst.H)*2
	dir := forward.Scale(cam.FocalLength).
		Add(right.Scale(px)).
		Add(up.Scale(py)).
		Normalize()

	hit := march.March(cam.Position, dir, cfg)
	if !hit.OK {
		br, bg, bb := background(py)
		dst.Set(x, y, br, bg, bb)
		dst.SetDepth(x, y, 1)
		return
	}

	p := cam.Position.Add(dir.Scale(hit.Dist))
	col := shade.Shade(p, dir, opts)

	switch a.Color.Effect.Kind {
	case state.EffectOrbitTrap:
		col = shade.ApplyOrbitTrap(col, p, opts, a.Color.Effect.OrbitTrap)
	case state.EffectPhysics:
		col = shade.ApplyPhysics(col, p, elapsed, a.Color.Effect.Physics)
	}
	col = a.Color.Dynamics.Apply(col, elapsed)

	dst.Set(x, y, float32(col.X), float32(col.Y), float32(col.Z))
	dst.SetDepth(x, y, clipDepth(p, viewProj))
}

// clipDepth projects a world point through the synthetic camera and
// returns GL-style [0,1] depth.
func clipDepth(p qmath.Vec3, viewProj mgl32.Mat4) float32 {
	clip := viewProj.Mul4x1(mgl32.Vec4{float32(p.X), float32(p.Y), float32(p.Z), 1})
	if clip.W() <= 0 {
		return 1
	}
	d := clip.Z()/clip.W()*0.5 + 0.5
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}

// background is a subtle vertical gradient so misses are not pure black.
func background(py float64) (r, g, b float32) {
	t := float32(qmath.Clamp(py*0.5+0.5, 0, 1))
	return 0.02 + 0.04*t, 0.02 + 0.05*t, 0.04 + 0.08*t
}
