package render

import (
	"image"
	"image/color"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/state"
	"github.com/san-kum/qjulia/internal/taa"
)

// Pipeline owns the per-frame TAA orchestration: jitter, main render,
// resolve against history, main-into-history copy, previous-matrix
// commit. The order is fixed; skipping or reordering steps shows stale
// reprojection. History always holds the raw main frame, never the
// blended output, so the resolve only ever reaches one frame back.
type Pipeline struct {
	renderer *Renderer
	resolver *taa.Resolver

	main    *taa.Target
	history *taa.Target
	out     *taa.Target

	frame int
}

func NewPipeline(w, h int, settings taa.Settings) *Pipeline {
	return &Pipeline{
		renderer: NewRenderer(),
		resolver: taa.NewResolver(settings),
		main:     taa.NewTarget(w, h),
		history:  taa.NewTarget(w, h),
		out:      taa.NewTarget(w, h),
	}
}

// Resize grows or shrinks all three targets together and drops history;
// reprojecting across a resize would sample garbage.
func (p *Pipeline) Resize(w, h int) {
	if p.main.W == w && p.main.H == h {
		return
	}
	p.main.Resize(w, h)
	p.history.Resize(w, h)
	p.out.Resize(w, h)
	p.resolver.Reset()
	p.frame = 0
}

// ResetHistory drops accumulated TAA history, e.g. after a teleport.
func (p *Pipeline) ResetHistory() { p.resolver.Reset() }

// Size reports the current target dimensions.
func (p *Pipeline) Size() (w, h int) { return p.main.W, p.main.H }

// Frame renders one frame and returns the resolved target. The returned
// target is owned by the pipeline and valid until the next Frame call.
func (p *Pipeline) Frame(a *state.App, cam *camera.State, elapsed float64) *taa.Target {
	w, h := p.main.W, p.main.H
	aspect := float32(w) / float32(h)

	proj := taa.Projection(cam.FocalLength, aspect)
	forward, _, up := cam.Basis()
	view := taa.View(cam.Position, forward, up)

	p.resolver.Settings = a.TAA
	var jx, jy float64
	if a.TAA.Enabled {
		jx, jy = taa.Jitter(uint64(p.frame))
	}

	p.renderer.RenderFrame(p.main, a, cam, jx, jy, proj, view, elapsed)
	p.resolver.Resolve(p.main, p.history, p.out, proj.Inv(), view.Inv())
	p.history.CopyFrom(p.main)
	p.resolver.Commit(proj, view)
	p.frame++
	return p.out
}

// ToImage converts a resolved target into an 8-bit image for export.
func ToImage(t *taa.Target) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.W, t.H))
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			r, g, b := t.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: to8(r), G: to8(g), B: to8(b), A: 255,
			})
		}
	}
	return img
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
