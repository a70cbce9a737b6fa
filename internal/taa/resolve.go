package taa

import "github.com/go-gl/mathgl/mgl32"

// Settings are the user-facing TAA knobs.
type Settings struct {
	Enabled     bool
	BlendFactor float32 // history weight in [0,1]
}

// DefaultSettings enables TAA with the standard heavy history weight.
func DefaultSettings() Settings {
	return Settings{Enabled: true, BlendFactor: 0.9}
}

// Clamp keeps the blend factor in range.
func (s *Settings) Clamp() {
	if s.BlendFactor < 0 {
		s.BlendFactor = 0
	}
	if s.BlendFactor > 1 {
		s.BlendFactor = 1
	}
}

// Resolver holds the inter-frame state of the resolve pass: the previous
// frame's combined view-projection and whether a history frame exists yet.
type Resolver struct {
	Settings     Settings
	PrevViewProj mgl32.Mat4
	hasHistory   bool
}

// NewResolver starts with no history; the first resolved frame is a
// pass-through.
func NewResolver(s Settings) *Resolver {
	return &Resolver{Settings: s}
}

// Reset drops accumulated history, e.g. after a resize or a hard scene
// change.
func (r *Resolver) Reset() { r.hasHistory = false }

// Resolve blends current against the reprojected history into out.
// projInv and viewInv invert this frame's unjittered projection and view.
// All three targets must share dimensions.
func (r *Resolver) Resolve(current, history, out *Target, projInv, viewInv mgl32.Mat4) {
	if !r.Settings.Enabled || !r.hasHistory {
		out.CopyFrom(current)
		return
	}
	w, h := current.W, current.H
	blend := r.Settings.BlendFactor

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cb := current.At(x, y)
			depth := current.DepthAt(x, y)

			// Far plane: nothing was hit here, nothing to reproject.
			if depth >= 1 {
				out.Set(x, y, cr, cg, cb)
				continue
			}

			// Reconstruct the world position of this pixel from depth.
			// Row 0 is the top of the target; NDC y points up.
			u := (float32(x) + 0.5) / float32(w)
			v := (float32(y) + 0.5) / float32(h)
			ndc := mgl32.Vec4{u*2 - 1, 1 - v*2, depth*2 - 1, 1}
			view := projInv.Mul4x1(ndc)
			if view.W() == 0 {
				out.Set(x, y, cr, cg, cb)
				continue
			}
			view = view.Mul(1 / view.W())
			world := viewInv.Mul4x1(view)

			// Where was this world position last frame?
			prev := r.PrevViewProj.Mul4x1(world)
			if prev.W() <= 0 {
				out.Set(x, y, cr, cg, cb)
				continue
			}
			pu := prev.X()/prev.W()*0.5 + 0.5
			pv := (1 - prev.Y()/prev.W()) * 0.5
			if pu < 0 || pu > 1 || pv < 0 || pv > 1 {
				// Disocclusion: no usable history.
				out.Set(x, y, cr, cg, cb)
				continue
			}

			hx := int(pu * float32(w))
			hy := int(pv * float32(h))
			hr, hg, hb := history.At(hx, hy)

			// Clamp history to the 3x3 neighborhood of the current
			// pixel to kill ghosting trails.
			minR, minG, minB := cr, cg, cb
			maxR, maxG, maxB := cr, cg, cb
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nr, ng, nb := current.At(x+dx, y+dy)
					minR, maxR = minf(minR, nr), maxf(maxR, nr)
					minG, maxG = minf(minG, ng), maxf(maxG, ng)
					minB, maxB = minf(minB, nb), maxf(maxB, nb)
				}
			}
			hr = clampf(hr, minR, maxR)
			hg = clampf(hg, minG, maxG)
			hb = clampf(hb, minB, maxB)

			out.Set(x, y,
				cr+(hr-cr)*blend,
				cg+(hg-cg)*blend,
				cb+(hb-cb)*blend)
		}
	}
}

// Commit stores this frame's unjittered view-projection for the next
// resolve and marks history as valid.
func (r *Resolver) Commit(proj, view mgl32.Mat4) {
	r.PrevViewProj = proj.Mul4(view)
	r.hasHistory = true
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
