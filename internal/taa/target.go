// Package taa implements the temporal anti-aliasing pipeline: the
// low-discrepancy jitter sequence, the synthetic reprojection camera, the
// main/history render-target pair and the resolve pass. The GPU frontend
// mirrors the resolve in GLSL; this package is the reference that the
// terminal and offline renderers run directly.
package taa

// Target is a CPU render target carrying color and depth, the software
// analogue of the GPU's offscreen textures. Depth follows the GL
// convention: [0,1], 1.0 meaning far plane / no hit.
type Target struct {
	W, H  int
	Color []float32 // RGB, 3 floats per pixel
	Depth []float32
}

// NewTarget allocates a target of the given size.
func NewTarget(w, h int) *Target {
	return &Target{
		W:     w,
		H:     h,
		Color: make([]float32, 3*w*h),
		Depth: make([]float32, w*h),
	}
}

// Resize reallocates the buffers when the size changes. Main and history
// must always be resized together; the resolver assumes equal dimensions.
func (t *Target) Resize(w, h int) {
	if t.W == w && t.H == h {
		return
	}
	t.W, t.H = w, h
	t.Color = make([]float32, 3*w*h)
	t.Depth = make([]float32, w*h)
}

// At returns the color at (x, y), clamping coordinates to the edges.
func (t *Target) At(x, y int) (r, g, b float32) {
	x = clampInt(x, 0, t.W-1)
	y = clampInt(y, 0, t.H-1)
	i := 3 * (y*t.W + x)
	return t.Color[i], t.Color[i+1], t.Color[i+2]
}

// Set writes the color at (x, y).
func (t *Target) Set(x, y int, r, g, b float32) {
	i := 3 * (y*t.W + x)
	t.Color[i], t.Color[i+1], t.Color[i+2] = r, g, b
}

// DepthAt returns the depth at (x, y).
func (t *Target) DepthAt(x, y int) float32 {
	return t.Depth[y*t.W+x]
}

// SetDepth writes the depth at (x, y).
func (t *Target) SetDepth(x, y int, d float32) {
	t.Depth[y*t.W+x] = d
}

// CopyFrom blits src into t. Sizes must match.
func (t *Target) CopyFrom(src *Target) {
	copy(t.Color, src.Color)
	copy(t.Depth, src.Depth)
}

// Clear fills color with the given value and depth with 1.
func (t *Target) Clear(r, g, b float32) {
	for i := 0; i < len(t.Color); i += 3 {
		t.Color[i], t.Color[i+1], t.Color[i+2] = r, g, b
	}
	for i := range t.Depth {
		t.Depth[i] = 1
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
