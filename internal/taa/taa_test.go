package taa

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/qjulia/internal/qmath"
)

func TestHalton(t *testing.T) {
	tests := []struct {
		i    uint64
		base uint64
		want float64
	}{
		{1, 2, 0.5},
		{2, 2, 0.25},
		{3, 2, 0.75},
		{4, 2, 0.125},
		{1, 3, 1.0 / 3},
		{2, 3, 2.0 / 3},
		{3, 3, 1.0 / 9},
	}
	for _, tt := range tests {
		if got := Halton(tt.i, tt.base); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Halton(%d,%d) = %v, want %v", tt.i, tt.base, got, tt.want)
		}
	}
}

func TestJitter_BoundedAndCycles(t *testing.T) {
	for f := uint64(0); f < 64; f++ {
		x, y := Jitter(f)
		if x < -0.5 || x > 0.5 || y < -0.5 || y > 0.5 {
			t.Fatalf("jitter(%d) = (%v,%v) out of half-pixel range", f, x, y)
		}
	}
	x0, y0 := Jitter(0)
	x16, y16 := Jitter(16)
	if x0 != x16 || y0 != y16 {
		t.Error("jitter should cycle with period 16")
	}
}

func testMatrices(w, h int) (proj, view mgl32.Mat4) {
	proj = Projection(2.0, float32(w)/float32(h))
	view = View(
		qmath.Vec3{X: 0, Y: 0, Z: 3},
		qmath.Vec3{X: 0, Y: 0, Z: -1},
		qmath.Vec3{X: 0, Y: 1, Z: 0},
	)
	return proj, view
}

func fill(tg *Target, r, g, b, depth float32) {
	for y := 0; y < tg.H; y++ {
		for x := 0; x < tg.W; x++ {
			tg.Set(x, y, r, g, b)
			tg.SetDepth(x, y, depth)
		}
	}
}

func TestResolve_DisabledIsPassThrough(t *testing.T) {
	w, h := 16, 16
	current := NewTarget(w, h)
	history := NewTarget(w, h)
	out := NewTarget(w, h)
	fill(current, 0.8, 0.4, 0.2, 0.5)
	fill(history, 0.1, 0.1, 0.1, 0.5)

	proj, view := testMatrices(w, h)
	r := NewResolver(Settings{Enabled: false, BlendFactor: 0.9})
	r.Commit(proj, view)
	r.Resolve(current, history, out, proj.Inv(), view.Inv())

	for i := range out.Color {
		if out.Color[i] != current.Color[i] {
			t.Fatalf("pass-through differs at %d: %v != %v", i, out.Color[i], current.Color[i])
		}
	}
}

func TestResolve_FirstFrameHasNoHistory(t *testing.T) {
	w, h := 8, 8
	current := NewTarget(w, h)
	history := NewTarget(w, h)
	out := NewTarget(w, h)
	fill(current, 0.6, 0.6, 0.6, 0.5)
	fill(history, 0.0, 0.0, 0.0, 0.5)

	proj, view := testMatrices(w, h)
	r := NewResolver(DefaultSettings())
	// No Commit yet: resolver must not blend in the empty history.
	r.Resolve(current, history, out, proj.Inv(), view.Inv())
	if cr, _, _ := out.At(4, 4); cr != 0.6 {
		t.Errorf("first frame blended against empty history: %v", cr)
	}
}

func TestResolve_StaticCameraBlends(t *testing.T) {
	w, h := 32, 32
	current := NewTarget(w, h)
	history := NewTarget(w, h)
	out := NewTarget(w, h)
	fill(current, 1.0, 0.0, 0.0, 0.5)
	fill(history, 0.0, 0.0, 0.0, 0.5)

	proj, view := testMatrices(w, h)
	r := NewResolver(Settings{Enabled: true, BlendFactor: 0.9})
	r.Commit(proj, view) // camera unchanged between frames
	r.Resolve(current, history, out, proj.Inv(), view.Inv())

	// History is clamped to the current neighborhood, which is uniform
	// red, so the clamped history equals current and the blend lands on
	// red exactly. Use distinct-per-pixel data to observe real blending:
	// here we just check the uniform case resolves to current.
	if cr, _, _ := out.At(16, 16); math.Abs(float64(cr-1.0)) > 1e-6 {
		t.Errorf("uniform resolve drifted: %v", cr)
	}

	// Now give history a value inside the neighborhood range.
	current.Set(16, 16, 0.0, 0.0, 0.0) // neighborhood spans 0..1
	fill(history, 0.5, 0.0, 0.0, 0.5)
	r.Resolve(current, history, out, proj.Inv(), view.Inv())
	cr, _, _ := out.At(16, 16)
	// final = cur + (hist-cur)*blend = 0 + 0.5*0.9
	if math.Abs(float64(cr)-0.45) > 0.02 {
		t.Errorf("blend = %v, want about 0.45", cr)
	}
}

func TestResolve_FarPlaneSkipsHistory(t *testing.T) {
	w, h := 8, 8
	current := NewTarget(w, h)
	history := NewTarget(w, h)
	out := NewTarget(w, h)
	fill(current, 0.3, 0.3, 0.3, 1.0) // all far plane
	fill(history, 0.9, 0.9, 0.9, 0.5)

	proj, view := testMatrices(w, h)
	r := NewResolver(DefaultSettings())
	r.Commit(proj, view)
	r.Resolve(current, history, out, proj.Inv(), view.Inv())
	if cr, _, _ := out.At(3, 3); cr != 0.3 {
		t.Errorf("far-plane pixel blended: %v", cr)
	}
}

func TestResolve_NeighborhoodClampLimitsGhosting(t *testing.T) {
	w, h := 16, 16
	current := NewTarget(w, h)
	history := NewTarget(w, h)
	out := NewTarget(w, h)
	fill(current, 0.4, 0.4, 0.4, 0.5)
	fill(history, 1.0, 1.0, 1.0, 0.5) // way outside the neighborhood

	proj, view := testMatrices(w, h)
	r := NewResolver(Settings{Enabled: true, BlendFactor: 0.9})
	r.Commit(proj, view)
	r.Resolve(current, history, out, proj.Inv(), view.Inv())

	// Neighborhood is uniform 0.4, so history clamps to 0.4: no ghost.
	if cr, _, _ := out.At(8, 8); math.Abs(float64(cr)-0.4) > 1e-6 {
		t.Errorf("clamp failed: %v", cr)
	}
}

func TestTarget_ResizeAndCopy(t *testing.T) {
	a := NewTarget(4, 4)
	a.Set(1, 1, 1, 2, 3)
	b := NewTarget(4, 4)
	b.CopyFrom(a)
	if r, g, bl := b.At(1, 1); r != 1 || g != 2 || bl != 3 {
		t.Error("copy lost data")
	}
	a.Resize(8, 2)
	if a.W != 8 || a.H != 2 || len(a.Color) != 48 || len(a.Depth) != 16 {
		t.Error("resize wrong shape")
	}
}

func TestJittered_OffsetsProjection(t *testing.T) {
	proj, _ := testMatrices(64, 64)
	j := Jittered(proj, 0.5, -0.5, 64, 64)
	if j == proj {
		t.Error("jittered projection unchanged")
	}
	// Zero jitter must leave the matrix alone.
	if z := Jittered(proj, 0, 0, 64, 64); z != proj {
		t.Error("zero jitter changed the projection")
	}
}
