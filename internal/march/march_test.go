package march

import (
	"math"
	"testing"

	"github.com/san-kum/qjulia/internal/qmath"
)

var testC = qmath.Vec4{X: -0.2, Y: 0.6, Z: 0.2, W: 0.2}

func baseConfig() Config {
	return Config{
		Slice:        0,
		C:            testC,
		MaxIter:      128,
		AdaptiveStep: false,
		ClipMode:     ClipOff,
		ClipDistance: 1.0,
	}
}

func TestMarch_HitFromOutside(t *testing.T) {
	// End-to-end scenario from the renderer: origin ray pointing -z at
	// the classic constant must strike the set.
	origin := qmath.Vec3{X: 0, Y: 0, Z: 3}
	dir := qmath.Vec3{X: 0, Y: 0, Z: -1}
	h := March(origin, dir, baseConfig())
	if !h.OK {
		t.Fatal("expected a hit")
	}
	if h.Dist >= MaxDist {
		t.Fatalf("hit distance %v not below MaxDist", h.Dist)
	}
	if h.Dist <= 0 {
		t.Fatalf("hit distance %v not positive", h.Dist)
	}
}

func TestMarch_MissAwayFromSet(t *testing.T) {
	origin := qmath.Vec3{X: 0, Y: 0, Z: 10}
	dir := qmath.Vec3{X: 0, Y: 0, Z: 1} // pointing away
	h := March(origin, dir, baseConfig())
	if h.OK {
		t.Fatalf("expected miss, hit at %v", h.Dist)
	}
	if h.Dist < MaxDist {
		t.Fatalf("miss sentinel %v below MaxDist", h.Dist)
	}
}

func TestMarch_TerminatesAllModes(t *testing.T) {
	origin := qmath.Vec3{X: 0, Y: 0, Z: 3}
	dir := qmath.Vec3{X: 0, Y: 0, Z: -1}
	for mode := ClipOff; mode <= ClipHideBeyond; mode++ {
		for _, adaptive := range []bool{false, true} {
			cfg := baseConfig()
			cfg.ClipMode = mode
			cfg.AdaptiveStep = adaptive
			h := March(origin, dir, cfg)
			if h.Steps > MaxSteps {
				t.Errorf("mode %d adaptive=%v: %d steps", mode, adaptive, h.Steps)
			}
			if math.IsNaN(h.Dist) {
				t.Errorf("mode %d adaptive=%v: NaN distance", mode, adaptive)
			}
		}
	}
}

func TestMarch_IgnoreFirstGoesDeeper(t *testing.T) {
	origin := qmath.Vec3{X: 0, Y: 0, Z: 3}
	dir := qmath.Vec3{X: 0, Y: 0, Z: -1}

	plain := March(origin, dir, baseConfig())
	cfg := baseConfig()
	cfg.ClipMode = ClipIgnoreFirst
	peeled := March(origin, dir, cfg)

	if plain.OK && peeled.OK && peeled.Dist <= plain.Dist {
		t.Errorf("peeled hit %v not beyond first hit %v", peeled.Dist, plain.Dist)
	}
}

func TestMarch_HideBeyondRejectsFarHits(t *testing.T) {
	origin := qmath.Vec3{X: 0, Y: 0, Z: 3}
	dir := qmath.Vec3{X: 0, Y: 0, Z: -1}

	plain := March(origin, dir, baseConfig())
	if !plain.OK {
		t.Skip("no baseline hit")
	}

	// Clip in front of the first hit: that hit must be rejected.
	cfg := baseConfig()
	cfg.ClipMode = ClipHideBeyond
	cfg.ClipDistance = plain.Dist - 0.1
	clipped := March(origin, dir, cfg)
	if clipped.OK && clipped.Dist <= cfg.ClipDistance {
		t.Errorf("hit at %v inside hidden region ending %v", clipped.Dist, cfg.ClipDistance)
	}

	// Clip behind it: the hit survives unchanged.
	cfg.ClipDistance = plain.Dist + 0.5
	kept := March(origin, dir, cfg)
	if !kept.OK || math.Abs(kept.Dist-plain.Dist) > 1e-9 {
		t.Errorf("hit %v changed by far clip, want %v", kept.Dist, plain.Dist)
	}
}

func TestMarch_PlaneOnlyAcceptsSlabOnly(t *testing.T) {
	origin := qmath.Vec3{X: 0, Y: 0, Z: 3}
	dir := qmath.Vec3{X: 0, Y: 0, Z: -1}

	plain := March(origin, dir, baseConfig())
	if !plain.OK {
		t.Skip("no baseline hit")
	}

	cfg := baseConfig()
	cfg.ClipMode = ClipPlaneOnly
	cfg.ClipDistance = plain.Dist
	h := March(origin, dir, cfg)
	if h.OK && math.Abs(h.Dist-cfg.ClipDistance) >= CrossSectionThreshold {
		t.Errorf("accepted hit at %v outside slab around %v", h.Dist, cfg.ClipDistance)
	}
}

func TestStepSize(t *testing.T) {
	// Half step near the surface, double step far away, blended between.
	tests := []struct {
		d    float64
		want float64
	}{
		{0.005, 0.0025},
		{1.0, 2.0},
		{0.1, 0.1 * (1.0 + 0.09*1.8)},
	}
	for _, tt := range tests {
		if got := stepSize(tt.d, true); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("stepSize(%v) = %v, want %v", tt.d, got, tt.want)
		}
		if got := stepSize(tt.d, false); got != tt.d {
			t.Errorf("non-adaptive stepSize(%v) = %v", tt.d, got)
		}
	}
}

func TestClipMode_Cycle(t *testing.T) {
	m := ClipOff
	order := []ClipMode{ClipIgnoreFirst, ClipPlaneOnly, ClipHideBeyond, ClipOff}
	for _, want := range order {
		m = m.Cycle()
		if m != want {
			t.Fatalf("cycle got %d, want %d", m, want)
		}
	}
}

func TestRaycast_HitAndFallback(t *testing.T) {
	origin := qmath.Vec3{X: 0, Y: 0, Z: 3}

	p, ok := Raycast(origin, qmath.Vec3{Z: -1}, 0, testC, 128, 3)
	if !ok {
		t.Error("expected raycast hit toward the set")
	}
	if p.Z >= 3 {
		t.Errorf("hit point %v did not advance along the ray", p)
	}

	// Away from the set: miss, but still a usable target point.
	p, ok = Raycast(origin, qmath.Vec3{Z: 1}, 0, testC, 128, 3)
	if ok {
		t.Error("expected miss pointing away")
	}
	want := math.Min(2*3.0, 5.0)
	if math.Abs(p.Z-(3+want)) > 1e-9 {
		t.Errorf("fallback point %v, want z=%v", p, 3+want)
	}
}
