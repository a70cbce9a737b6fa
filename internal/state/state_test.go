package state

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/march"
	"github.com/san-kum/qjulia/internal/shade"
)

func TestQuality_MaxIterClamped(t *testing.T) {
	var q Quality
	for _, tc := range []struct {
		set, want int
	}{
		{0, MinIter},
		{-100, MinIter},
		{20, 20},
		{200, 200},
		{2000, 2000},
		{999999, MaxIter},
	} {
		q.SetMaxIter(tc.set)
		if q.MaxIter != tc.want {
			t.Errorf("SetMaxIter(%d) = %d, want %d", tc.set, q.MaxIter, tc.want)
		}
	}

	q.SetMaxIter(200)
	q.AddMaxIter(-100000)
	if q.MaxIter != MinIter {
		t.Errorf("AddMaxIter underflow: %d", q.MaxIter)
	}
	q.AddMaxIter(100000)
	if q.MaxIter != MaxIter {
		t.Errorf("AddMaxIter overflow: %d", q.MaxIter)
	}
}

func TestSlice_ValueWithinAmplitude(t *testing.T) {
	s := Slice{Amplitude: 0.5, Speed: 1.7, Animate: true}
	for i := 0; i < 10000; i++ {
		s.Advance(1.0 / 60)
		if math.Abs(s.Value) > s.Amplitude+1e-12 {
			t.Fatalf("slice value %v outside amplitude %v at step %d", s.Value, s.Amplitude, i)
		}
	}
}

func TestSlice_AmplitudeClampedAndValueConsistent(t *testing.T) {
	s := Slice{Phase: math.Pi / 2, Amplitude: 0.5}
	s.SetAmplitude(5)
	if s.Amplitude != MaxAmplitude {
		t.Errorf("amplitude %v, want %v", s.Amplitude, MaxAmplitude)
	}
	if math.Abs(s.Value-MaxAmplitude) > 1e-12 {
		t.Errorf("value not rescaled with amplitude: %v", s.Value)
	}
	s.SetAmplitude(0)
	if s.Amplitude != MinAmplitude {
		t.Errorf("amplitude %v, want %v", s.Amplitude, MinAmplitude)
	}
}

func TestSlice_NoAdvanceWhenPaused(t *testing.T) {
	s := Slice{Amplitude: 0.5, Speed: 1, Animate: false, Value: 0.25}
	s.Advance(1)
	if s.Value != 0.25 || s.Phase != 0 {
		t.Errorf("paused slice advanced: %+v", s)
	}
}

func TestCrossSection_DistanceFloor(t *testing.T) {
	var c CrossSection
	c.SetDistance(0.01)
	if c.Distance != MinClipDistance {
		t.Errorf("distance %v, want %v", c.Distance, MinClipDistance)
	}
	c.SetDistance(3)
	if c.Distance != 3 {
		t.Errorf("distance %v, want 3", c.Distance)
	}
}

func TestColor_PaletteWraps(t *testing.T) {
	var c Color
	c.SetPalette(11)
	if c.Palette != 0 {
		t.Errorf("palette %d after overflow, want 0", c.Palette)
	}
	c.SetPalette(-1)
	if c.Palette != 0 {
		t.Errorf("palette %d after underflow, want 0", c.Palette)
	}
	c.SetPalette(7)
	if c.Palette != 7 {
		t.Errorf("palette %d, want 7", c.Palette)
	}
}

func TestEffect_MutuallyExclusive(t *testing.T) {
	e := WithOrbitTrap(shade.OrbitTrapParams{Radius: 1, Intensity: 0.5})
	if e.Kind != EffectOrbitTrap {
		t.Fatalf("kind %v", e.Kind)
	}
	e = WithPhysics(shade.PhysicsParams{Frequency: 4, Intensity: 0.8})
	if e.Kind != EffectPhysics {
		t.Fatalf("switching to physics did not replace the effect: %v", e.Kind)
	}
	// The tagged value carries one active variant at a time.
	if e.Kind == EffectOrbitTrap {
		t.Error("orbit trap still active after switching to physics")
	}
}

func TestEffect_JSONRoundTrip(t *testing.T) {
	for _, e := range []Effect{
		NoEffect(),
		WithOrbitTrap(shade.OrbitTrapParams{Type: 2, Radius: 1.5, Intensity: 0.7}),
		WithPhysics(shade.PhysicsParams{Type: 1, Frequency: 8, Waves: 3, Intensity: 0.9, Balance: 0.4}),
	} {
		data, err := json.Marshal(e)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got Effect
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != e {
			t.Errorf("round trip changed effect: %+v -> %+v", e, got)
		}
	}
}

func TestEffect_RejectsBothVariants(t *testing.T) {
	payload := `{"kind":"orbitTrap","orbitTrap":{"Radius":1},"physics":{"Frequency":4}}`
	var e Effect
	if err := json.Unmarshal([]byte(payload), &e); err == nil {
		t.Error("payload with both variants was accepted")
	}
}

func TestEffect_RejectsUnknownKind(t *testing.T) {
	var e Effect
	if err := json.Unmarshal([]byte(`{"kind":"plasma"}`), &e); err == nil {
		t.Error("unknown effect kind was accepted")
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	a := NewApp()
	cam := camera.New()
	a.Quality.SetMaxIter(512)
	a.Clip.Mode = march.ClipPlaneOnly
	a.Clip.SetDistance(1.4)
	a.Color.SetPalette(4)
	a.Color.Effect = WithPhysics(shade.PhysicsParams{Type: 2, Frequency: 6, Waves: 2, Intensity: 0.5, Balance: 0.5})
	a.TAA.Enabled = false
	cam.Rotate(0.8, -0.2)
	cam.SetFocal(3.5)

	data, err := Capture(a, cam).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	b := NewApp()
	cam2 := camera.New()
	if err := snap.Apply(b, cam2); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if b.Quality.MaxIter != 512 || b.Clip.Mode != march.ClipPlaneOnly || b.Color.Palette != 4 {
		t.Errorf("state not restored: %+v", b)
	}
	if b.Color.Effect.Kind != EffectPhysics {
		t.Errorf("effect not restored: %+v", b.Color.Effect)
	}
	if b.TAA.Enabled {
		t.Error("TAA flag not restored")
	}
	if cam2.Position.Sub(cam.Position).Length() > 1e-9 {
		t.Errorf("camera position %v, want %v", cam2.Position, cam.Position)
	}
	if cam2.FocalLength != 3.5 {
		t.Errorf("focal %v, want 3.5", cam2.FocalLength)
	}
}

func TestSnapshot_RejectsUnknownVersion(t *testing.T) {
	a := NewApp()
	cam := camera.New()
	snap := Capture(a, cam)
	snap.Version = 99
	data, _ := json.Marshal(snap)
	if _, err := DecodeSnapshot(data); err == nil {
		t.Error("unknown version was accepted")
	}

	// A failed Apply must not touch the live state.
	before := a.Quality.MaxIter
	if err := snap.Apply(a, cam); err == nil {
		t.Fatal("apply of unknown version succeeded")
	}
	if a.Quality.MaxIter != before {
		t.Error("failed apply modified live state")
	}
}

func TestSnapshot_RejectsMalformed(t *testing.T) {
	for _, payload := range []string{
		"",
		"{",
		`{"version":1,"clipMode":9}`,
		`{"version":1,"palette":42}`,
	} {
		if _, err := DecodeSnapshot([]byte(payload)); err == nil {
			t.Errorf("malformed payload accepted: %q", payload)
		}
	}
}

func TestNewApp_Defaults(t *testing.T) {
	a := NewApp()
	if a.Quality.MaxIter != 200 {
		t.Errorf("default maxIter %d", a.Quality.MaxIter)
	}
	if !a.Quality.Shadows || !a.Quality.AO || !a.Quality.Specular || !a.Quality.AdaptiveStep {
		t.Errorf("quality toggles not on by default: %+v", a.Quality)
	}
	if a.Clip.Mode != march.ClipOff {
		t.Errorf("default clip mode %v", a.Clip.Mode)
	}
	if !a.TAA.Enabled || a.TAA.BlendFactor != 0.9 {
		t.Errorf("default TAA settings %+v", a.TAA)
	}
	cfg := a.MarchConfig()
	if cfg.MaxIter != a.Quality.MaxIter || cfg.C != a.Fractal.C {
		t.Errorf("march config not assembled from state: %+v", cfg)
	}
	opts := a.ShadeOptions()
	if opts.Palette != a.Color.Palette || opts.MaxIter != a.Quality.MaxIter {
		t.Errorf("shade options not assembled from state: %+v", opts)
	}
}
