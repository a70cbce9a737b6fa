package compute

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/qmath"
)

var testC = [4]float64{-0.2, 0.6, 0.2, 0.2}

func randomPoints(n int, rng *rand.Rand) []float64 {
	pts := make([]float64, n*3)
	for i := range pts {
		pts[i] = rng.Float64()*4 - 2
	}
	return pts
}

func TestCPUBackend_MatchesEstimate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewCPUBackend()
	pts := randomPoints(100, rng)

	got := b.EvalField(pts, 0.1, testC, 100)
	cv := qmath.Vec4{X: testC[0], Y: testC[1], Z: testC[2], W: testC[3]}
	for i := range got {
		p := qmath.Vec3{X: pts[i*3], Y: pts[i*3+1], Z: pts[i*3+2]}
		want := fractal.Estimate(p, 0.1, cv, 100)
		if math.Abs(got[i]-want) > 1e-12 {
			t.Fatalf("point %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestCPUBackend_ParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := NewCPUBackend()

	// Big enough to take the parallel path.
	pts := randomPoints(2048, rng)
	parallel := b.EvalField(pts, 0.0, testC, 60)

	serial := make([]float64, 2048)
	cv := qmath.Vec4{X: testC[0], Y: testC[1], Z: testC[2], W: testC[3]}
	b.evalSerial(pts, 0.0, cv, 60, serial)

	for i := range parallel {
		if parallel[i] != serial[i] {
			t.Fatalf("point %d: parallel %v != serial %v", i, parallel[i], serial[i])
		}
	}
}

func TestCPUBackend_EmptyBatch(t *testing.T) {
	b := NewCPUBackend()
	if out := b.EvalField(nil, 0, testC, 50); len(out) != 0 {
		t.Errorf("empty batch produced %d results", len(out))
	}
}

func TestAutoSelectBackend(t *testing.T) {
	b := AutoSelectBackend()
	if b == nil {
		t.Fatal("no backend selected")
	}
	if !b.Available() {
		t.Error("auto-selected backend not available")
	}
}

func TestOpenGLBackend_FallsBackWithoutContext(t *testing.T) {
	b := NewOpenGLBackend(4096)
	if b.Available() {
		t.Fatal("uninitialized GL backend reports available")
	}
	// Without a context EvalField must still answer, via the CPU path.
	rng := rand.New(rand.NewSource(3))
	pts := randomPoints(10, rng)
	got := b.EvalField(pts, 0.0, testC, 50)
	if len(got) != 10 {
		t.Fatalf("got %d results", len(got))
	}
	cpu := NewCPUBackend().EvalField(pts, 0.0, testC, 50)
	for i := range got {
		if got[i] != cpu[i] {
			t.Fatalf("fallback diverged at %d", i)
		}
	}
}

func TestForName(t *testing.T) {
	b, err := ForName("cpu", DefaultFieldCapacity)
	if err != nil {
		t.Fatalf("cpu backend: %v", err)
	}
	if b.Name() != "cpu" {
		t.Errorf("backend %q, want cpu", b.Name())
	}

	b, err = ForName("vulkan", DefaultFieldCapacity)
	if err == nil {
		t.Error("unknown backend name accepted")
	}
	if b == nil || !b.Available() {
		t.Error("unknown backend name did not fall back to a usable backend")
	}
}

func TestSetBackend(t *testing.T) {
	orig := GetBackend()
	defer SetBackend(orig)

	b := NewCPUBackend()
	SetBackend(b)
	if GetBackend() != Backend(b) {
		t.Error("SetBackend did not take effect")
	}
}
