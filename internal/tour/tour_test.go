package tour

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/state"
)

func twoPointTour(transition, stay float64) *Tour {
	return &Tour{
		Name:               "test",
		TransitionDuration: transition,
		StayDuration:       stay,
		Points: []Point{
			{
				C:        []float64{-0.2, 0.6, 0.2, 0.2},
				Position: [3]float64{0, 0.4, 3},
				Focal:    2,
				Palette:  1,
				Quality:  state.Quality{MaxIter: 200},
			},
			{
				C:        []float64{0.4, -0.2, 0.6, 0.0},
				Position: [3]float64{2, 1, -1},
				Yaw:      1.2,
				Focal:    4,
				Palette:  5,
				Quality:  state.Quality{MaxIter: 400},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	tr := twoPointTour(4, 2)
	if err := tr.Validate(); err != nil {
		t.Errorf("valid tour rejected: %v", err)
	}

	one := &Tour{Name: "short", Points: tr.Points[:1]}
	if err := one.Validate(); err == nil {
		t.Error("single-point tour accepted")
	}

	bad := twoPointTour(4, 2)
	bad.Points[1].C = []float64{0.1, 0.2}
	if err := bad.Validate(); err == nil {
		t.Error("2-component fractal params accepted")
	}
}

func TestStart_RejectsInvalid(t *testing.T) {
	pl := NewPlayer()
	a := state.NewApp()
	cam := camera.New()
	one := &Tour{Name: "short", Points: twoPointTour(4, 2).Points[:1]}
	if err := pl.Start(one, a, cam); err == nil {
		t.Fatal("playback started on invalid tour")
	}
	if pl.Playing() {
		t.Error("player active after rejected start")
	}
}

func TestPlayback_HalfwayThroughTransition(t *testing.T) {
	pl := NewPlayer()
	a := state.NewApp()
	cam := camera.New()
	tr := twoPointTour(5, 2)
	if err := pl.Start(tr, a, cam); err != nil {
		t.Fatal(err)
	}

	// First point applied instantly on start.
	if a.Fractal.C.X != -0.2 || cam.FocalLength != 2 {
		t.Fatalf("start did not apply point 0: c=%v focal=%v", a.Fractal.C, cam.FocalLength)
	}

	// 2.5s of a 5s transition in frame-sized steps.
	steps := 150
	for i := 0; i < steps; i++ {
		pl.Update(2.5/float64(steps), a, cam)
	}
	if math.Abs(pl.Progress()-0.5) > 1e-9 {
		t.Errorf("progress %v, want 0.5", pl.Progress())
	}
	// The ease is symmetric, so t=0.5 lands exactly halfway.
	wantX := (-0.2 + 0.4) / 2
	if math.Abs(a.Fractal.C.X-wantX) > 1e-9 {
		t.Errorf("c.x %v, want %v", a.Fractal.C.X, wantX)
	}
	if math.Abs(cam.FocalLength-3) > 1e-9 {
		t.Errorf("focal %v, want 3", cam.FocalLength)
	}
}

func TestPlayback_DiscreteFieldsSnapAtEnd(t *testing.T) {
	pl := NewPlayer()
	a := state.NewApp()
	cam := camera.New()
	tr := twoPointTour(1, 0.5)
	if err := pl.Start(tr, a, cam); err != nil {
		t.Fatal(err)
	}

	pl.Update(0.5, a, cam)
	if a.Color.Palette != 1 {
		t.Errorf("palette changed mid-transition: %d", a.Color.Palette)
	}
	if a.Quality.MaxIter != 200 {
		t.Errorf("maxIter changed mid-transition: %d", a.Quality.MaxIter)
	}

	pl.Update(0.6, a, cam)
	if pl.Phase() != Holding {
		t.Fatalf("phase %v after transition end, want holding", pl.Phase())
	}
	if a.Color.Palette != 5 || a.Quality.MaxIter != 400 {
		t.Errorf("discrete fields did not snap on arrival: palette=%d maxIter=%d",
			a.Color.Palette, a.Quality.MaxIter)
	}
}

func TestPlayback_YawTakesShortArc(t *testing.T) {
	pl := NewPlayer()
	a := state.NewApp()
	cam := camera.New()
	tr := twoPointTour(1, 0.5)
	tr.Points[0].Yaw = 3.0
	tr.Points[1].Yaw = -3.0
	if err := pl.Start(tr, a, cam); err != nil {
		t.Fatal(err)
	}
	pl.Update(0.5, a, cam)
	// Short arc crosses ±π, never passes through 0.
	if math.Abs(cam.Yaw) < 3.0 {
		t.Errorf("yaw %v interpolated the long way around", cam.Yaw)
	}
}

func TestPlayback_RunsToEndingThenIdle(t *testing.T) {
	pl := NewPlayer()
	a := state.NewApp()
	cam := camera.New()
	tr := twoPointTour(0.5, 0.25)
	if err := pl.Start(tr, a, cam); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200 && pl.Phase() != Ending; i++ {
		pl.Update(1.0/60, a, cam)
	}
	if pl.Phase() != Ending {
		t.Fatal("tour never reached the ending phase")
	}
	if pl.Banner() != "Tour Completed" {
		t.Errorf("banner %q during ending", pl.Banner())
	}
	for i := 0; i < 300 && pl.Phase() != Idle; i++ {
		pl.Update(1.0/60, a, cam)
	}
	if pl.Phase() != Idle {
		t.Error("ending banner never timed out")
	}
}

func TestStop_AbortsImmediately(t *testing.T) {
	pl := NewPlayer()
	a := state.NewApp()
	cam := camera.New()
	if err := pl.Start(twoPointTour(5, 2), a, cam); err != nil {
		t.Fatal(err)
	}
	pl.Update(1, a, cam)
	pl.Stop()
	if pl.Playing() || pl.Phase() != Idle {
		t.Error("stop did not return player to idle")
	}
}

func TestRecording(t *testing.T) {
	pl := NewPlayer()
	a := state.NewApp()
	cam := camera.New()

	pl.StartRecording("recorded")
	if pl.Phase() != Recording {
		t.Fatalf("phase %v", pl.Phase())
	}
	pl.RecordPoint(a, cam)
	a.Fractal.Randomize(rand.New(rand.NewSource(1)))
	cam.Rotate(0.5, 0.2)
	pl.RecordPoint(a, cam)

	rec := pl.FinishRecording()
	if rec == nil || len(rec.Points) != 2 {
		t.Fatalf("recording lost points: %+v", rec)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("recorded tour invalid: %v", err)
	}
	if rec.Points[0].C[0] == rec.Points[1].C[0] {
		t.Error("second point did not capture the randomized params")
	}
	if pl.Phase() != Idle {
		t.Error("finish did not return to idle")
	}
}

func TestRecordPoint_IgnoredWhenIdle(t *testing.T) {
	pl := NewPlayer()
	pl.RecordPoint(state.NewApp(), camera.New())
	if rec := pl.FinishRecording(); rec != nil {
		t.Error("idle record produced a tour")
	}
}

func TestDecode_RoundTripAndRejection(t *testing.T) {
	tr := twoPointTour(4, 2)
	data, err := tr.Encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != tr.Name || len(got.Points) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
	tq, sq := got.Durations()
	if tq != 4 || sq != 2 {
		t.Errorf("durations %v/%v", tq, sq)
	}

	for _, payload := range []string{
		"", "{", `{"name":"x","points":[]}`,
		`{"name":"x","points":[{"c":[1,2,3,4]}]}`,
		`{"name":"x","points":[{"c":[1,2,3,4]},{"c":[1,2]}]}`,
	} {
		if _, err := Decode([]byte(payload)); err == nil {
			t.Errorf("bad tour accepted: %q", payload)
		}
	}
}

func TestDurations_Defaults(t *testing.T) {
	tr := &Tour{Points: twoPointTour(0, 0).Points}
	tq, sq := tr.Durations()
	if tq != DefaultTransition || sq != DefaultStay {
		t.Errorf("defaults %v/%v", tq, sq)
	}
}
