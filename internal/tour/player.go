package tour

import (
	"fmt"
	"time"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/qmath"
	"github.com/san-kum/qjulia/internal/state"
)

// EndingDuration is how long the completion banner stays up after the
// last point.
const EndingDuration = 3.0

// Phase enumerates the player states.
type Phase int

const (
	Idle Phase = iota
	Recording
	Transitioning
	Holding
	Ending
)

func (p Phase) String() string {
	switch p {
	case Recording:
		return "recording"
	case Transitioning:
		return "transitioning"
	case Holding:
		return "holding"
	case Ending:
		return "ending"
	default:
		return "idle"
	}
}

// Player drives tour playback and recording. Exactly one tour can be
// active; Update is called once per frame with the frame delta and the
// live state the interpolated keyframes are written into.
type Player struct {
	phase Phase

	tour       *Tour
	index      int // point we are transitioning from
	progress   float64
	holdTimer  float64
	transition float64
	stay       float64

	recording *Tour
}

// NewPlayer starts idle.
func NewPlayer() *Player { return &Player{} }

// Phase reports the current state.
func (pl *Player) Phase() Phase { return pl.phase }

// Playing reports whether a tour is running. While playing, all input
// except the stop key must be suppressed by the frontend.
func (pl *Player) Playing() bool {
	return pl.phase == Transitioning || pl.phase == Holding || pl.phase == Ending
}

// Progress exposes the pre-easing transition progress for overlays.
func (pl *Player) Progress() float64 { return pl.progress }

// Banner returns the overlay text, empty when nothing should show.
func (pl *Player) Banner() string {
	switch pl.phase {
	case Ending:
		return "Tour Completed"
	case Recording:
		n := 0
		if pl.recording != nil {
			n = len(pl.recording.Points)
		}
		return fmt.Sprintf("Recording tour: %d points", n)
	case Transitioning, Holding:
		return fmt.Sprintf("Tour: %s (%d/%d)", pl.tour.Name, pl.index+1, len(pl.tour.Points))
	}
	return ""
}

// Start validates the tour, applies its first point instantly, and
// begins the first transition. The pre-playback state is gone once this
// returns nil; stopping mid-tour leaves the camera where it is.
func (pl *Player) Start(t *Tour, a *state.App, cam *camera.State) error {
	if err := t.Validate(); err != nil {
		return err
	}
	pl.tour = t
	pl.transition, pl.stay = t.Durations()
	pl.index = 0
	pl.progress = 0
	pl.phase = Transitioning
	t.Points[0].Apply(a, cam)
	return nil
}

// Stop aborts playback or recording immediately. A recording in
// progress is returned so the caller can decide to keep it.
func (pl *Player) Stop() *Tour {
	rec := pl.recording
	pl.phase = Idle
	pl.tour = nil
	pl.recording = nil
	pl.progress = 0
	pl.holdTimer = 0
	return rec
}

// Update advances playback by dt seconds, writing the interpolated
// state into a and cam. It is a no-op while idle or recording.
func (pl *Player) Update(dt float64, a *state.App, cam *camera.State) {
	switch pl.phase {
	case Transitioning:
		pl.progress += dt / pl.transition
		if pl.progress >= 1 {
			pl.arrive(a, cam)
			return
		}
		from := &pl.tour.Points[pl.index]
		to := &pl.tour.Points[pl.index+1]
		p := lerpPoint(from, to, qmath.EaseInOut(pl.progress))
		p.applyContinuous(a, cam)

	case Holding:
		pl.holdTimer += dt
		if pl.holdTimer < pl.stay {
			return
		}
		pl.holdTimer = 0
		if pl.index+1 >= len(pl.tour.Points) {
			pl.phase = Ending
			return
		}
		pl.progress = 0
		pl.phase = Transitioning

	case Ending:
		pl.holdTimer += dt
		if pl.holdTimer >= EndingDuration {
			pl.Stop()
		}
	}
}

// arrive lands on the next point: continuous fields snap to their end
// values and the discrete fields apply now, at the end of the
// transition, where a palette or toggle change cannot blend.
func (pl *Player) arrive(a *state.App, cam *camera.State) {
	pl.index++
	p := &pl.tour.Points[pl.index]
	p.Apply(a, cam)
	// Re-seat the orbit center on the arrival orientation so manual
	// control after the tour picks up from a consistent orbit.
	forward, _, _ := cam.Basis()
	cam.Center = cam.Position.Add(forward.Scale(cam.Radius))
	pl.progress = 1
	pl.holdTimer = 0
	pl.phase = Holding
}

// StartRecording opens a new named tour for keyframe capture.
func (pl *Player) StartRecording(name string) {
	pl.recording = &Tour{Name: name, Created: time.Now()}
	pl.phase = Recording
}

// RecordPoint captures the live state as the next keyframe. It is
// ignored unless a recording is open.
func (pl *Player) RecordPoint(a *state.App, cam *camera.State) {
	if pl.phase != Recording || pl.recording == nil {
		return
	}
	pl.recording.Points = append(pl.recording.Points, CapturePoint(a, cam))
}

// FinishRecording closes the recording and returns it. The result may
// still fail Validate if fewer than two points were captured.
func (pl *Player) FinishRecording() *Tour {
	rec := pl.recording
	pl.recording = nil
	pl.phase = Idle
	return rec
}
