// Package tour implements scripted camera paths: ordered snapshots of
// the full application state, recorded live and played back with eased
// interpolation between keyframes.
package tour

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/qmath"
	"github.com/san-kum/qjulia/internal/state"
)

const (
	// DefaultTransition and DefaultStay apply when a tour file omits its
	// own durations.
	DefaultTransition = 4.0
	DefaultStay       = 2.0
)

// Point is one keyframe: a complete snapshot of fractal, slice, camera,
// quality and color state. C is kept as a slice so a file carrying the
// wrong component count is caught by validation instead of silently
// zero-padded.
type Point struct {
	C []float64 `json:"c"`

	SliceValue     float64 `json:"sliceValue"`
	SliceAmplitude float64 `json:"sliceAmplitude"`
	SliceAnimate   bool    `json:"sliceAnimate"`

	Position [3]float64 `json:"position"`
	Pitch    float64    `json:"pitch"`
	Yaw      float64    `json:"yaw"`
	Focal    float64    `json:"focal"`

	Animations   bool `json:"animations"`
	HoldVelocity bool `json:"holdVelocity"`

	Quality state.Quality `json:"quality"`
	Palette int           `json:"palette"`

	ClipMode     int     `json:"clipMode"`
	ClipDistance float64 `json:"clipDistance"`
}

// Tour is an ordered keyframe sequence with per-tour default durations.
type Tour struct {
	Name               string    `json:"name"`
	Created            time.Time `json:"created"`
	TransitionDuration float64   `json:"defaultTransitionDuration,omitempty"`
	StayDuration       float64   `json:"defaultStayDuration,omitempty"`
	Points             []Point   `json:"points"`
}

// Validate rejects tours that cannot be played: fewer than two points,
// or any point without a 4-component fractal parameter vector.
func (t *Tour) Validate() error {
	if len(t.Points) < 2 {
		return fmt.Errorf("tour %q has %d points, need at least 2", t.Name, len(t.Points))
	}
	for i, p := range t.Points {
		if len(p.C) != 4 {
			return fmt.Errorf("tour %q point %d has %d fractal components, need 4", t.Name, i, len(p.C))
		}
	}
	return nil
}

// Durations returns the transition and stay durations, falling back to
// the package defaults when the file omitted them.
func (t *Tour) Durations() (transition, stay float64) {
	transition, stay = t.TransitionDuration, t.StayDuration
	if transition <= 0 {
		transition = DefaultTransition
	}
	if stay <= 0 {
		stay = DefaultStay
	}
	return transition, stay
}

// Decode parses and validates a tour payload. The returned tour is only
// non-nil when it passed validation.
func Decode(data []byte) (*Tour, error) {
	var t Tour
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tour: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Encode renders the tour as indented JSON.
func (t *Tour) Encode() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// CapturePoint snapshots the live state into a keyframe.
func CapturePoint(a *state.App, cam *camera.State) Point {
	c := a.Fractal.C.Array()
	return Point{
		C:              []float64{c[0], c[1], c[2], c[3]},
		SliceValue:     a.Slice.Value,
		SliceAmplitude: a.Slice.Amplitude,
		SliceAnimate:   a.Slice.Animate,
		Position:       [3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z},
		Pitch:          cam.Pitch,
		Yaw:            cam.Yaw,
		Focal:          cam.FocalLength,
		Animations:     a.Animations,
		HoldVelocity:   cam.HoldVelocity,
		Quality:        a.Quality,
		Palette:        a.Color.Palette,
		ClipMode:       int(a.Clip.Mode),
		ClipDistance:   a.Clip.Distance,
	}
}

// applyContinuous writes the interpolated fields of p into the live
// state. Discrete fields are handled separately by applyDiscrete.
func (p *Point) applyContinuous(a *state.App, cam *camera.State) {
	a.Fractal.C = qmath.Vec4{X: p.C[0], Y: p.C[1], Z: p.C[2], W: p.C[3]}
	a.Slice.Value = p.SliceValue
	a.Slice.Amplitude = p.SliceAmplitude
	cam.Position = qmath.Vec3{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]}
	cam.Pitch = p.Pitch
	cam.Yaw = p.Yaw
	cam.FocalLength = p.Focal
}

// applyDiscrete snaps the non-interpolable fields.
func (p *Point) applyDiscrete(a *state.App, cam *camera.State) {
	a.Slice.Animate = p.SliceAnimate
	a.Animations = p.Animations
	cam.HoldVelocity = p.HoldVelocity
	a.Quality = p.Quality
	a.Quality.SetMaxIter(p.Quality.MaxIter)
	a.Color.SetPalette(p.Palette)
	a.Clip.SetMode(p.ClipMode)
	a.Clip.SetDistance(p.ClipDistance)
}

// Apply writes the whole keyframe, continuous and discrete, at once.
func (p *Point) Apply(a *state.App, cam *camera.State) {
	p.applyContinuous(a, cam)
	p.applyDiscrete(a, cam)
}

// lerpPoint interpolates the continuous fields between two keyframes.
// Pitch and yaw take the shortest arc so a path crossing the ±π seam
// does not whip the camera the long way around.
func lerpPoint(from, to *Point, t float64) Point {
	out := *from
	out.C = []float64{
		qmath.Lerp(from.C[0], to.C[0], t),
		qmath.Lerp(from.C[1], to.C[1], t),
		qmath.Lerp(from.C[2], to.C[2], t),
		qmath.Lerp(from.C[3], to.C[3], t),
	}
	out.SliceValue = qmath.Lerp(from.SliceValue, to.SliceValue, t)
	out.SliceAmplitude = qmath.Lerp(from.SliceAmplitude, to.SliceAmplitude, t)
	out.Position = [3]float64{
		qmath.Lerp(from.Position[0], to.Position[0], t),
		qmath.Lerp(from.Position[1], to.Position[1], t),
		qmath.Lerp(from.Position[2], to.Position[2], t),
	}
	out.Pitch = qmath.LerpAngle(from.Pitch, to.Pitch, t)
	out.Yaw = qmath.LerpAngle(from.Yaw, to.Yaw, t)
	out.Focal = qmath.Lerp(from.Focal, to.Focal, t)
	return out
}
