// Package camera implements the hybrid orbital / first-person camera:
// yaw-pitch orientation around a look-at center, scroll-driven dolly with
// exponential deceleration, a soft outer boundary, and eased click-to-move
// transitions of the center point.
package camera

import (
	"math"

	"github.com/san-kum/qjulia/internal/qmath"
)

const (
	// MinRadius and MaxDistance bound the orbit radius.
	MinRadius   = 0.2
	MaxDistance = 20.0

	// MaxVelocity caps the dolly speed; velocities below
	// MinVelocityThreshold snap to zero to avoid endless creep.
	MaxVelocity          = 3.0
	MinVelocityThreshold = 1e-3

	// Deceleration is the per-update exponential decay of the dolly
	// velocity while no hold modifier is active.
	Deceleration = 0.92

	// PullbackFactor scales the soft correction applied when the camera
	// overshoots MaxDistance; a hard clamp would snap visibly.
	PullbackFactor = 0.08

	MinFocal = 0.1
	MaxFocal = 24.0

	// TargetDuration is the length of a click-to-move transition.
	TargetDuration = 1.2

	maxPitch = math.Pi / 2
)

// State is the full camera state machine. The zero value is not usable;
// call New.
type State struct {
	Position    qmath.Vec3
	Pitch, Yaw  float64
	Center      qmath.Vec3
	Radius      float64
	FocalLength float64

	// Dolly sub-state. HoldVelocity suppresses deceleration while the
	// modifier key is down.
	MoveVelocity float64
	HoldVelocity bool

	// Target-transition sub-state, consumed every frame while Moving.
	TargetCenter  qmath.Vec3
	Progress      float64
	Moving        bool
	ReturnToStart bool

	startCenter qmath.Vec3
}

// New returns the camera in its home orbit.
func New() *State {
	s := &State{
		Radius:      3.0,
		FocalLength: 2.0,
	}
	s.Position = qmath.Vec3{X: 0, Y: 0.4, Z: 3.0}
	s.LookAt(qmath.Vec3{})
	return s
}

// Basis returns the forward/right/up frame of the current orientation:
// yaw about world Y, then pitch about the local X axis. At yaw=0 pitch=0
// the camera looks down -Z.
func (s *State) Basis() (forward, right, up qmath.Vec3) {
	sy, cy := math.Sincos(s.Yaw)
	sp, cp := math.Sincos(s.Pitch)
	forward = qmath.Vec3{X: sy * cp, Y: sp, Z: -cy * cp}
	right = qmath.Vec3{X: cy, Y: 0, Z: sy}
	up = right.Cross(forward)
	return forward, right, up
}

// LookAt points the camera at center and back-derives pitch/yaw from the
// resulting direction so the orbital and free-look schemes stay in sync.
func (s *State) LookAt(center qmath.Vec3) {
	s.Center = center
	d := center.Sub(s.Position)
	s.Radius = qmath.Clamp(d.Length(), MinRadius, MaxDistance)
	if d.Length() == 0 {
		return
	}
	d = d.Normalize()
	s.Pitch = qmath.Clamp(math.Asin(d.Y), -maxPitch, maxPitch)
	s.Yaw = math.Atan2(d.X, -d.Z)
}

// Rotate adjusts yaw and pitch and re-seats the camera on its orbit
// around the center.
func (s *State) Rotate(dYaw, dPitch float64) {
	s.Yaw += dYaw
	s.Pitch = qmath.Clamp(s.Pitch+dPitch, -maxPitch, maxPitch)
	forward, _, _ := s.Basis()
	s.Position = s.Center.Sub(forward.Scale(s.Radius))
}

// AddVelocity accumulates scroll input into the dolly velocity, clamped
// to the speed cap. Positive velocity moves toward the view direction.
func (s *State) AddVelocity(dv float64) {
	s.MoveVelocity = qmath.Clamp(s.MoveVelocity+dv, -MaxVelocity, MaxVelocity)
}

// SetFocal clamps and stores the focal length.
func (s *State) SetFocal(f float64) {
	s.FocalLength = qmath.Clamp(f, MinFocal, MaxFocal)
}

// MoveToTarget starts an eased transition of the look-at center. When
// animate is false the move is applied instantaneously.
func (s *State) MoveToTarget(p qmath.Vec3, animate bool) {
	if !animate {
		s.finishMove(p)
		return
	}
	s.startCenter = s.Center
	s.TargetCenter = p
	s.Progress = 0
	s.Moving = true
}

// Reset flies the camera back to its home orbit; the orbital state is
// fully rebuilt when the transition lands.
func (s *State) Reset(animate bool) {
	s.ReturnToStart = true
	s.MoveToTarget(qmath.Vec3{}, animate)
}

func (s *State) finishMove(p qmath.Vec3) {
	s.Center = p
	s.Moving = false
	s.Progress = 1
	if s.ReturnToStart {
		s.ReturnToStart = false
		home := New()
		*s = *home
		return
	}
	s.LookAt(p)
}

// Update advances the dolly and any running target transition by dt
// seconds. It is called exactly once per frame.
func (s *State) Update(dt float64) {
	s.updateDolly(dt)
	s.updateTransition(dt)

	// Maintain the orbit radius invariant after any movement.
	s.Radius = qmath.Clamp(s.Position.Sub(s.Center).Length(), MinRadius, MaxDistance)
}

func (s *State) updateDolly(dt float64) {
	if s.MoveVelocity == 0 {
		return
	}
	forward, _, _ := s.Basis()
	dist := s.Position.Length()

	// At the boundary moving outward the velocity only decays; advancing
	// would fight the pull-back below.
	movingOut := s.MoveVelocity < 0
	if !(movingOut && dist >= MaxDistance) {
		s.Position = s.Position.Add(forward.Scale(s.MoveVelocity * dt))
	}

	if dist > MaxDistance {
		overshoot := dist - MaxDistance
		s.Position = s.Position.Sub(s.Position.Normalize().Scale(PullbackFactor * overshoot))
	}

	if !s.HoldVelocity {
		s.MoveVelocity *= Deceleration
	}
	if math.Abs(s.MoveVelocity) < MinVelocityThreshold {
		s.MoveVelocity = 0
	}
}

func (s *State) updateTransition(dt float64) {
	if !s.Moving {
		return
	}
	s.Progress += dt / TargetDuration
	if s.Progress >= 1 {
		s.finishMove(s.TargetCenter)
		return
	}
	e := qmath.EaseInOut(s.Progress)
	s.Center = s.startCenter.Lerp(s.TargetCenter, e)
	// Track the moving center with the orientation, keeping the
	// position fixed so the world doesn't lurch.
	pos := s.Position
	s.LookAt(s.Center)
	s.Position = pos
}
