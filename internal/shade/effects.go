package shade

import (
	"math"

	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/qmath"
)

// Dynamics are the always-available color adjustments applied after
// palette mapping and effects.
type Dynamics struct {
	Saturation float64 // 0 grayscale .. 1 unchanged .. >1 boosted
	Brightness float64 // multiplier
	Contrast   float64 // pivot around 0.5
	PhaseShift float64 // palette phase offset, radians
	Animate    bool
	AnimSpeed  float64
}

// DefaultDynamics leaves the color untouched.
func DefaultDynamics() Dynamics {
	return Dynamics{Saturation: 1, Brightness: 1, Contrast: 1, AnimSpeed: 1}
}

// Apply runs the dynamics over a color. elapsed feeds the phase animation.
func (d Dynamics) Apply(col qmath.Vec3, elapsed float64) qmath.Vec3 {
	phase := d.PhaseShift
	if d.Animate {
		phase += elapsed * d.AnimSpeed
	}
	if phase != 0 {
		col = rotateHue(col, phase)
	}

	// Saturation: lerp toward luminance.
	lum := 0.299*col.X + 0.587*col.Y + 0.114*col.Z
	gray := qmath.Vec3{X: lum, Y: lum, Z: lum}
	col = gray.Lerp(col, d.Saturation)

	col = col.Scale(d.Brightness)

	// Contrast around mid-gray.
	col = qmath.Vec3{
		X: (col.X-0.5)*d.Contrast + 0.5,
		Y: (col.Y-0.5)*d.Contrast + 0.5,
		Z: (col.Z-0.5)*d.Contrast + 0.5,
	}
	return col.Clamp01()
}

// rotateHue rotates the color around the gray axis by the given angle.
func rotateHue(c qmath.Vec3, angle float64) qmath.Vec3 {
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	// Rodrigues rotation about (1,1,1)/sqrt(3).
	const k = 0.57735026919
	axis := qmath.Vec3{X: k, Y: k, Z: k}
	dot := axis.Dot(c)
	return c.Scale(cosA).
		Add(axis.Cross(c).Scale(sinA)).
		Add(axis.Scale(dot * (1 - cosA)))
}

// OrbitTrapParams configures the orbit-trap color effect.
type OrbitTrapParams struct {
	Type      fractal.TrapType
	Radius    float64
	Intensity float64
}

// ApplyOrbitTrap tints the base color by how closely the orbit at p
// approached the trap geometry.
func ApplyOrbitTrap(base qmath.Vec3, p qmath.Vec3, opts Options, params OrbitTrapParams) qmath.Vec3 {
	trap := fractal.OrbitTrap(p, opts.Slice, opts.C, opts.MaxIter, params.Type, params.Radius)
	// Near-captures glow; 1-trap inverts so tight orbits are bright.
	glow := math.Pow(1-trap, 3)
	tint := qmath.Vec3{
		X: 0.5 + 0.5*math.Sin(6.28318*trap),
		Y: 0.5 + 0.5*math.Sin(6.28318*trap+2.0944),
		Z: 0.5 + 0.5*math.Sin(6.28318*trap+4.18879),
	}
	return base.Lerp(base.Mul(tint).Add(tint.Scale(glow*0.5)).Clamp01(), qmath.Clamp(params.Intensity, 0, 1))
}

// PhysicsParams configures the physics-color effect: wave interference
// patterns laid over the surface.
type PhysicsParams struct {
	Type      int // 0 interference, 1 standing waves, 2 ripples
	Frequency float64
	Waves     float64
	Intensity float64
	Balance   float64
}

// ApplyPhysics modulates the base color with an interference pattern
// evaluated at the hit point.
func ApplyPhysics(base qmath.Vec3, p qmath.Vec3, elapsed float64, params PhysicsParams) qmath.Vec3 {
	f := params.Frequency
	var w float64
	switch params.Type {
	case 1: // standing waves along the axes
		w = math.Sin(f*p.X) * math.Sin(f*p.Y) * math.Sin(f*p.Z)
	case 2: // ripples radiating from the origin
		w = math.Sin(f*p.Length()*params.Waves - elapsed)
	default: // two-source interference
		d1 := p.Sub(qmath.Vec3{X: 1}).Length()
		d2 := p.Add(qmath.Vec3{X: 1}).Length()
		w = math.Sin(f*d1) + math.Sin(f*d2)
		w *= 0.5
	}
	w = w*0.5 + 0.5

	warm := qmath.Vec3{X: 1.0, Y: 0.6, Z: 0.2}
	cold := qmath.Vec3{X: 0.2, Y: 0.5, Z: 1.0}
	tint := cold.Lerp(warm, qmath.Clamp(params.Balance, 0, 1))
	modulated := base.Lerp(tint.Scale(w), qmath.Clamp(params.Intensity, 0, 1))
	return modulated.Clamp01()
}
