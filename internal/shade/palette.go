package shade

import (
	"math"

	"github.com/san-kum/qjulia/internal/qmath"
)

// Palette maps a normalized iteration count t in [0,1] to a color for
// palette index 1..10. Index 0 (palette off) never reaches this function.
// Each palette is a fixed closed-form curve; the constants are part of the
// visual identity and must not drift.
func Palette(index int, t float64) qmath.Vec3 {
	t = qmath.Clamp(t, 0, 1)
	switch index {
	case 1: // ember: black body ramp
		return qmath.Vec3{
			X: qmath.Clamp(3*t, 0, 1),
			Y: qmath.Clamp(3*t-1, 0, 1),
			Z: qmath.Clamp(3*t-2, 0, 1),
		}
	case 2: // ocean: cosine palette, blue-cyan
		return cosPalette(t,
			qmath.Vec3{X: 0.0, Y: 0.3, Z: 0.5},
			qmath.Vec3{X: 0.0, Y: 0.4, Z: 0.5},
			qmath.Vec3{X: 1.0, Y: 1.0, Z: 1.0},
			qmath.Vec3{X: 0.0, Y: 0.25, Z: 0.5})
	case 3: // aurora: green-violet sweep
		return cosPalette(t,
			qmath.Vec3{X: 0.3, Y: 0.5, Z: 0.4},
			qmath.Vec3{X: 0.5, Y: 0.5, Z: 0.4},
			qmath.Vec3{X: 1.0, Y: 1.0, Z: 0.7},
			qmath.Vec3{X: 0.1, Y: 0.4, Z: 0.8})
	case 4: // sunset
		return cosPalette(t,
			qmath.Vec3{X: 0.5, Y: 0.3, Z: 0.2},
			qmath.Vec3{X: 0.5, Y: 0.3, Z: 0.3},
			qmath.Vec3{X: 1.0, Y: 0.8, Z: 0.6},
			qmath.Vec3{X: 0.0, Y: 0.1, Z: 0.3})
	case 5: // grayscale with gamma lift
		g := math.Pow(t, 0.6)
		return qmath.Vec3{X: g, Y: g, Z: g}
	case 6: // neon: saturated sine triplet
		return qmath.Vec3{
			X: 0.5 + 0.5*math.Sin(6.28318*t),
			Y: 0.5 + 0.5*math.Sin(6.28318*t+2.0944),
			Z: 0.5 + 0.5*math.Sin(6.28318*t+4.18879),
		}
	case 7: // ice: powered blue ramp
		return qmath.Vec3{
			X: t * t,
			Y: math.Pow(t, 1.5),
			Z: math.Sqrt(t),
		}
	case 8: // forest
		return cosPalette(t,
			qmath.Vec3{X: 0.2, Y: 0.4, Z: 0.2},
			qmath.Vec3{X: 0.3, Y: 0.4, Z: 0.2},
			qmath.Vec3{X: 1.0, Y: 1.0, Z: 1.0},
			qmath.Vec3{X: 0.1, Y: 0.3, Z: 0.2})
	case 9: // candy: high-frequency rainbow
		return cosPalette(t,
			qmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
			qmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
			qmath.Vec3{X: 2.0, Y: 1.0, Z: 0.0},
			qmath.Vec3{X: 0.5, Y: 0.2, Z: 0.25})
	case 10: // duotone: violet to gold
		a := qmath.Vec3{X: 0.25, Y: 0.1, Z: 0.4}
		b := qmath.Vec3{X: 0.95, Y: 0.75, Z: 0.3}
		s := t * t * (3 - 2*t) // smoothstep
		return a.Lerp(b, s)
	default:
		return qmath.Vec3{X: 1, Y: 1, Z: 1}
	}
}

// cosPalette is the standard a + b*cos(2pi*(c*t+d)) procedural palette.
func cosPalette(t float64, a, b, c, d qmath.Vec3) qmath.Vec3 {
	const tau = 2 * math.Pi
	return qmath.Vec3{
		X: a.X + b.X*math.Cos(tau*(c.X*t+d.X)),
		Y: a.Y + b.Y*math.Cos(tau*(c.Y*t+d.Y)),
		Z: a.Z + b.Z*math.Cos(tau*(c.Z*t+d.Z)),
	}.Clamp01()
}
