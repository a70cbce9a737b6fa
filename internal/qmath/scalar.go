package qmath

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// LerpAngle interpolates between two angles in radians taking the short
// way around the circle. Differences outside (-pi, pi] are wrapped by 2pi
// before interpolating, so lerping 3.0 -> -3.0 passes through pi rather
// than through zero.
func LerpAngle(a, b, t float64) float64 {
	d := b - a
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return a + d*t
}

// EaseInOut is the cubic in-out easing curve used for camera target
// transitions and tour keyframe blending: 4t^3 below the midpoint,
// 1-(-2t+2)^3/2 above it. Input outside [0,1] is clamped.
func EaseInOut(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Mod2Pi wraps an angle to [0, 2pi).
func Mod2Pi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
