package fractal

import (
	"math"

	"github.com/san-kum/qjulia/internal/qmath"
)

const (
	// EscapeRadius is the bailout magnitude for the quaternion iteration.
	EscapeRadius = 4.0
	// HardIterCap bounds the iteration count regardless of the requested
	// quality setting, matching the unroll bound of the GPU shader.
	HardIterCap = 512
	// Eps guards the distance formula against near-zero radius and
	// derivative values.
	Eps = 1e-6
)

// Estimate returns the signed distance estimate from pos to the Julia set
// of c, on the 3D slice at the given 4th coordinate. Points that never
// escape within the iteration budget fall through to the same formula the
// shader uses; see EstimateInterior for the raycaster variant that reports
// interior points as distance zero.
func Estimate(pos qmath.Vec3, slice float64, c qmath.Vec4, maxIter int) float64 {
	d, _ := iterate(pos, slice, c, maxIter)
	return d
}

// EstimateInterior is the CPU raycast variant: a point that never escapes
// within maxIter is reported as interior with distance 0.
func EstimateInterior(pos qmath.Vec3, slice float64, c qmath.Vec4, maxIter int) float64 {
	d, escaped := iterate(pos, slice, c, maxIter)
	if !escaped {
		return 0
	}
	return d
}

func iterate(pos qmath.Vec3, slice float64, c qmath.Vec4, maxIter int) (dist float64, escaped bool) {
	if maxIter > HardIterCap {
		maxIter = HardIterCap
	}
	z := qmath.Vec4{X: pos.X, Y: pos.Y, Z: pos.Z, W: slice}
	dr := 1.0
	r := z.Length()
	for i := 0; i < maxIter; i++ {
		r = z.Length()
		if r > EscapeRadius {
			escaped = true
			break
		}
		dr = 2 * r * dr
		z = qmath.QuatSquare(z).Add(c)
	}
	if r < Eps {
		r = Eps
	}
	if dr < Eps {
		dr = Eps
	}
	return math.Abs(0.5 * math.Log(r) * r / dr), escaped
}

// IterationCount returns the iteration at which pos escapes, or maxIter
// if it never does.
func IterationCount(pos qmath.Vec3, slice float64, c qmath.Vec4, maxIter int) float64 {
	if maxIter > HardIterCap {
		maxIter = HardIterCap
	}
	z := qmath.Vec4{X: pos.X, Y: pos.Y, Z: pos.Z, W: slice}
	for i := 0; i < maxIter; i++ {
		if z.Length() > EscapeRadius {
			return float64(i)
		}
		z = qmath.QuatSquare(z).Add(c)
	}
	return float64(maxIter)
}

// SmoothIterationCount is IterationCount with the continuous escape-time
// correction i - log2(log2(r)) + 4, which removes the banding that the
// integer count produces in iteration-based coloring.
func SmoothIterationCount(pos qmath.Vec3, slice float64, c qmath.Vec4, maxIter int) float64 {
	if maxIter > HardIterCap {
		maxIter = HardIterCap
	}
	z := qmath.Vec4{X: pos.X, Y: pos.Y, Z: pos.Z, W: slice}
	for i := 0; i < maxIter; i++ {
		r := z.Length()
		if r > EscapeRadius {
			lr := math.Log2(math.Log2(r))
			return float64(i) - lr + 4
		}
		z = qmath.QuatSquare(z).Add(c)
	}
	return float64(maxIter)
}
