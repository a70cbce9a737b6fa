package fractal

import (
	"math"

	"github.com/san-kum/qjulia/internal/qmath"
)

// TrapType selects the geometry the orbit is measured against.
type TrapType int

const (
	TrapPoint  TrapType = iota // distance to the origin
	TrapPlanes                 // distance to the coordinate planes
	TrapSphere                 // distance to a sphere of the given radius
	TrapCross                  // distance to the axis cross
)

// OrbitTrap runs the Julia iteration at pos and returns the minimum
// distance any orbit point came to the trap geometry, normalized so that
// a tight capture approaches 0 and a wide miss approaches 1.
func OrbitTrap(pos qmath.Vec3, slice float64, c qmath.Vec4, maxIter int, trap TrapType, radius float64) float64 {
	if maxIter > HardIterCap {
		maxIter = HardIterCap
	}
	z := qmath.Vec4{X: pos.X, Y: pos.Y, Z: pos.Z, W: slice}
	minDist := math.MaxFloat64
	for i := 0; i < maxIter; i++ {
		if z.Length() > EscapeRadius {
			break
		}
		var d float64
		switch trap {
		case TrapPlanes:
			d = math.Min(math.Abs(z.X), math.Min(math.Abs(z.Y), math.Abs(z.Z)))
		case TrapSphere:
			d = math.Abs(z.Length() - radius)
		case TrapCross:
			xy := math.Hypot(z.X, z.Y)
			yz := math.Hypot(z.Y, z.Z)
			zx := math.Hypot(z.Z, z.X)
			d = math.Min(xy, math.Min(yz, zx))
		default: // TrapPoint
			d = z.Length()
		}
		if d < minDist {
			minDist = d
		}
		z = qmath.QuatSquare(z).Add(c)
	}
	if minDist == math.MaxFloat64 {
		return 1
	}
	return qmath.Clamp(minDist/EscapeRadius, 0, 1)
}
