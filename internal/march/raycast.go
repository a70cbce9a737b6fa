package march

import (
	"math"

	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/qmath"
)

const (
	raycastThreshold = 0.01
	raycastSteps     = 32
)

// Raycast is the coarse CPU marcher behind click-to-move. It uses the
// interior-aware estimator and a loose threshold so a click on the body of
// the fractal lands on (or just inside) the surface. A miss still returns
// a navigable point along the ray at min(2*radius, 5) so clicking empty
// space always gives the camera somewhere to go.
func Raycast(origin, dir qmath.Vec3, slice float64, c qmath.Vec4, maxIter int, radius float64) (qmath.Vec3, bool) {
	t := 0.0
	for i := 0; i < raycastSteps; i++ {
		p := origin.Add(dir.Scale(t))
		d := fractal.EstimateInterior(p, slice, c, maxIter)
		if d < raycastThreshold {
			return p, true
		}
		t += d
		if t > MaxDist {
			break
		}
	}
	fallback := math.Min(2*radius, 5.0)
	return origin.Add(dir.Scale(fallback)), false
}
