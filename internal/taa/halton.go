package taa

// Halton returns element i of the radical-inverse sequence for the given
// base. i starts at 1; Halton(0, b) is 0.
func Halton(i uint64, base uint64) float64 {
	f := 1.0
	r := 0.0
	for i > 0 {
		f /= float64(base)
		r += f * float64(i%base)
		i /= base
	}
	return r
}

// Jitter returns the sub-pixel offset for a frame, in pixels, centered on
// zero: bases 2 and 3, cycled over 16 samples so the pattern repeats
// before floating-point drift accumulates.
func Jitter(frame uint64) (x, y float64) {
	i := frame%16 + 1
	return Halton(i, 2) - 0.5, Halton(i, 3) - 0.5
}
