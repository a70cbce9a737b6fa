package fractal

import (
	"math/rand"

	"github.com/san-kum/qjulia/internal/qmath"
)

// Params holds the four real components of the Julia constant c. The UI
// convention keeps each component in [-1,1]; the math does not clamp.
type Params struct {
	C qmath.Vec4
}

// Default is the constant the application starts with.
func Default() Params {
	return Params{C: qmath.Vec4{X: -0.2, Y: 0.6, Z: 0.2, W: 0.2}}
}

// Randomize replaces c with uniform components in [-1,1].
func (p *Params) Randomize(rng *rand.Rand) {
	p.C = qmath.Vec4{
		X: rng.Float64()*2 - 1,
		Y: rng.Float64()*2 - 1,
		Z: rng.Float64()*2 - 1,
		W: rng.Float64()*2 - 1,
	}
}

// Preset is a named Julia constant.
type Preset struct {
	Name string
	C    qmath.Vec4
}

// Presets are the built-in constants reachable from the GUI number row
// and the --preset flag.
var Presets = []Preset{
	{"classic", qmath.Vec4{X: -0.2, Y: 0.6, Z: 0.2, W: 0.2}},
	{"dendrite", qmath.Vec4{X: -0.591, Y: -0.399, Z: 0.339, W: 0.437}},
	{"coral", qmath.Vec4{X: 0.285, Y: 0.01, Z: 0.0, W: 0.0}},
	{"bulb", qmath.Vec4{X: -0.45, Y: 0.34, Z: -0.26, W: -0.14}},
	{"lace", qmath.Vec4{X: -0.08, Y: 0.0, Z: -0.83, W: -0.025}},
	{"spiral", qmath.Vec4{X: -0.162, Y: 0.163, Z: 0.56, W: -0.599}},
	{"blob", qmath.Vec4{X: -0.2, Y: 0.8, Z: 0.0, W: 0.0}},
	{"crown", qmath.Vec4{X: -0.445, Y: 0.339, Z: -0.0889, W: -0.562}},
}

// PresetByName returns the preset with the given name, or false.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
