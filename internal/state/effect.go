package state

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/qjulia/internal/shade"
)

// EffectKind tags the active color effect.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectOrbitTrap
	EffectPhysics
)

// Effect is a tagged union over the mutually exclusive color effects.
// Only the params matching Kind are meaningful; switching kinds replaces
// the whole value, so both effects can never be active at once.
type Effect struct {
	Kind      EffectKind
	OrbitTrap shade.OrbitTrapParams
	Physics   shade.PhysicsParams
}

// NoEffect returns the inactive effect.
func NoEffect() Effect { return Effect{Kind: EffectNone} }

// WithOrbitTrap returns an effect value carrying orbit-trap params.
func WithOrbitTrap(p shade.OrbitTrapParams) Effect {
	return Effect{Kind: EffectOrbitTrap, OrbitTrap: p}
}

// WithPhysics returns an effect value carrying physics-color params.
func WithPhysics(p shade.PhysicsParams) Effect {
	return Effect{Kind: EffectPhysics, Physics: p}
}

type effectJSON struct {
	Kind      string                 `json:"kind"`
	OrbitTrap *shade.OrbitTrapParams `json:"orbitTrap,omitempty"`
	Physics   *shade.PhysicsParams   `json:"physics,omitempty"`
}

// MarshalJSON serializes only the active variant.
func (e Effect) MarshalJSON() ([]byte, error) {
	out := effectJSON{}
	switch e.Kind {
	case EffectOrbitTrap:
		out.Kind = "orbitTrap"
		p := e.OrbitTrap
		out.OrbitTrap = &p
	case EffectPhysics:
		out.Kind = "physics"
		p := e.Physics
		out.Physics = &p
	default:
		out.Kind = "none"
	}
	return json.Marshal(out)
}

// UnmarshalJSON rejects payloads claiming both variants at once.
func (e *Effect) UnmarshalJSON(data []byte) error {
	var in effectJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.OrbitTrap != nil && in.Physics != nil {
		return fmt.Errorf("effect carries both orbitTrap and physics params")
	}
	switch in.Kind {
	case "orbitTrap":
		if in.OrbitTrap == nil {
			return fmt.Errorf("orbitTrap effect missing params")
		}
		*e = WithOrbitTrap(*in.OrbitTrap)
	case "physics":
		if in.Physics == nil {
			return fmt.Errorf("physics effect missing params")
		}
		*e = WithPhysics(*in.Physics)
	case "none", "":
		*e = NoEffect()
	default:
		return fmt.Errorf("unknown effect kind %q", in.Kind)
	}
	return nil
}
