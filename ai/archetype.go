package ai

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"snake-swarm/game/types"
)

var ErrUnknownArchetype = errors.New("unknown archetype")

// Params tunes the layers an archetype is built from.
type Params struct {
	Confusion   float64
	AvoidTurns  int
	SafetyDepth int
}

func DefaultParams() Params {
	return Params{
		Confusion:   DefaultConfusion,
		AvoidTurns:  DefaultAvoidTurns,
		SafetyDepth: types.DefaultSafetyDepth,
	}
}

// archetypes lists each agent kind as its layer chain, in increasing
// precedence: wander, avoid, greedy, seek, survive.
var archetypes = map[string]func(p Params) []Layer{
	"straight": func(p Params) []Layer { return nil },
	"player":   func(p Params) []Layer { return nil },
	"confused": func(p Params) []Layer { return []Layer{Wander{P: p.Confusion}} },
	"safe":     func(p Params) []Layer { return []Layer{Avoid{MaxTurns: p.AvoidTurns}} },
	"notstupid": func(p Params) []Layer {
		return []Layer{Wander{P: p.Confusion}, Avoid{MaxTurns: p.AvoidTurns}}
	},
	"greedy": func(p Params) []Layer {
		return []Layer{Avoid{MaxTurns: p.AvoidTurns}, Greedy{}, Survive{Depth: p.SafetyDepth}}
	},
	"seeker": func(p Params) []Layer { return []Layer{Seek{}} },
	"survivor": func(p Params) []Layer {
		return []Layer{
			Wander{P: p.Confusion},
			Avoid{MaxTurns: p.AvoidTurns},
			Seek{},
			Survive{Depth: p.SafetyDepth},
		}
	},
}

// Build returns a fresh layer chain for the named archetype.
func Build(name string, p Params) ([]Layer, error) {
	build, ok := archetypes[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownArchetype, "%q", name)
	}
	return build(p), nil
}

// Archetype is Build with DefaultParams.
func Archetype(name string) ([]Layer, error) {
	return Build(name, DefaultParams())
}

// Archetypes returns every known archetype name, sorted.
func Archetypes() []string {
	names := maps.Keys(archetypes)
	slices.Sort(names)
	return names
}
