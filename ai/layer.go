package ai

import (
	"golang.org/x/exp/rand"

	"snake-swarm/game/types"
)

// Context is what a layer may look at while deciding. Grid is the frozen
// snapshot of the tick and must not be written to.
type Context struct {
	Grid *types.Grid
	Head types.Point
	Rand *rand.Rand
	Pref *Preference
}

// Layer is one strategy in a decision chain. It receives the candidate
// direction produced so far and returns it unchanged or turned.
type Layer interface {
	Name() string
	Apply(ctx *Context, dir types.Direction) types.Direction
}

// Preference is the alternating side used when dodging obstacles.
type Preference struct {
	Next types.Side
	Last types.Side
}

func NewPreference() Preference {
	return Preference{Next: types.TurnLeft, Last: types.TurnRight}
}

func (p *Preference) Swap() {
	p.Next, p.Last = p.Last, p.Next
}

// steer rotates dir onto want using quarter turns only.
func steer(dir, want types.Direction) types.Direction {
	switch want {
	case dir:
		return dir
	case dir.Turn(types.TurnLeft):
		return dir.Turn(types.TurnLeft)
	case dir.Turn(types.TurnRight):
		return dir.Turn(types.TurnRight)
	}
	return dir.Turn(types.TurnRight).Turn(types.TurnRight)
}
