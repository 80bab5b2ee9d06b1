package game

import (
	"golang.org/x/exp/slices"

	"snake-swarm/game/manager"
	"snake-swarm/game/types"
)

// Change tells a renderer what a cell holds after a tick.
type Change struct {
	Pos  types.Point
	Cell types.Cell
}

// TickResult is everything one tick hands to the outside world.
type TickResult struct {
	Tick    int
	Changes []Change
	Deaths  []manager.Death
	Over    bool // no agent is alive any more
}

// changeSet collects positions touched during a tick.
type changeSet map[types.Point]struct{}

func (cs changeSet) add(points ...types.Point) {
	for _, p := range points {
		cs[p] = struct{}{}
	}
}

// resolve reads the final code of every touched on-board cell from grid,
// in row-major order.
func (cs changeSet) resolve(grid *types.Grid) []Change {
	changes := make([]Change, 0, len(cs))
	for p := range cs {
		if !grid.InBounds(p) {
			continue
		}
		changes = append(changes, Change{Pos: p, Cell: grid.At(p)})
	}
	slices.SortFunc(changes, func(a, b Change) int {
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y - b.Pos.Y
		}
		return a.Pos.X - b.Pos.X
	})
	return changes
}
