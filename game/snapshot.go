package game

import (
	"snake-swarm/game/entity"
	"snake-swarm/game/types"
)

// Compose builds a fresh grid for one tick. Later writes win: walls, then
// every body segment, then every head, then food. A head drawn over a
// body is left that way so the collision shows up in the snapshot; it is
// resolved by the tick, not here. Positions off the board are dropped.
func Compose(walls *types.Grid, snakes []*entity.Snake, food []types.Point) *types.Grid {
	grid := walls.Clone()
	for _, s := range snakes {
		for _, p := range s.Tail() {
			grid.Set(p, types.Body)
		}
	}
	for _, s := range snakes {
		grid.Set(s.GetHead(), types.Head)
	}
	for _, p := range food {
		grid.Set(p, types.Food)
	}
	return grid
}
