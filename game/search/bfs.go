// Package search holds the grid searches the decision layers build on.
// Every function here is pure: it reads the grid it is given and owns
// all of its scratch state.
package search

import "snake-swarm/game/types"

// PathToFood runs a breadth-first search from start and returns the
// shortest path to the nearest Food cell, start included as the first
// element. Only Empty and Food cells are entered; start itself may be
// any cell. Neighbours are expanded Right, Down, Left, Up, so among
// equidistant foods the first one reached in that order wins.
// It returns nil when no food is reachable.
func PathToFood(start types.Point, grid *types.Grid) []types.Point {
	if !grid.InBounds(start) {
		return nil
	}

	idx := func(p types.Point) int { return p.Y*grid.Width + p.X }

	// parent[i] is the flat index we came from, -1 for unvisited
	parent := make([]int, grid.Width*grid.Height)
	for i := range parent {
		parent[i] = -1
	}
	parent[idx(start)] = idx(start)

	queue := []types.Point{start}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if grid.At(cur) == types.Food {
			return unwind(parent, idx(cur), grid.Width)
		}
		for _, n := range cur.Neighbors() {
			if !grid.At(n).Traversable() {
				continue
			}
			i := idx(n)
			if parent[i] != -1 {
				continue
			}
			parent[i] = idx(cur)
			queue = append(queue, n)
		}
	}
	return nil
}

// unwind rebuilds the path ending at flat index end by following parent links.
func unwind(parent []int, end, width int) []types.Point {
	var rev []types.Point
	for i := end; ; i = parent[i] {
		rev = append(rev, types.Point{X: i % width, Y: i / width})
		if parent[i] == i {
			break
		}
	}
	path := make([]types.Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
