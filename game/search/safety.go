package search

import "snake-swarm/game/types"

// SafeFirstSteps returns the traversable neighbours of start from which
// some simple path of Empty/Food cells reaches depthLimit steps (the
// neighbour itself being step 1). The result keeps the Right, Down,
// Left, Up neighbour order and is empty when start is cornered.
//
// Recursion depth never exceeds depthLimit, which is clamped to the
// number of cells on the board since no simple path can be longer.
func SafeFirstSteps(start types.Point, grid *types.Grid, depthLimit int) []types.Point {
	if depthLimit < 0 {
		depthLimit = 0
	}
	if cells := grid.Width * grid.Height; depthLimit > cells {
		depthLimit = cells
	}

	pr := &lookahead{
		grid:    grid,
		limit:   depthLimit,
		visited: make([]bool, grid.Width*grid.Height),
	}
	if grid.InBounds(start) {
		pr.visited[pr.index(start)] = true
	}

	var safe []types.Point
	for _, n := range start.Neighbors() {
		if !grid.At(n).Traversable() {
			continue
		}
		// a pocket with fewer cells than the horizon can never satisfy it
		if pr.regionSize(n, depthLimit) < depthLimit {
			continue
		}
		if pr.survives(n, 1) {
			safe = append(safe, n)
		}
	}
	return safe
}

// lookahead carries the path-local visited set of one SafeFirstSteps call.
type lookahead struct {
	grid    *types.Grid
	limit   int
	visited []bool
}

func (pr *lookahead) index(p types.Point) int {
	return p.Y*pr.grid.Width + p.X
}

// survives reports whether a simple path entering p at depth can be
// extended to the limit. p is marked visited for the duration of the
// descent and released on backtrack so sibling branches may reuse it.
func (pr *lookahead) survives(p types.Point, depth int) bool {
	if depth >= pr.limit {
		return true
	}
	i := pr.index(p)
	pr.visited[i] = true
	defer func() { pr.visited[i] = false }()

	for _, n := range p.Neighbors() {
		if !pr.grid.At(n).Traversable() || pr.visited[pr.index(n)] {
			continue
		}
		if pr.survives(n, depth+1) {
			return true
		}
	}
	return false
}

// regionSize counts the traversable cells reachable from p without
// crossing a visited cell, stopping early once it reaches enough.
func (pr *lookahead) regionSize(p types.Point, enough int) int {
	seen := make(map[types.Point]struct{}, enough)
	seen[p] = struct{}{}
	queue := []types.Point{p}
	for head := 0; head < len(queue) && len(seen) < enough; head++ {
		for _, n := range queue[head].Neighbors() {
			if !pr.grid.At(n).Traversable() || pr.visited[pr.index(n)] {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return len(seen)
}
