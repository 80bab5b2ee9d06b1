package ai

import (
	"golang.org/x/exp/slices"

	"snake-swarm/game/search"
	"snake-swarm/game/types"
)

// Layer defaults
const (
	DefaultConfusion  = 0.1 // Chance per tick that Wander turns
	DefaultAvoidTurns = 4   // Turns Avoid tries before giving up
)

// Wander turns left or right at random with probability P each tick.
type Wander struct {
	P float64
}

func (w Wander) Name() string { return "wander" }

func (w Wander) Apply(ctx *Context, dir types.Direction) types.Direction {
	if ctx.Rand.Float64() >= w.P {
		return dir
	}
	if ctx.Rand.Intn(2) == 0 {
		return dir.Turn(types.TurnLeft)
	}
	return dir.Turn(types.TurnRight)
}

// Avoid looks one cell ahead and, while it is blocked, keeps turning
// towards the preferred side, up to MaxTurns times. A dodge that took
// exactly one turn flips the preference so the agent does not keep
// curling the same way into a spiral.
type Avoid struct {
	MaxTurns int
}

func (a Avoid) Name() string { return "avoid" }

func (a Avoid) Apply(ctx *Context, dir types.Direction) types.Direction {
	return a.dodge(ctx, dir, 0)
}

func (a Avoid) dodge(ctx *Context, dir types.Direction, turns int) types.Direction {
	if turns >= a.MaxTurns || ctx.Grid.At(ctx.Head.Add(dir)).Traversable() {
		if turns == 1 {
			ctx.Pref.Swap()
		}
		return dir
	}
	return a.dodge(ctx, dir.Turn(ctx.Pref.Next), turns+1)
}

// Greedy heads for the food closest by Manhattan distance, ignoring
// anything in the way.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Apply(ctx *Context, dir types.Direction) types.Direction {
	foods := ctx.Grid.Find(types.Food)
	if len(foods) == 0 {
		return dir
	}
	target := foods[0]
	for _, f := range foods[1:] {
		if types.Manhattan(ctx.Head, f) < types.Manhattan(ctx.Head, target) {
			target = f
		}
	}
	delta := types.Sign(ctx.Head, target)

	for tries := 0; tries < 4; tries++ {
		if dir.Dot(delta) == 1 {
			if tries == 1 {
				// we just turned the preferred way, keep Avoid alternating
				ctx.Pref.Swap()
			}
			break
		}
		dir = dir.Turn(ctx.Pref.Next)
	}
	return dir
}

// Seek follows the shortest path to the nearest reachable food.
type Seek struct{}

func (Seek) Name() string { return "seek" }

func (Seek) Apply(ctx *Context, dir types.Direction) types.Direction {
	path := search.PathToFood(ctx.Head, ctx.Grid)
	if len(path) < 2 {
		return dir
	}
	want, ok := types.DirectionBetween(ctx.Head, path[1])
	if !ok {
		return dir
	}
	return steer(dir, want)
}

// Survive vetoes a direction that cannot be followed for Depth more
// steps. When nothing survives that long the horizon shrinks one step
// at a time; at zero with no candidate the direction is left alone.
type Survive struct {
	Depth int
}

func (s Survive) Name() string { return "survive" }

func (s Survive) Apply(ctx *Context, dir types.Direction) types.Direction {
	for limit := s.Depth; limit >= 0; limit-- {
		safe := search.SafeFirstSteps(ctx.Head, ctx.Grid, limit)
		if len(safe) == 0 {
			continue
		}
		if slices.Contains(safe, ctx.Head.Add(dir)) {
			return dir
		}
		pick := safe[ctx.Rand.Intn(len(safe))]
		want, _ := types.DirectionBetween(ctx.Head, pick)
		return steer(dir, want)
	}
	return dir
}
