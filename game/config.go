package game

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"snake-swarm/ai"
	"snake-swarm/game/manager"
	"snake-swarm/game/types"
)

// RandomSpec asks for Count single-cell agents of one archetype dropped
// on random free cells.
type RandomSpec struct {
	Archetype string
	Count     int
	Energy    int
}

type Config struct {
	Width, Height int
	Walls         *types.Grid // nil means an open board
	Agents        []manager.AgentSpec
	Random        []RandomSpec // spawned after Agents
	Food          []types.Point

	FoodTarget     int
	FoodReward     int
	RespawnPerTick int // 0 means refill to FoodTarget every tick

	Seed   uint64
	Params ai.Params
	Logger zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Width:      40,
		Height:     30,
		FoodTarget: types.DefaultFoodTarget,
		FoodReward: types.DefaultFoodReward,
		Params:     ai.DefaultParams(),
		Logger:     zerolog.Nop(),
	}
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.Width <= 0 || c.Height <= 0 {
		result = multierror.Append(result, errors.Errorf("grid size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Walls != nil && (c.Walls.Width != c.Width || c.Walls.Height != c.Height) {
		result = multierror.Append(result, errors.Errorf("wall mask is %dx%d, grid is %dx%d",
			c.Walls.Width, c.Walls.Height, c.Width, c.Height))
	}
	if c.FoodTarget < 0 {
		result = multierror.Append(result, errors.Errorf("food target %d is negative", c.FoodTarget))
	}
	if c.FoodReward < 0 {
		result = multierror.Append(result, errors.Errorf("food reward %d is negative", c.FoodReward))
	}
	if c.RespawnPerTick < 0 {
		result = multierror.Append(result, errors.Errorf("respawn rate %d is negative", c.RespawnPerTick))
	}
	if c.Params.Confusion < 0 || c.Params.Confusion > 1 {
		result = multierror.Append(result, errors.Errorf("confusion %v is not a probability", c.Params.Confusion))
	}
	if c.Params.AvoidTurns < 0 || c.Params.SafetyDepth < 0 {
		result = multierror.Append(result, errors.New("avoid turns and safety depth must not be negative"))
	}
	for i, a := range c.Agents {
		if a.Energy < 0 {
			result = multierror.Append(result, errors.Errorf("agent %d: energy %d is negative", i, a.Energy))
		}
		if a.Layers == nil && a.Archetype != "" {
			if _, err := ai.Archetype(a.Archetype); err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "agent %d", i))
			}
		}
	}
	for i, r := range c.Random {
		if r.Count < 0 || r.Energy < 0 {
			result = multierror.Append(result, errors.Errorf("random group %d: count and energy must not be negative", i))
		}
		if r.Archetype == "" {
			continue
		}
		if _, err := ai.Archetype(r.Archetype); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "random group %d", i))
		}
	}
	for _, p := range c.Food {
		if p.X < 0 || p.Y < 0 || p.X >= c.Width || p.Y >= c.Height {
			result = multierror.Append(result, errors.Errorf("food %v is off the board", p))
		} else if c.Walls != nil && c.Walls.At(p) == types.Wall {
			result = multierror.Append(result, errors.Errorf("food %v is on a wall", p))
		}
	}
	return result.ErrorOrNil()
}
