package manager

import (
	"snake-swarm/game/entity"
	"snake-swarm/game/types"
)

// Cause says why a snake died.
type Cause int

const (
	HeadToHead Cause = iota
	WallCollision
	BodyCollision
)

func (c Cause) String() string {
	switch c {
	case HeadToHead:
		return "head-to-head"
	case WallCollision:
		return "wall"
	case BodyCollision:
		return "body"
	}
	return "unknown"
}

type Death struct {
	Snake *entity.Snake
	Cause Cause
}

type CollisionManager struct {
	walls *types.Grid
}

// NewCollisionManager takes the session's wall mask. It is only read.
func NewCollisionManager(walls *types.Grid) *CollisionManager {
	return &CollisionManager{
		walls: walls,
	}
}

// isWallCollision treats everything off the board as wall.
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return cm.walls.At(pos) == types.Wall
}

// Resolve decides who dies after every snake has stepped. Heads that
// share a cell all die. The rest die on a wall or on the body of any
// snake that survived the head-to-head pass, using bodies as they are
// after the step, so a tail that just moved away no longer blocks.
// Deaths come back in the order of snakes.
func (cm *CollisionManager) Resolve(snakes []*entity.Snake) []Death {
	heads := make(map[types.Point]int, len(snakes))
	for _, s := range snakes {
		heads[s.GetHead()]++
	}

	dead := make(map[*entity.Snake]Cause)
	for _, s := range snakes {
		if heads[s.GetHead()] > 1 {
			dead[s] = HeadToHead
		}
	}

	bodies := make(map[types.Point]struct{})
	for _, s := range snakes {
		if _, gone := dead[s]; gone {
			continue
		}
		for _, p := range s.Tail() {
			bodies[p] = struct{}{}
		}
	}

	for _, s := range snakes {
		if _, gone := dead[s]; gone {
			continue
		}
		head := s.GetHead()
		if cm.isWallCollision(head) {
			dead[s] = WallCollision
		} else if _, hit := bodies[head]; hit {
			dead[s] = BodyCollision
		}
	}

	var deaths []Death
	for _, s := range snakes {
		if cause, ok := dead[s]; ok {
			deaths = append(deaths, Death{Snake: s, Cause: cause})
		}
	}
	return deaths
}

// ValidateSpawnPosition checks that pos is on the board, not a wall and
// not covered by any live snake.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snakes []*entity.Snake) bool {
	if !cm.walls.InBounds(pos) || cm.isWallCollision(pos) {
		return false
	}
	for _, snake := range snakes {
		for _, bodyPart := range snake.Body {
			if pos == bodyPart {
				return false
			}
		}
	}
	return true
}
