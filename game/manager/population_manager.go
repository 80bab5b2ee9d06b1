package manager

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"snake-swarm/ai"
	"snake-swarm/game/entity"
	"snake-swarm/game/types"
)

var ErrBadSpawn = errors.New("invalid spawn position")

// AgentSpec describes one snake to place at the start of a session.
type AgentSpec struct {
	Start     types.Point
	Direction types.Direction
	Length    int // Cells laid out behind Start, at least 1
	Energy    int
	Archetype string
	Layers    []ai.Layer // Used instead of Archetype when set
	Color     *entity.Color
}

// PopulationManager owns the live and dead sets. Snakes keep their
// spawn order in both so every pass over them is reproducible.
type PopulationManager struct {
	collisionMgr *CollisionManager
	params       ai.Params
	rng          *rand.Rand
	live         []*entity.Snake
	dead         []*entity.Snake
}

func NewPopulationManager(collisionMgr *CollisionManager, params ai.Params, rng *rand.Rand) *PopulationManager {
	return &PopulationManager{
		collisionMgr: collisionMgr,
		params:       params,
		rng:          rng,
	}
}

// Spawn places a snake from spec. Every body cell must be free.
func (pm *PopulationManager) Spawn(spec AgentSpec) (*entity.Snake, error) {
	if spec.Archetype == "" {
		spec.Archetype = "straight"
	}
	layers := spec.Layers
	if layers == nil {
		var err error
		if layers, err = ai.Build(spec.Archetype, pm.params); err != nil {
			return nil, err
		}
	}
	color := generateRandomColor(pm.rng)
	if spec.Color != nil {
		color = *spec.Color
	}

	mind := ai.NewMind(pm.rng.Uint64(), layers...)
	snake := entity.NewSnake(spec.Start, spec.Direction, spec.Length, spec.Energy, mind, color)
	snake.Archetype = spec.Archetype

	for _, p := range snake.Body {
		if !pm.collisionMgr.ValidateSpawnPosition(p, pm.live) {
			return nil, errors.Wrapf(ErrBadSpawn, "%s snake at %v: cell %v", spec.Archetype, spec.Start, p)
		}
	}
	pm.AddSnake(snake)
	return snake, nil
}

// SpawnRandom drops count single-cell snakes of one archetype on random
// free cells (not wall, snake or food) facing random directions.
func (pm *PopulationManager) SpawnRandom(archetype string, count, energy int, food *FoodManager) ([]*entity.Snake, error) {
	spawned := make([]*entity.Snake, 0, count)
	for i := 0; i < count; i++ {
		free := food.freeCells(pm.live)
		if len(free) == 0 {
			return spawned, errors.Wrapf(ErrNoFreeCell, "spawning %s snake %d of %d", archetype, i+1, count)
		}
		snake, err := pm.Spawn(AgentSpec{
			Start:     free[pm.rng.Intn(len(free))],
			Direction: types.Directions[pm.rng.Intn(len(types.Directions))],
			Length:    1,
			Energy:    energy,
			Archetype: archetype,
		})
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, snake)
	}
	return spawned, nil
}

func (pm *PopulationManager) AddSnake(snake *entity.Snake) {
	pm.live = append(pm.live, snake)
}

// GetSnakes returns the live snakes in spawn order.
func (pm *PopulationManager) GetSnakes() []*entity.Snake {
	return pm.live
}

func (pm *PopulationManager) GetDead() []*entity.Snake {
	return pm.dead
}

func (pm *PopulationManager) Find(id uuid.UUID) *entity.Snake {
	for _, s := range pm.live {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (pm *PopulationManager) IsAllSnakesDead() bool {
	return len(pm.live) == 0
}

// RemoveDeadSnakes moves the given snakes from the live set to the dead one.
func (pm *PopulationManager) RemoveDeadSnakes(deaths []Death) {
	if len(deaths) == 0 {
		return
	}
	gone := make(map[*entity.Snake]struct{}, len(deaths))
	for _, d := range deaths {
		gone[d.Snake] = struct{}{}
	}
	live := pm.live[:0]
	for _, s := range pm.live {
		if _, ok := gone[s]; ok {
			pm.dead = append(pm.dead, s)
			continue
		}
		live = append(live, s)
	}
	pm.live = live
}

func generateRandomColor(rng *rand.Rand) entity.Color {
	return entity.Color{
		R: uint8(rng.Intn(200) + 55),
		G: uint8(rng.Intn(200) + 55),
		B: uint8(rng.Intn(200) + 55),
	}
}
