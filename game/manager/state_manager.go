package manager

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"snake-swarm/game/entity"
	"snake-swarm/game/types"
)

// Record is the life story of one snake.
type Record struct {
	ID         uuid.UUID
	Archetype  string
	Born       int
	Died       int // Tick of death, -1 while alive
	Cause      Cause
	Eaten      int
	PeakLength int
}

func (r Record) Alive() bool {
	return r.Died < 0
}

// Lifetime is the number of ticks the snake has lived through so far.
func (r Record) Lifetime(now int) int {
	if r.Alive() {
		return now - r.Born
	}
	return r.Died - r.Born
}

type Summary struct {
	Agents       int
	Alive        int
	Deaths       map[Cause]int
	MeanLifetime float64
	StdLifetime  float64
	MeanEaten    float64
	PeakLength   float64
}

// StateManager is the world aggregate: the wall mask plus the managers
// that own snakes and food, and a record per snake ever spawned.
type StateManager struct {
	walls        *types.Grid
	collisionMgr *CollisionManager
	popManager   *PopulationManager
	foodManager  *FoodManager
	records      map[uuid.UUID]*Record
	order        []uuid.UUID
}

func NewStateManager(walls *types.Grid, collisionMgr *CollisionManager, popManager *PopulationManager, foodManager *FoodManager) *StateManager {
	return &StateManager{
		walls:        walls,
		collisionMgr: collisionMgr,
		popManager:   popManager,
		foodManager:  foodManager,
		records:      make(map[uuid.UUID]*Record),
	}
}

func (sm *StateManager) Walls() *types.Grid {
	return sm.walls
}

func (sm *StateManager) GetCollisionManager() *CollisionManager {
	return sm.collisionMgr
}

func (sm *StateManager) GetPopulationManager() *PopulationManager {
	return sm.popManager
}

func (sm *StateManager) GetFoodManager() *FoodManager {
	return sm.foodManager
}

// Track starts a record for a snake born at tick.
func (sm *StateManager) Track(s *entity.Snake, tick int) {
	if _, ok := sm.records[s.ID]; ok {
		return
	}
	sm.records[s.ID] = &Record{
		ID:         s.ID,
		Archetype:  s.Archetype,
		Born:       tick,
		Died:       -1,
		PeakLength: s.Len(),
	}
	sm.order = append(sm.order, s.ID)
}

// Update folds one finished tick into the records.
func (sm *StateManager) Update(tick int, meals []Meal, deaths []Death) {
	for _, m := range meals {
		if r, ok := sm.records[m.Snake.ID]; ok {
			r.Eaten++
		}
	}
	for _, d := range deaths {
		if r, ok := sm.records[d.Snake.ID]; ok {
			r.Died = tick
			r.Cause = d.Cause
		}
	}
	for _, s := range sm.popManager.GetSnakes() {
		if r, ok := sm.records[s.ID]; ok && s.Len() > r.PeakLength {
			r.PeakLength = s.Len()
		}
	}
}

// Records returns a copy of every record in spawn order.
func (sm *StateManager) Records() []Record {
	out := make([]Record, 0, len(sm.order))
	for _, id := range sm.order {
		out = append(out, *sm.records[id])
	}
	return out
}

func (sm *StateManager) GetHighScore() int {
	best := 0
	for _, r := range sm.records {
		if r.PeakLength > best {
			best = r.PeakLength
		}
	}
	return best
}

// Summary aggregates the records as of tick now.
func (sm *StateManager) Summary(now int) Summary {
	sum := Summary{Deaths: make(map[Cause]int)}
	if len(sm.order) == 0 {
		return sum
	}

	lifetimes := make([]float64, 0, len(sm.order))
	eaten := make([]float64, 0, len(sm.order))
	peaks := make([]float64, 0, len(sm.order))
	for _, r := range sm.Records() {
		sum.Agents++
		if r.Alive() {
			sum.Alive++
		} else {
			sum.Deaths[r.Cause]++
		}
		lifetimes = append(lifetimes, float64(r.Lifetime(now)))
		eaten = append(eaten, float64(r.Eaten))
		peaks = append(peaks, float64(r.PeakLength))
	}

	sum.MeanLifetime, sum.StdLifetime = stat.MeanStdDev(lifetimes, nil)
	if len(lifetimes) < 2 {
		// sample deviation is undefined for one record
		sum.StdLifetime = 0
	}
	sum.MeanEaten = stat.Mean(eaten, nil)
	sum.PeakLength = floats.Max(peaks)
	return sum
}
