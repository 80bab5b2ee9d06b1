package manager

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"snake-swarm/game/entity"
	"snake-swarm/game/types"
)

// ErrNoFreeCell means the board cannot hold the requested amount of food.
var ErrNoFreeCell = errors.New("no free cell for food")

type FoodManager struct {
	walls   *types.Grid
	food    map[types.Point]struct{}
	target  int
	reward  int
	perTick int // 0 means fill up to target at once
	rng     *rand.Rand
}

func NewFoodManager(walls *types.Grid, target, reward, perTick int, rng *rand.Rand) *FoodManager {
	return &FoodManager{
		walls:   walls,
		food:    make(map[types.Point]struct{}),
		target:  target,
		reward:  reward,
		perTick: perTick,
		rng:     rng,
	}
}

func (fm *FoodManager) Has(p types.Point) bool {
	_, ok := fm.food[p]
	return ok
}

func (fm *FoodManager) Count() int {
	return len(fm.food)
}

// GetFoodList returns the food positions in row-major order.
func (fm *FoodManager) GetFoodList() []types.Point {
	list := make([]types.Point, 0, len(fm.food))
	for p := range fm.food {
		list = append(list, p)
	}
	slices.SortFunc(list, rowMajor)
	return list
}

func (fm *FoodManager) AddFood(food types.Point) {
	fm.food[food] = struct{}{}
}

func (fm *FoodManager) RemoveFood(food types.Point) {
	delete(fm.food, food)
}

// Meal records one snake eating the food under its head.
type Meal struct {
	Snake *entity.Snake
	Pos   types.Point
}

// Feed lets every snake whose head sits on food eat it, in the order
// of snakes.
func (fm *FoodManager) Feed(snakes []*entity.Snake) []Meal {
	var meals []Meal
	for _, s := range snakes {
		head := s.GetHead()
		if !fm.Has(head) {
			continue
		}
		s.Eat(fm.reward)
		fm.RemoveFood(head)
		meals = append(meals, Meal{Snake: s, Pos: head})
	}
	return meals
}

// Replenish tops the food up towards the target, choosing uniformly
// among cells that are not wall, snake or food. Running out of such
// cells before the target is met returns ErrNoFreeCell along with
// whatever was placed.
func (fm *FoodManager) Replenish(snakes []*entity.Snake) ([]types.Point, error) {
	want := fm.target - len(fm.food)
	if fm.perTick > 0 && want > fm.perTick {
		want = fm.perTick
	}
	if want <= 0 {
		return nil, nil
	}

	free := fm.freeCells(snakes)
	spawned := make([]types.Point, 0, want)
	for len(spawned) < want {
		if len(free) == 0 {
			return spawned, errors.Wrapf(ErrNoFreeCell, "placed %d of %d", len(fm.food), fm.target)
		}
		i := fm.rng.Intn(len(free))
		p := free[i]
		free[i] = free[len(free)-1]
		free = free[:len(free)-1]

		fm.AddFood(p)
		spawned = append(spawned, p)
	}
	return spawned, nil
}

// freeCells lists eligible food cells in row-major order so a seeded
// run always samples from the same sequence.
func (fm *FoodManager) freeCells(snakes []*entity.Snake) []types.Point {
	taken := make(map[types.Point]struct{})
	for _, s := range snakes {
		for _, p := range s.Body {
			taken[p] = struct{}{}
		}
	}
	var free []types.Point
	fm.walls.Each(func(p types.Point, c types.Cell) {
		if c == types.Wall || fm.Has(p) {
			return
		}
		if _, ok := taken[p]; ok {
			return
		}
		free = append(free, p)
	})
	return free
}

func rowMajor(a, b types.Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
