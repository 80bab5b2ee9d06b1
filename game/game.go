package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"snake-swarm/game/entity"
	"snake-swarm/game/manager"
	"snake-swarm/game/types"
)

var (
	// ErrSimulationOver is returned by Tick once no agent is left.
	ErrSimulationOver = errors.New("simulation over")
	ErrUnknownAgent   = errors.New("no live agent with that id")
)

// AgentView is a copy of one live agent for display and inspection.
type AgentView struct {
	ID        uuid.UUID
	Archetype string
	Color     entity.Color
	Body      []types.Point // Head first
	Direction types.Direction
	Energy    int
	Layers    []string
}

// Game runs the simulation one tick at a time. Tick is the only mutator
// of world state; Turn and SetDirection only buffer input and may be
// called from another goroutine.
type Game struct {
	mu    sync.RWMutex
	state *manager.StateManager
	log   zerolog.Logger
	tick  int
	over  bool
}

// New builds a world from cfg: walls, then explicit agents, then the
// random groups, then the initial food, then a top-up to the food target.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	walls := cfg.Walls
	if walls == nil {
		walls = types.NewGrid(cfg.Width, cfg.Height)
	}
	walls = walls.Clone()

	rng := rand.New(rand.NewSource(cfg.Seed))
	collisionMgr := manager.NewCollisionManager(walls)
	popManager := manager.NewPopulationManager(collisionMgr, cfg.Params, rng)
	foodManager := manager.NewFoodManager(walls, cfg.FoodTarget, cfg.FoodReward, cfg.RespawnPerTick, rng)
	g := &Game{
		state: manager.NewStateManager(walls, collisionMgr, popManager, foodManager),
		log:   cfg.Logger,
	}

	for i, spec := range cfg.Agents {
		s, err := popManager.Spawn(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d", i)
		}
		g.trackSpawn(s)
	}
	for _, food := range cfg.Food {
		if !collisionMgr.ValidateSpawnPosition(food, popManager.GetSnakes()) {
			return nil, errors.Wrapf(manager.ErrBadSpawn, "food at %v", food)
		}
		foodManager.AddFood(food)
	}
	for _, r := range cfg.Random {
		spawned, err := popManager.SpawnRandom(r.Archetype, r.Count, r.Energy, foodManager)
		if err != nil {
			return nil, err
		}
		for _, s := range spawned {
			g.trackSpawn(s)
		}
	}
	if _, err := foodManager.Replenish(popManager.GetSnakes()); err != nil {
		return nil, errors.Wrap(err, "seeding food")
	}

	g.log.Info().
		Int("width", walls.Width).
		Int("height", walls.Height).
		Int("agents", len(popManager.GetSnakes())).
		Int("food", foodManager.Count()).
		Uint64("seed", cfg.Seed).
		Msg("world created")
	return g, nil
}

func (g *Game) trackSpawn(s *entity.Snake) {
	g.state.Track(s, 0)
	g.log.Debug().
		Str("agent", s.ID.String()).
		Str("archetype", s.Archetype).
		Strs("layers", s.Mind.Layers()).
		Stringer("pos", s.GetHead()).
		Stringer("dir", s.Direction).
		Msg("agent spawned")
}

// Tick advances the world by one step: decide against one frozen
// snapshot, move everyone, resolve collisions, feed, respawn food, and
// report the cells that changed.
func (g *Game) Tick() (TickResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return TickResult{Tick: g.tick, Over: true}, ErrSimulationOver
	}
	g.tick++

	walls := g.state.Walls()
	popManager := g.state.GetPopulationManager()
	foodManager := g.state.GetFoodManager()
	snakes := popManager.GetSnakes()

	snapshot := Compose(walls, snakes, foodManager.GetFoodList())
	for _, s := range snakes {
		s.Decide(snapshot.Clone())
	}

	changes := make(changeSet)
	for _, s := range snakes {
		changes.add(s.GetHead())
		if vacated, ok := s.Step(); ok {
			changes.add(vacated)
		}
		changes.add(s.GetHead())
	}

	deaths := g.state.GetCollisionManager().Resolve(snakes)
	for _, d := range deaths {
		changes.add(d.Snake.Body...)
		g.log.Info().
			Int("tick", g.tick).
			Str("agent", d.Snake.ID.String()).
			Str("archetype", d.Snake.Archetype).
			Stringer("cause", d.Cause).
			Stringer("pos", d.Snake.GetHead()).
			Msg("agent died")
	}
	popManager.RemoveDeadSnakes(deaths)

	live := popManager.GetSnakes()
	meals := foodManager.Feed(live)
	for _, m := range meals {
		changes.add(m.Pos)
		g.log.Debug().
			Int("tick", g.tick).
			Str("agent", m.Snake.ID.String()).
			Stringer("pos", m.Pos).
			Msg("food eaten")
	}

	spawned, err := foodManager.Replenish(live)
	changes.add(spawned...)
	g.state.Update(g.tick, meals, deaths)

	result := TickResult{
		Tick:    g.tick,
		Changes: changes.resolve(Compose(walls, live, foodManager.GetFoodList())),
		Deaths:  deaths,
	}
	if err != nil {
		// the moves already happened; hand back the final board with the error
		g.over = true
		result.Over = true
		g.log.Error().Err(err).Int("tick", g.tick).Msg("food exhausted")
		return result, errors.Wrapf(err, "tick %d", g.tick)
	}
	if popManager.IsAllSnakesDead() {
		g.over = true
		result.Over = true
		g.log.Info().Int("tick", g.tick).Int("high_score", g.state.GetHighScore()).Msg("simulation over")
	}
	return result, nil
}

// Snapshot composes the current world.
func (g *Game) Snapshot() *types.Grid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Compose(g.state.Walls(), g.state.GetPopulationManager().GetSnakes(), g.state.GetFoodManager().GetFoodList())
}

// Agents returns a copy of every live agent in spawn order.
func (g *Game) Agents() []AgentView {
	g.mu.RLock()
	defer g.mu.RUnlock()
	snakes := g.state.GetPopulationManager().GetSnakes()
	views := make([]AgentView, 0, len(snakes))
	for _, s := range snakes {
		views = append(views, AgentView{
			ID:        s.ID,
			Archetype: s.Archetype,
			Color:     s.Color,
			Body:      s.Segments(),
			Direction: s.Direction,
			Energy:    s.Energy,
			Layers:    s.Mind.Layers(),
		})
	}
	return views
}

// Player returns the first live agent of the player archetype.
func (g *Game) Player() (uuid.UUID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, s := range g.state.GetPopulationManager().GetSnakes() {
		if s.Archetype == "player" {
			return s.ID, true
		}
	}
	return uuid.Nil, false
}

// Turn buffers a quarter turn for agent id, applied on the next tick
// ahead of every decision layer.
func (g *Game) Turn(id uuid.UUID, side types.Side) error {
	s, err := g.find(id)
	if err != nil {
		return err
	}
	s.Mind.RequestTurn(side)
	return nil
}

// SetDirection buffers an absolute heading for agent id.
func (g *Game) SetDirection(id uuid.UUID, dir types.Direction) error {
	s, err := g.find(id)
	if err != nil {
		return err
	}
	s.Mind.RequestDirection(dir)
	return nil
}

func (g *Game) find(id uuid.UUID) (*entity.Snake, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := g.state.GetPopulationManager().Find(id)
	if s == nil || s.Mind == nil {
		return nil, errors.Wrapf(ErrUnknownAgent, "%s", id)
	}
	return s, nil
}

func (g *Game) Ticks() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tick
}

func (g *Game) Over() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.over
}

func (g *Game) Width() int  { return g.state.Walls().Width }
func (g *Game) Height() int { return g.state.Walls().Height }

// Summary reports per-agent statistics as of the current tick.
func (g *Game) Summary() manager.Summary {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Summary(g.tick)
}

func (g *Game) Records() []manager.Record {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Records()
}
