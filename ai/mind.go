package ai

import (
	"sync"

	"golang.org/x/exp/rand"

	"snake-swarm/game/types"
)

// Mind is the per-agent decision state: the ordered layer chain, the
// dodge preference it carries between ticks, a private random source,
// and any player request buffered since the last decision.
type Mind struct {
	layers []Layer
	pref   Preference
	rng    *rand.Rand

	mu      sync.Mutex
	pending request
}

// request accumulates player input between ticks. A set direction
// replaces whatever came before it; turns stack on top as net right turns.
type request struct {
	active bool
	set    bool
	dir    types.Direction
	turns  int
}

func NewMind(seed uint64, layers ...Layer) *Mind {
	return &Mind{
		layers: layers,
		pref:   NewPreference(),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Layers returns the names of the chain in application order.
func (m *Mind) Layers() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.layers))
	for i, l := range m.layers {
		names[i] = l.Name()
	}
	return names
}

// RequestTurn buffers a quarter turn for the next decision.
// Safe to call from an input goroutine.
func (m *Mind) RequestTurn(side types.Side) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending.active = true
	if side == types.TurnRight {
		m.pending.turns = (m.pending.turns + 1) % 4
	} else {
		m.pending.turns = (m.pending.turns + 3) % 4
	}
}

// RequestDirection buffers an absolute heading for the next decision.
func (m *Mind) RequestDirection(dir types.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = request{active: true, set: true, dir: dir}
}

func (m *Mind) takeRequest(dir types.Direction) types.Direction {
	m.mu.Lock()
	req := m.pending
	m.pending = request{}
	m.mu.Unlock()

	if !req.active {
		return dir
	}
	if req.set {
		dir = req.dir
	}
	for i := 0; i < req.turns; i++ {
		dir = dir.Turn(types.TurnRight)
	}
	return dir
}

// Decide runs the chain against the frozen grid and returns the new
// heading. A buffered player request becomes the starting candidate,
// ahead of every layer.
func (m *Mind) Decide(grid *types.Grid, head types.Point, dir types.Direction) types.Direction {
	dir = m.takeRequest(dir)
	ctx := &Context{
		Grid: grid,
		Head: head,
		Rand: m.rng,
		Pref: &m.pref,
	}
	for _, l := range m.layers {
		dir = l.Apply(ctx, dir)
	}
	return dir
}
