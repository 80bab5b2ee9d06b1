package game

import "snake-swarm/game/types"

// Board is a renderer-side copy of the world kept current by applying
// each tick's change-set, so a display never has to recompose the grid.
type Board struct {
	grid  *types.Grid
	dirty []types.Point
}

// NewBoard starts from the current snapshot of g.
func NewBoard(g *Game) *Board {
	return &Board{grid: g.Snapshot()}
}

// Apply patches the board with one tick's changes.
func (b *Board) Apply(res TickResult) {
	for _, c := range res.Changes {
		if b.grid.Set(c.Pos, c.Cell) {
			b.dirty = append(b.dirty, c.Pos)
		}
	}
}

// Dirty returns the cells patched since the last call and forgets them.
func (b *Board) Dirty() []types.Point {
	d := b.dirty
	b.dirty = nil
	return d
}

func (b *Board) At(p types.Point) types.Cell {
	return b.grid.At(p)
}

func (b *Board) Width() int  { return b.grid.Width }
func (b *Board) Height() int { return b.grid.Height }

func (b *Board) String() string {
	return b.grid.String()
}
