package types

import "github.com/pkg/errors"

// Cell is the semantic code of a grid square.
type Cell uint8

const (
	Empty Cell = iota
	Wall
	Body
	Head
	Food
)

// Traversable reports whether an agent may move into a cell of this kind.
func (c Cell) Traversable() bool {
	return c == Empty || c == Food
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Body:
		return "body"
	case Head:
		return "head"
	case Food:
		return "food"
	}
	return "unknown"
}

// Grid is a fixed-size board of cell codes stored row-major.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// At returns the cell at p. Anything outside the board reads as Wall.
func (g *Grid) At(p Point) Cell {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[p.Y*g.Width+p.X]
}

// Set writes c at p and reports whether p was on the board.
func (g *Grid) Set(p Point, c Cell) bool {
	if !g.InBounds(p) {
		return false
	}
	g.cells[p.Y*g.Width+p.X] = c
	return true
}

func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{Width: g.Width, Height: g.Height, cells: cells}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Point, c Cell)) {
	for i, c := range g.cells {
		fn(Point{X: i % g.Width, Y: i / g.Width}, c)
	}
}

// Find returns the positions holding c in row-major order.
func (g *Grid) Find(c Cell) []Point {
	var out []Point
	g.Each(func(p Point, cell Cell) {
		if cell == c {
			out = append(out, p)
		}
	})
	return out
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

var glyphs = map[Cell]byte{
	Empty: '.',
	Wall:  '#',
	Body:  'o',
	Head:  'H',
	Food:  '*',
}

// String draws the grid one row per line using the same glyphs ParseGrid reads.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.Width+1)*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			buf = append(buf, glyphs[g.At(Point{X: x, Y: y})])
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// ParseGrid builds a grid from rows of glyphs:
// '.' empty, '#' wall, 'o' body, 'H' head, '*' food.
// All rows must have the same width.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty grid")
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, errors.Errorf("row %d has width %d, want %d", y, len(row), g.Width)
		}
		for x := 0; x < len(row); x++ {
			c, ok := parseGlyph(row[x])
			if !ok {
				return nil, errors.Errorf("row %d col %d: unknown glyph %q", y, x, row[x])
			}
			g.Set(Point{X: x, Y: y}, c)
		}
	}
	return g, nil
}

func parseGlyph(b byte) (Cell, bool) {
	for c, glyph := range glyphs {
		if glyph == b {
			return c, true
		}
	}
	return Empty, false
}
