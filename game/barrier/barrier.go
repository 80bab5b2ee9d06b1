// Package barrier builds the wall masks a session starts with.
package barrier

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"snake-swarm/game/types"
)

var ErrUnknownMap = errors.New("unknown map")

// Generator builds a wall mask of the given size.
type Generator func(width, height int, rng *rand.Rand) *types.Grid

var generators = map[string]Generator{
	"open":       func(w, h int, _ *rand.Rand) *types.Grid { return types.NewGrid(w, h) },
	"borders":    func(w, h int, _ *rand.Rand) *types.Grid { return Borders(w, h) },
	"four_rooms": func(w, h int, _ *rand.Rand) *types.Grid { return FourRooms(w, h) },
	"random":     func(w, h int, rng *rand.Rand) *types.Grid { return Random(w, h, DefaultDensity, rng) },
}

// Names lists the known maps, sorted.
func Names() []string {
	names := maps.Keys(generators)
	slices.Sort(names)
	return names
}

// Build returns the named wall mask.
func Build(name string, width, height int, rng *rand.Rand) (*types.Grid, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMap, "%q", name)
	}
	return gen(width, height, rng), nil
}

// Borders walls off the outer ring.
func Borders(width, height int) *types.Grid {
	g := types.NewGrid(width, height)
	border(g)
	return g
}

// FourRooms is Borders split by a cross, with a door in every arm.
func FourRooms(width, height int) *types.Grid {
	g := Borders(width, height)
	midX, midY := width/2, height/2
	for y := 0; y < height; y++ {
		g.Set(types.Point{X: midX, Y: y}, types.Wall)
	}
	for x := 0; x < width; x++ {
		g.Set(types.Point{X: x, Y: midY}, types.Wall)
	}

	doors := []types.Point{
		{X: midX, Y: midY / 2},
		{X: midX, Y: midY + (height-midY)/2},
		{X: midX / 2, Y: midY},
		{X: midX + (width-midX)/2, Y: midY},
	}
	for _, d := range doors {
		if d.X > 0 && d.Y > 0 && d.X < width-1 && d.Y < height-1 {
			g.Set(d, types.Empty)
		}
	}
	return g
}

// DefaultDensity is the share of interior cells Random turns into wall.
const DefaultDensity = 0.05

const maxSegment = 5

// Random is Borders plus straight wall segments dropped at random until
// about density of the interior is covered.
func Random(width, height int, density float64, rng *rand.Rand) *types.Grid {
	g := Borders(width, height)
	interior := (width - 2) * (height - 2)
	if interior <= 0 || density <= 0 {
		return g
	}
	want := int(float64(interior) * density)

	placed := 0
	for tries := 0; placed < want && tries < interior*4; tries++ {
		p := types.Point{X: 1 + rng.Intn(width-2), Y: 1 + rng.Intn(height-2)}
		dir := types.Directions[rng.Intn(len(types.Directions))]
		length := 1 + rng.Intn(maxSegment)
		for i := 0; i < length && placed < want; i++ {
			if p.X < 1 || p.Y < 1 || p.X > width-2 || p.Y > height-2 {
				break
			}
			if g.At(p) != types.Wall {
				g.Set(p, types.Wall)
				placed++
			}
			p = p.Add(dir)
		}
	}
	return g
}

func border(g *types.Grid) {
	for x := 0; x < g.Width; x++ {
		g.Set(types.Point{X: x, Y: 0}, types.Wall)
		g.Set(types.Point{X: x, Y: g.Height - 1}, types.Wall)
	}
	for y := 0; y < g.Height; y++ {
		g.Set(types.Point{X: 0, Y: y}, types.Wall)
		g.Set(types.Point{X: g.Width - 1, Y: y}, types.Wall)
	}
}
