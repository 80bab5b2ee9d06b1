package types

import "fmt"

// Point is a grid coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

func (p Point) Add(d Direction) Point {
	v := d.Vector()
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Neighbors returns the four cardinal neighbours of p in a fixed
// order: Right, Down, Left, Up.
func (p Point) Neighbors() [4]Point {
	return [4]Point{
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Manhattan returns the 4-connected distance between two points.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

// Sign returns the component-wise sign of b - a.
func Sign(a, b Point) Point {
	return Point{X: sign(b.X - a.X), Y: sign(b.Y - a.Y)}
}

// Game constants
const (
	DefaultFoodReward  = 10 // Energy gained per food eaten
	DefaultFoodTarget  = 10 // Food kept on the board
	DefaultAgentLength = 5  // Initial energy of a spawned agent
	DefaultSafetyDepth = 25 // Survival lookahead before degradation
)
