package types

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Direction is one of the four cardinal unit moves.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in clockwise order starting at Up.
var Directions = [4]Direction{Up, Right, Down, Left}

// Side selects a 90 degree rotation.
type Side int

const (
	TurnLeft Side = iota
	TurnRight
)

func (s Side) Flip() Side {
	if s == TurnLeft {
		return TurnRight
	}
	return TurnLeft
}

func (s Side) String() string {
	if s == TurnLeft {
		return "left"
	}
	return "right"
}

// Vector returns the unit step of d. Y grows downwards, so Up is (0,-1).
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	default:
		return Point{X: -1, Y: 0}
	}
}

// Turn rotates d by 90 degrees towards side.
func (d Direction) Turn(side Side) Direction {
	if side == TurnRight {
		return (d + 1) % 4
	}
	return (d + 3) % 4
}

func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Dot returns the scalar product of d's unit vector with v.
func (d Direction) Dot(v Point) int {
	u := d.Vector()
	return u.X*v.X + u.Y*v.Y
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// DirectionBetween returns the direction of the unit step from a to b.
// ok is false when b is not a cardinal neighbour of a.
func DirectionBetween(a, b Point) (Direction, bool) {
	for _, d := range Directions {
		if a.Add(d) == b {
			return d, true
		}
	}
	return Up, false
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	}
	return Up, errors.Errorf("unknown direction %q", s)
}
