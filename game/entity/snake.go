package entity

import (
	"github.com/google/uuid"

	"snake-swarm/ai"
	"snake-swarm/game/types"
)

type Color struct {
	R, G, B uint8
}

// Snake is one agent. Body is stored tail first, so the head is the last
// element and stepping is an append plus an optional reslice.
type Snake struct {
	ID        uuid.UUID
	Archetype string
	Body      []types.Point
	Direction types.Direction
	Energy    int // Segments still to grow
	Color     Color
	Mind      *ai.Mind
}

// NewSnake lays out a body of length cells ending at head, trailing
// away from dir.
func NewSnake(head types.Point, dir types.Direction, length, energy int, mind *ai.Mind, color Color) *Snake {
	if length < 1 {
		length = 1
	}
	body := make([]types.Point, length)
	back := dir.Opposite()
	p := head
	for i := length - 1; i >= 0; i-- {
		body[i] = p
		p = p.Add(back)
	}
	return &Snake{
		ID:        uuid.New(),
		Body:      body,
		Direction: dir,
		Energy:    energy,
		Color:     color,
		Mind:      mind,
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[len(s.Body)-1]
}

// Tail returns every segment except the head.
func (s *Snake) Tail() []types.Point {
	return s.Body[:len(s.Body)-1]
}

// Segments returns a head-first copy of the body.
func (s *Snake) Segments() []types.Point {
	out := make([]types.Point, len(s.Body))
	for i, p := range s.Body {
		out[len(s.Body)-1-i] = p
	}
	return out
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Step pushes a new head one cell along Direction. While energy is left
// it is spent and the tail stays; otherwise the tail end is dropped and
// returned with ok set, and the caller should treat it as emptied.
func (s *Snake) Step() (vacated types.Point, ok bool) {
	s.Body = append(s.Body, s.GetHead().Add(s.Direction))
	if s.Energy > 0 {
		s.Energy--
		return types.Point{}, false
	}
	vacated = s.Body[0]
	s.Body = s.Body[1:]
	return vacated, true
}

// Eat banks energy; the snake grows instead of moving its tail for that
// many steps.
func (s *Snake) Eat(amount int) {
	s.Energy += amount
}

func (s *Snake) Turn(side types.Side) {
	s.Direction = s.Direction.Turn(side)
}

// SetDirection turns onto dir. Only quarter turns are used, so a full
// reversal is two right turns.
func (s *Snake) SetDirection(dir types.Direction) {
	for s.Direction != dir {
		s.Turn(types.TurnRight)
	}
}

// Decide asks the snake's mind for the next heading against a frozen
// grid and adopts it. A snake without a mind goes straight.
func (s *Snake) Decide(grid *types.Grid) {
	if s.Mind == nil {
		return
	}
	s.SetDirection(s.Mind.Decide(grid, s.GetHead(), s.Direction))
}
