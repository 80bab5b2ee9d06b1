package types

import "testing"

func TestDirectionTurn(t *testing.T) {
	for _, d := range Directions {
		if got := d.Turn(TurnLeft).Turn(TurnRight); got != d {
			t.Errorf("%v: left then right = %v", d, got)
		}
		r := d
		for i := 0; i < 4; i++ {
			r = r.Turn(TurnRight)
		}
		if r != d {
			t.Errorf("%v: four right turns = %v", d, r)
		}
		if d.Turn(TurnRight).Turn(TurnRight) != d.Opposite() {
			t.Errorf("%v: two right turns is not the opposite", d)
		}
	}

	cases := []struct {
		from Direction
		side Side
		want Direction
	}{
		{Up, TurnRight, Right},
		{Up, TurnLeft, Left},
		{Right, TurnRight, Down},
		{Down, TurnLeft, Right},
		{Left, TurnRight, Up},
	}
	for _, c := range cases {
		if got := c.from.Turn(c.side); got != c.want {
			t.Errorf("%v turn %v = %v, want %v", c.from, c.side, got, c.want)
		}
	}
}

func TestDirectionVectorIsUnit(t *testing.T) {
	for _, d := range Directions {
		v := d.Vector()
		if Manhattan(Point{}, v) != 1 {
			t.Errorf("%v vector %v is not a unit step", d, v)
		}
		back, ok := DirectionBetween(Point{X: 3, Y: 3}, Point{X: 3, Y: 3}.Add(d))
		if !ok || back != d {
			t.Errorf("DirectionBetween for %v = %v, %v", d, back, ok)
		}
	}
	if _, ok := DirectionBetween(Point{}, Point{X: 1, Y: 1}); ok {
		t.Error("diagonal step reported as cardinal")
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Down")
	if err != nil || d != Down {
		t.Fatalf("ParseDirection(Down) = %v, %v", d, err)
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestGridOutOfBoundsIsWall(t *testing.T) {
	g := NewGrid(3, 2)
	for _, p := range []Point{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 2}} {
		if c := g.At(p); c != Wall {
			t.Errorf("At(%v) = %v, want wall", p, c)
		}
		if g.Set(p, Food) {
			t.Errorf("Set(%v) accepted an off-board write", p)
		}
	}
	if c := g.At(Point{X: 2, Y: 1}); c != Empty {
		t.Errorf("in-bounds cell = %v, want empty", c)
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 2)
	c := g.Clone()
	c.Set(Point{X: 1, Y: 1}, Wall)
	if g.At(Point{X: 1, Y: 1}) != Empty {
		t.Fatal("clone shares storage with the original")
	}
}

func TestParseGridRoundTrip(t *testing.T) {
	rows := []string{
		"#####",
		"#.*H#",
		"#oo.#",
		"#####",
	}
	g, err := ParseGrid(rows...)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 5 || g.Height != 4 {
		t.Fatalf("size = %dx%d", g.Width, g.Height)
	}
	if g.At(Point{X: 2, Y: 1}) != Food || g.At(Point{X: 3, Y: 1}) != Head {
		t.Fatalf("unexpected cells:\n%s", g)
	}
	want := "#####\n#.*H#\n#oo.#\n#####\n"
	if g.String() != want {
		t.Fatalf("String() =\n%s\nwant\n%s", g, want)
	}
	if g.Count(Body) != 2 {
		t.Fatalf("Count(Body) = %d", g.Count(Body))
	}

	if _, err := ParseGrid("..", "..."); err == nil {
		t.Fatal("expected ragged rows to fail")
	}
	if _, err := ParseGrid(".x"); err == nil {
		t.Fatal("expected unknown glyph to fail")
	}
}

func TestSign(t *testing.T) {
	got := Sign(Point{X: 4, Y: 1}, Point{X: 1, Y: 1})
	if got != (Point{X: -1, Y: 0}) {
		t.Fatalf("Sign = %v", got)
	}
	if Right.Dot(Point{X: 1, Y: -1}) != 1 || Up.Dot(Point{X: 1, Y: -1}) != 1 || Left.Dot(Point{X: 1, Y: 0}) != -1 {
		t.Fatal("Dot mismatch")
	}
}
