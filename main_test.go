package main

import (
	"testing"

	"snake-swarm/game"
	"snake-swarm/game/manager"
	"snake-swarm/game/types"
)

func playerGame(t *testing.T, archetype string) *game.Game {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Width, cfg.Height = 6, 6
	cfg.FoodTarget = 0
	cfg.Agents = []manager.AgentSpec{
		{Start: types.Point{X: 2, Y: 2}, Direction: types.Up, Length: 1, Archetype: archetype},
	}
	g, err := game.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSteerPlayer(t *testing.T) {
	g := playerGame(t, "player")
	if err := steerPlayer(g, "Left"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Tick(); err != nil {
		t.Fatal(err)
	}
	if head := g.Agents()[0].Body[0]; head != (types.Point{X: 1, Y: 2}) {
		t.Fatalf("head %v, want (1,2)", head)
	}

	if err := steerPlayer(g, "north"); err == nil {
		t.Fatal("north accepted")
	}
	if err := steerPlayer(playerGame(t, "straight"), "left"); err == nil {
		t.Fatal("steered without a player")
	}
}
