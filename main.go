package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"snake-swarm/ai"
	"snake-swarm/game"
	"snake-swarm/game/barrier"
	"snake-swarm/game/types"
	"snake-swarm/ui"
	"snake-swarm/ui/term"
)

func main() {
	speed := flag.Int("speed", 100, "Tick interval in milliseconds (lower = faster)")
	width := flag.Int("width", 40, "Grid width in cells")
	height := flag.Int("height", 30, "Grid height in cells")
	agents := flag.Int("agents", 8, "Number of autonomous agents")
	archetype := flag.String("archetype", "survivor", "Agent archetype: "+strings.Join(ai.Archetypes(), ", "))
	player := flag.Bool("player", false, "Add an agent steered with the arrow keys")
	playerDir := flag.String("player-dir", "", "Initial heading of the player agent: up, right, down or left")
	food := flag.Int("food", types.DefaultFoodTarget, "Food kept on the board")
	reward := flag.Int("reward", types.DefaultFoodReward, "Segments grown per food")
	seed := flag.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	mapName := flag.String("map", "borders", "Wall layout: "+strings.Join(barrier.Names(), ", "))
	uiMode := flag.String("ui", "window", "Display: window, term or none")
	ticks := flag.Int("ticks", 0, "Stop after this many ticks (0 runs until every agent is dead)")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("bad log level")
	}
	zerolog.SetGlobalLevel(level)

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	walls, err := barrier.Build(*mapName, *width, *height, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal().Err(err).Msg("building map")
	}

	cfg := game.DefaultConfig()
	cfg.Width, cfg.Height = *width, *height
	cfg.Walls = walls
	cfg.FoodTarget = *food
	cfg.FoodReward = *reward
	cfg.Seed = *seed
	cfg.Random = []game.RandomSpec{{Archetype: *archetype, Count: *agents, Energy: types.DefaultAgentLength}}
	if *player {
		cfg.Random = append(cfg.Random, game.RandomSpec{Archetype: "player", Count: 1, Energy: types.DefaultAgentLength})
	}
	if *uiMode != "term" {
		cfg.Logger = log.Logger
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("creating world")
	}
	if *playerDir != "" {
		if err := steerPlayer(g, *playerDir); err != nil {
			log.Fatal().Err(err).Msg("bad player direction")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interval := time.Duration(*speed) * time.Millisecond
	switch *uiMode {
	case "window":
		runWindow(g, interval, *ticks)
	case "term":
		err = term.Run(ctx, g, interval, *ticks)
	case "none":
		err = game.Run(ctx, g, 0, *ticks, nil)
	default:
		err = errors.Errorf("unknown ui %q", *uiMode)
	}
	if err != nil {
		log.Error().Err(err).Msg("simulation stopped")
	}

	report(g)
}

func runWindow(g *game.Game, interval time.Duration, maxTicks int) {
	rl.InitWindow(1280, 800, "Snake Swarm")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer(g)
	lastUpdate := time.Now()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		ui.HandleInput(g)

		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}

		done := g.Over() || (maxTicks > 0 && g.Ticks() >= maxTicks)
		if !done && time.Since(lastUpdate) >= interval {
			res, err := g.Tick()
			if err != nil {
				log.Error().Err(err).Msg("tick failed")
				return
			}
			renderer.Apply(res, len(g.Agents()))
			lastUpdate = time.Now()
		}

		renderer.Draw(g)
	}
}

// steerPlayer buffers the player's first heading; it applies on tick 1.
func steerPlayer(g *game.Game, name string) error {
	dir, err := types.ParseDirection(name)
	if err != nil {
		return err
	}
	id, ok := g.Player()
	if !ok {
		return errors.New("-player-dir needs -player")
	}
	return g.SetDirection(id, dir)
}

func report(g *game.Game) {
	sum := g.Summary()
	event := log.Info().
		Int("ticks", g.Ticks()).
		Int("agents", sum.Agents).
		Int("alive", sum.Alive).
		Float64("mean_lifetime", sum.MeanLifetime).
		Float64("std_lifetime", sum.StdLifetime).
		Float64("mean_eaten", sum.MeanEaten).
		Float64("peak_length", sum.PeakLength)
	for cause, n := range sum.Deaths {
		event = event.Int("deaths_"+cause.String(), n)
	}
	event.Msg("summary")
}
