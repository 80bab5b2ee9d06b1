package game

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"snake-swarm/game/entity"
	"snake-swarm/game/manager"
	"snake-swarm/game/types"
)

func testConfig(width, height int) Config {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.FoodTarget = 0
	cfg.Seed = 1
	return cfg
}

func straight(x, y int, dir types.Direction, length int) manager.AgentSpec {
	return manager.AgentSpec{
		Start:     types.Point{X: x, Y: y},
		Direction: dir,
		Length:    length,
		Archetype: "straight",
	}
}

func mustGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func mustTick(t *testing.T, g *Game) TickResult {
	t.Helper()
	res, err := g.Tick()
	if err != nil {
		t.Fatalf("tick %d: %v", g.Ticks(), err)
	}
	return res
}

func TestComposePrecedence(t *testing.T) {
	walls, err := types.ParseGrid(
		"#....",
		".....",
		".....",
	)
	if err != nil {
		t.Fatal(err)
	}
	a := entity.NewSnake(types.Point{X: 2, Y: 1}, types.Right, 2, 0, nil, entity.Color{})
	b := entity.NewSnake(types.Point{X: 1, Y: 1}, types.Down, 1, 0, nil, entity.Color{})
	food := []types.Point{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 9, Y: 9}}

	grid := Compose(walls, []*entity.Snake{a, b}, food)
	want := "" +
		"#....\n" +
		".H**.\n" +
		".....\n"
	if got := grid.String(); got != want {
		t.Fatalf("composed grid\n%s\nwant\n%s", got, want)
	}
	if walls.At(types.Point{X: 1, Y: 1}) != types.Empty {
		t.Fatal("Compose wrote into the wall mask")
	}
	if len(a.Body) != 2 {
		t.Fatal("Compose changed a snake")
	}
}

func TestHeadToHeadKillsBoth(t *testing.T) {
	cfg := testConfig(5, 3)
	cfg.Agents = []manager.AgentSpec{
		straight(1, 1, types.Right, 1),
		straight(3, 1, types.Left, 1),
	}
	g := mustGame(t, cfg)
	ids := []string{g.Agents()[0].ID.String(), g.Agents()[1].ID.String()}

	res := mustTick(t, g)
	if len(res.Deaths) != 2 {
		t.Fatalf("deaths %v", res.Deaths)
	}
	for i, d := range res.Deaths {
		if d.Cause != manager.HeadToHead || d.Snake.ID.String() != ids[i] {
			t.Fatalf("death %d: %v %v", i, d.Snake.ID, d.Cause)
		}
	}
	if !res.Over {
		t.Fatal("expected the simulation to be over")
	}
	want := []Change{
		{Pos: types.Point{X: 1, Y: 1}, Cell: types.Empty},
		{Pos: types.Point{X: 2, Y: 1}, Cell: types.Empty},
		{Pos: types.Point{X: 3, Y: 1}, Cell: types.Empty},
	}
	assertChanges(t, res.Changes, want)

	if _, err := g.Tick(); !errors.Is(err, ErrSimulationOver) {
		t.Fatalf("tick after the end: %v", err)
	}
}

func TestDecisionsSeeTheTickStart(t *testing.T) {
	// the safe agent sees (3,1) empty and keeps going; so does the straight one
	safe := manager.AgentSpec{Start: types.Point{X: 3, Y: 2}, Direction: types.Up, Length: 1, Archetype: "safe"}
	for _, order := range [][]manager.AgentSpec{
		{straight(2, 1, types.Right, 1), safe},
		{safe, straight(2, 1, types.Right, 1)},
	} {
		cfg := testConfig(6, 4)
		cfg.Agents = order
		g := mustGame(t, cfg)

		res := mustTick(t, g)
		if len(res.Deaths) != 2 {
			t.Fatalf("%s first: deaths %v", order[0].Archetype, res.Deaths)
		}
		for _, d := range res.Deaths {
			if d.Cause != manager.HeadToHead || d.Snake.GetHead() != (types.Point{X: 3, Y: 1}) {
				t.Fatalf("%s first: %s died of %v at %v", order[0].Archetype, d.Snake.Archetype, d.Cause, d.Snake.GetHead())
			}
		}
		if !res.Over {
			t.Fatalf("%s first: expected the simulation to be over", order[0].Archetype)
		}
	}
}

func TestAgentsReportTheirLayers(t *testing.T) {
	cfg := testConfig(6, 4)
	cfg.Agents = []manager.AgentSpec{
		{Start: types.Point{X: 1, Y: 1}, Direction: types.Right, Length: 1, Archetype: "survivor"},
		straight(4, 2, types.Left, 1),
	}
	g := mustGame(t, cfg)
	agents := g.Agents()

	want := []string{"wander", "avoid", "seek", "survive"}
	if got := agents[0].Layers; len(got) != len(want) {
		t.Fatalf("survivor layers %v, want %v", got, want)
	}
	for i := range want {
		if agents[0].Layers[i] != want[i] {
			t.Fatalf("survivor layers %v, want %v", agents[0].Layers, want)
		}
	}
	if len(agents[1].Layers) != 0 {
		t.Fatalf("straight layers %v", agents[1].Layers)
	}
}

func TestDeadAgentsNeverEat(t *testing.T) {
	cfg := testConfig(5, 3)
	cfg.Agents = []manager.AgentSpec{
		straight(1, 1, types.Right, 1),
		straight(3, 1, types.Left, 1),
	}
	cfg.Food = []types.Point{{X: 2, Y: 1}}
	cfg.FoodTarget = 1
	g := mustGame(t, cfg)

	res := mustTick(t, g)
	assertChanges(t, res.Changes, []Change{
		{Pos: types.Point{X: 1, Y: 1}, Cell: types.Empty},
		{Pos: types.Point{X: 2, Y: 1}, Cell: types.Food},
		{Pos: types.Point{X: 3, Y: 1}, Cell: types.Empty},
	})
	for _, r := range g.Records() {
		if r.Eaten != 0 {
			t.Fatalf("dead agent ate: %+v", r)
		}
	}
}

func TestSeekerReachesFoodInTenTicks(t *testing.T) {
	cfg := testConfig(10, 10)
	cfg.Agents = []manager.AgentSpec{{
		Start:     types.Point{X: 0, Y: 0},
		Direction: types.Right,
		Length:    1,
		Archetype: "seeker",
	}}
	cfg.Food = []types.Point{{X: 5, Y: 5}}
	cfg.FoodTarget = 1
	g := mustGame(t, cfg)

	target := types.Point{X: 5, Y: 5}
	for tick := 1; tick <= 10; tick++ {
		res := mustTick(t, g)
		if len(res.Deaths) != 0 {
			t.Fatalf("tick %d: seeker died", tick)
		}
		head := g.Agents()[0].Body[0]
		if got := types.Manhattan(head, target); got != 10-tick {
			t.Fatalf("tick %d: head %v is %d away from food", tick, head, got)
		}
	}
	if got := g.Records()[0].Eaten; got != 1 {
		t.Fatalf("eaten %d, want 1", got)
	}
	if got := g.Agents()[0].Energy; got != types.DefaultFoodReward {
		t.Fatalf("energy %d, want %d", got, types.DefaultFoodReward)
	}
}

func TestVacatedTailIsFreeSameTick(t *testing.T) {
	cfg := testConfig(6, 3)
	cfg.Agents = []manager.AgentSpec{
		straight(3, 1, types.Right, 3), // body (1,1) (2,1) (3,1)
		straight(1, 0, types.Down, 1),  // moves onto (1,1) as the tail leaves
	}
	g := mustGame(t, cfg)

	res := mustTick(t, g)
	if len(res.Deaths) != 0 {
		t.Fatalf("pursuer died on a vacated tail: %v", res.Deaths[0].Cause)
	}
	assertChanges(t, res.Changes, []Change{
		{Pos: types.Point{X: 1, Y: 0}, Cell: types.Empty},
		{Pos: types.Point{X: 1, Y: 1}, Cell: types.Head},
		{Pos: types.Point{X: 3, Y: 1}, Cell: types.Body},
		{Pos: types.Point{X: 4, Y: 1}, Cell: types.Head},
	})
}

func TestGrowingTailStillBlocks(t *testing.T) {
	cfg := testConfig(6, 3)
	grower := straight(3, 1, types.Right, 3)
	grower.Energy = 1
	cfg.Agents = []manager.AgentSpec{grower, straight(1, 0, types.Down, 1)}
	g := mustGame(t, cfg)

	res := mustTick(t, g)
	if len(res.Deaths) != 1 || res.Deaths[0].Cause != manager.BodyCollision {
		t.Fatalf("deaths %v", res.Deaths)
	}
	if res.Over {
		t.Fatal("one agent is still alive")
	}
	// the pursuer's head was drawn over the body; it is body again now
	if got := g.Snapshot().At(types.Point{X: 1, Y: 1}); got != types.Body {
		t.Fatalf("(1,1) is %v", got)
	}
}

func TestWallAndOffBoardDeaths(t *testing.T) {
	walls, err := types.ParseGrid(
		".....",
		".....",
		"..#..",
	)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(5, 3)
	cfg.Walls = walls
	cfg.Agents = []manager.AgentSpec{
		straight(1, 2, types.Right, 2),
		straight(0, 0, types.Left, 1),
	}
	g := mustGame(t, cfg)

	res := mustTick(t, g)
	if len(res.Deaths) != 2 {
		t.Fatalf("deaths %v", res.Deaths)
	}
	for _, d := range res.Deaths {
		if d.Cause != manager.WallCollision {
			t.Fatalf("cause %v", d.Cause)
		}
	}
	// the whole body goes; nothing off the board is reported
	assertChanges(t, res.Changes, []Change{
		{Pos: types.Point{X: 0, Y: 0}, Cell: types.Empty},
		{Pos: types.Point{X: 0, Y: 2}, Cell: types.Empty},
		{Pos: types.Point{X: 1, Y: 2}, Cell: types.Empty},
		{Pos: types.Point{X: 2, Y: 2}, Cell: types.Wall},
	})
	if !res.Over {
		t.Fatal("expected the simulation to be over")
	}
}

func TestFeedingAndRespawn(t *testing.T) {
	cfg := testConfig(6, 6)
	cfg.Agents = []manager.AgentSpec{straight(1, 1, types.Right, 1)}
	cfg.Food = []types.Point{{X: 2, Y: 1}}
	cfg.FoodTarget = 1
	cfg.FoodReward = 3
	g := mustGame(t, cfg)

	res := mustTick(t, g)
	if got := g.Agents()[0].Energy; got != 3 {
		t.Fatalf("energy %d, want 3", got)
	}
	foods := 0
	for _, c := range res.Changes {
		if c.Cell == types.Food {
			foods++
			if c.Pos == (types.Point{X: 2, Y: 1}) {
				t.Fatalf("food respawned under the snake at %v", c.Pos)
			}
		}
	}
	if foods != 1 || g.Snapshot().Count(types.Food) != 1 {
		t.Fatalf("respawned %d food", foods)
	}

	mustTick(t, g)
	if got := len(g.Agents()[0].Body); got != 2 {
		t.Fatalf("length %d, want 2", got)
	}
}

func TestFoodExhaustionIsFatal(t *testing.T) {
	cfg := testConfig(3, 1)
	// the snake keeps its tail on the first step
	hungry := straight(0, 0, types.Right, 1)
	hungry.Energy = 1
	cfg.Agents = []manager.AgentSpec{hungry}
	cfg.FoodTarget = 3
	if _, err := New(cfg); !errors.Is(err, manager.ErrNoFreeCell) {
		t.Fatalf("New: %v, want ErrNoFreeCell", err)
	}

	// two food fit at first; after the snake eats and grows nothing is left
	cfg.FoodTarget = 2
	g := mustGame(t, cfg)
	res, err := g.Tick()
	if !errors.Is(err, manager.ErrNoFreeCell) {
		t.Fatalf("Tick: %v, want ErrNoFreeCell", err)
	}
	if !res.Over || !g.Over() {
		t.Fatal("exhaustion did not end the simulation")
	}
	if res.Tick != 1 {
		t.Fatalf("result for tick %d", res.Tick)
	}
	var head bool
	for _, c := range res.Changes {
		if c.Pos == (types.Point{X: 1, Y: 0}) && c.Cell == types.Head {
			head = true
		}
	}
	if !head {
		t.Fatalf("changes %v miss the new head", res.Changes)
	}
	if _, err := g.Tick(); !errors.Is(err, ErrSimulationOver) {
		t.Fatalf("Tick after failure: %v", err)
	}
}

func TestPlayerControl(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.Agents = []manager.AgentSpec{
		{Start: types.Point{X: 2, Y: 2}, Direction: types.Up, Length: 1, Archetype: "player"},
	}
	g := mustGame(t, cfg)
	id, ok := g.Player()
	if !ok {
		t.Fatal("no player")
	}

	if err := g.Turn(id, types.TurnRight); err != nil {
		t.Fatal(err)
	}
	mustTick(t, g)
	if got := g.Agents()[0].Body[0]; got != (types.Point{X: 3, Y: 2}) {
		t.Fatalf("head %v after a right turn", got)
	}

	if err := g.SetDirection(id, types.Down); err != nil {
		t.Fatal(err)
	}
	mustTick(t, g)
	if got := g.Agents()[0].Body[0]; got != (types.Point{X: 3, Y: 3}) {
		t.Fatalf("head %v after heading down", got)
	}

	// the request is used once; the player keeps going down
	mustTick(t, g)
	if got := g.Agents()[0].Body[0]; got != (types.Point{X: 3, Y: 4}) {
		t.Fatalf("head %v", got)
	}

	if err := g.Turn(uuid.New(), types.TurnLeft); !errors.Is(err, ErrUnknownAgent) {
		t.Fatalf("Turn on unknown agent: %v", err)
	}
}

func TestSeededRunsAreReproducible(t *testing.T) {
	run := func() ([]TickResult, string) {
		cfg := testConfig(16, 12)
		cfg.Seed = 42
		cfg.FoodTarget = 6
		cfg.Random = []RandomSpec{
			{Archetype: "survivor", Count: 4, Energy: 4},
			{Archetype: "greedy", Count: 3, Energy: 4},
			{Archetype: "confused", Count: 2, Energy: 4},
		}
		g := mustGame(t, cfg)
		var results []TickResult
		for i := 0; i < 40 && !g.Over(); i++ {
			results = append(results, mustTick(t, g))
		}
		return results, g.Snapshot().String()
	}

	first, board1 := run()
	second, board2 := run()
	if board1 != board2 {
		t.Fatalf("final boards differ\n%s\n%s", board1, board2)
	}
	if len(first) != len(second) {
		t.Fatalf("%d ticks vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i].Changes) != len(second[i].Changes) || len(first[i].Deaths) != len(second[i].Deaths) {
			t.Fatalf("tick %d differs", first[i].Tick)
		}
		for j := range first[i].Changes {
			if first[i].Changes[j] != second[i].Changes[j] {
				t.Fatalf("tick %d change %d: %v vs %v", first[i].Tick, j, first[i].Changes[j], second[i].Changes[j])
			}
		}
	}
}

func TestNoSharedHeadsAfterAnyTick(t *testing.T) {
	cfg := testConfig(12, 12)
	cfg.Seed = 7
	cfg.FoodTarget = 4
	cfg.Random = []RandomSpec{{Archetype: "notstupid", Count: 12, Energy: 3}}
	g := mustGame(t, cfg)

	for i := 0; i < 60 && !g.Over(); i++ {
		mustTick(t, g)
		seen := map[types.Point]bool{}
		for _, a := range g.Agents() {
			if seen[a.Body[0]] {
				t.Fatalf("tick %d: two live heads on %v", g.Ticks(), a.Body[0])
			}
			seen[a.Body[0]] = true
		}
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := testConfig(0, 4)
	cfg.FoodTarget = -1
	cfg.Params.Confusion = 2
	cfg.Agents = []manager.AgentSpec{{Archetype: "kamikaze"}}

	err := cfg.Validate()
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("Validate returned %T", err)
	}
	if len(merr.Errors) != 4 {
		t.Fatalf("got %d errors: %v", len(merr.Errors), merr)
	}
	if err := testConfig(4, 4).Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestBadSpawnIsRejected(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.Agents = []manager.AgentSpec{straight(0, 0, types.Right, 3)}
	if _, err := New(cfg); !errors.Is(err, manager.ErrBadSpawn) {
		t.Fatalf("New: %v, want ErrBadSpawn", err)
	}
}

func TestRunStopsWhenOver(t *testing.T) {
	cfg := testConfig(5, 3)
	cfg.Agents = []manager.AgentSpec{
		straight(1, 1, types.Right, 1),
		straight(3, 1, types.Left, 1),
	}
	g := mustGame(t, cfg)

	var got []TickResult
	if err := Run(context.Background(), g, 0, 0, func(r TickResult) { got = append(got, r) }); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Over {
		t.Fatalf("results %+v", got)
	}
}

func TestRunLimitAndCancel(t *testing.T) {
	cfg := testConfig(20, 3)
	cfg.Agents = []manager.AgentSpec{straight(0, 1, types.Right, 1)}
	g := mustGame(t, cfg)

	if err := Run(context.Background(), g, 0, 5, nil); err != nil {
		t.Fatal(err)
	}
	if g.Ticks() != 5 {
		t.Fatalf("ran %d ticks", g.Ticks())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, g, 0, 0, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: %v", err)
	}
	if g.Ticks() != 5 {
		t.Fatalf("ticked after cancel")
	}
}

func assertChanges(t *testing.T, got, want []Change) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("changes %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("change %d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestChangeSetsKeepBoardInSync(t *testing.T) {
	cfg := testConfig(14, 10)
	cfg.Seed = 11
	cfg.FoodTarget = 5
	cfg.Random = []RandomSpec{
		{Archetype: "survivor", Count: 3, Energy: 5},
		{Archetype: "confused", Count: 3, Energy: 2},
		{Archetype: "straight", Count: 2},
	}
	g := mustGame(t, cfg)
	board := NewBoard(g)

	for i := 0; i < 50 && !g.Over(); i++ {
		res := mustTick(t, g)
		board.Apply(res)
		if got, want := board.String(), g.Snapshot().String(); got != want {
			t.Fatalf("tick %d: board\n%s\nsnapshot\n%s", res.Tick, got, want)
		}
		if len(board.Dirty()) != len(res.Changes) {
			t.Fatalf("tick %d: dirty cells do not match changes", res.Tick)
		}
	}
}
