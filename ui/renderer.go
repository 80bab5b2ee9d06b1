package ui

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"

	"snake-swarm/game"
	"snake-swarm/game/entity"
	"snake-swarm/game/types"
)

const (
	maxHistory    = 200 // Ticks kept for the population graph
	borderPadding = 10
)

type Renderer struct {
	board *game.Board

	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32

	started time.Time
	alive   []int
	deaths  int
	last    game.TickResult
}

func NewRenderer(g *game.Game) *Renderer {
	r := &Renderer{
		board:   game.NewBoard(g),
		started: time.Now(),
	}
	r.UpdateDimensions()
	return r
}

// Apply feeds one tick's change-set into the cell buffer.
func (r *Renderer) Apply(res game.TickResult, alive int) {
	r.board.Apply(res)
	r.board.Dirty()
	r.deaths += len(res.Deaths)
	r.last = res
	r.alive = append(r.alive, alive)
	if len(r.alive) > maxHistory {
		r.alive = r.alive[1:]
	}
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 5
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func (r *Renderer) Draw(g *game.Game) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/45, r.statsPanel/12)
	lineHeight := min(r.screenHeight/35, r.statsPanel/10)

	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)
	r.cellSize = min(availableWidth/int32(r.board.Width()), availableHeight/int32(r.board.Height()))
	if r.cellSize < 1 {
		r.cellSize = 1
	}

	r.totalGridWidth = r.cellSize * int32(r.board.Width())
	r.totalGridHeight = r.cellSize * int32(r.board.Height())
	r.offsetX = borderPadding
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)

	for y := 0; y < r.board.Height(); y++ {
		for x := 0; x < r.board.Width(); x++ {
			px, py := r.cellOrigin(types.Point{X: x, Y: y})
			switch r.board.At(types.Point{X: x, Y: y}) {
			case types.Wall:
				rl.DrawRectangle(px, py, r.cellSize, r.cellSize, rl.Gray)
			case types.Food:
				rl.DrawRectangle(px, py, r.cellSize, r.cellSize, rl.Red)
			case types.Body, types.Head:
				rl.DrawRectangle(px, py, r.cellSize, r.cellSize, rl.RayWhite)
			default:
				rl.DrawRectangleLines(px, py, r.cellSize, r.cellSize, rl.Color{R: 40, G: 40, B: 40, A: 255})
			}
		}
	}

	// Tint the buffer with agent colours; the buffer alone cannot tell
	// one body from another.
	agents := g.Agents()
	for _, a := range agents {
		color := toRaylib(a.Color)
		for i, p := range a.Body {
			px, py := r.cellOrigin(p)
			if i == 0 {
				rl.DrawRectangle(px, py, r.cellSize, r.cellSize, brighten(a.Color))
				r.drawDirection(px, py, a.Direction)
				continue
			}
			rl.DrawRectangle(px, py, r.cellSize, r.cellSize, color)
		}
	}

	r.drawStatsPanel(g, agents, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) cellOrigin(p types.Point) (int32, int32) {
	return r.offsetX + int32(p.X)*r.cellSize, r.offsetY + int32(p.Y)*r.cellSize
}

func (r *Renderer) drawDirection(headX, headY int32, dir types.Direction) {
	halfCell := r.cellSize / 2
	cell := r.cellSize
	var a, b, c rl.Vector2
	switch dir {
	case types.Right:
		a = rl.Vector2{X: float32(headX + cell), Y: float32(headY + halfCell)}
		b = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)}
		c = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + cell)}
	case types.Left:
		a = rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)}
		b = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + cell)}
		c = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)}
	case types.Down:
		a = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + cell)}
		b = rl.Vector2{X: float32(headX + cell), Y: float32(headY + halfCell)}
		c = rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)}
	default:
		a = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)}
		b = rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)}
		c = rl.Vector2{X: float32(headX + cell), Y: float32(headY + halfCell)}
	}
	rl.DrawTriangle(a, b, c, rl.Yellow)
}

func (r *Renderer) drawStatsPanel(g *game.Game, agents []game.AgentView, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	rl.DrawText(fmt.Sprintf("Tick: %d", r.last.Tick), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Alive: %d  Dead: %d", len(agents), r.deaths), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	sum := g.Summary()
	rl.DrawText(fmt.Sprintf("Peak length: %.0f", sum.PeakLength), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Mean eaten: %.2f", sum.MeanEaten), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight * 3 / 2

	rl.DrawText("Agents:", statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	limit := r.screenHeight - r.graphHeight - fontSize*4
	for _, a := range agents {
		if statsY > limit {
			rl.DrawText("...", statsX+5, statsY, fontSize, rl.White)
			break
		}
		label := fmt.Sprintf("%s  len %d", a.Archetype, len(a.Body))
		if len(a.Layers) > 0 {
			label += "  [" + strings.Join(a.Layers, " ") + "]"
		}
		rl.DrawText(label, statsX+5, statsY, fontSize, toRaylib(a.Color))
		statsY += lineHeight
	}

	r.drawPopulationGraph(fontSize)

	if r.last.Over {
		text := "Simulation over"
		width := rl.MeasureText(text, fontSize*2)
		rl.DrawText(text,
			r.offsetX+(r.totalGridWidth-width)/2,
			r.offsetY+r.totalGridHeight/2,
			fontSize*2, rl.Yellow)
	}
}

func (r *Renderer) drawPopulationGraph(fontSize int32) {
	graphX := r.gameWidth + 5
	graphY := r.screenHeight - r.graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("Alive", graphX, graphY-fontSize-5, fontSize, rl.White)

	duration := time.Since(r.started)
	timeText := fmt.Sprintf("%02d:%02d:%02d", int(duration.Hours()), int(duration.Minutes())%60, int(duration.Seconds())%60)
	rl.DrawText(timeText, graphX, r.screenHeight-fontSize-5, fontSize, rl.White)

	peak := 1
	for _, n := range r.alive {
		if n > peak {
			peak = n
		}
	}
	for j := 1; j < len(r.alive); j++ {
		x1 := graphX + int32(float32(r.graphWidth)*float32(j-1)/float32(maxHistory))
		y1 := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(r.alive[j-1])/float32(peak))
		x2 := graphX + int32(float32(r.graphWidth)*float32(j)/float32(maxHistory))
		y2 := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(r.alive[j])/float32(peak))
		rl.DrawLine(x1, y1, x2, y2, rl.Green)
	}
}

// HandleInput maps the arrow keys to turns for the player agent, and
// WASD to absolute headings.
func HandleInput(g *game.Game) {
	id, ok := g.Player()
	if !ok {
		return
	}
	var err error
	switch {
	case rl.IsKeyPressed(rl.KeyLeft):
		err = g.Turn(id, types.TurnLeft)
	case rl.IsKeyPressed(rl.KeyRight):
		err = g.Turn(id, types.TurnRight)
	case rl.IsKeyPressed(rl.KeyW):
		err = g.SetDirection(id, types.Up)
	case rl.IsKeyPressed(rl.KeyD):
		err = g.SetDirection(id, types.Right)
	case rl.IsKeyPressed(rl.KeyS):
		err = g.SetDirection(id, types.Down)
	case rl.IsKeyPressed(rl.KeyA):
		err = g.SetDirection(id, types.Left)
	}
	if err != nil {
		// the player died between lookup and request
		log.Debug().Err(err).Msg("player input dropped")
	}
}

func toRaylib(c entity.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func brighten(c entity.Color) rl.Color {
	scale := func(v uint8) uint8 {
		if f := float32(v) * 1.3; f < 255 {
			return uint8(f)
		}
		return 255
	}
	return rl.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}
