// Package term draws the simulation in a terminal with tcell.
package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"snake-swarm/game"
	"snake-swarm/game/types"
)

var glyphs = map[types.Cell]rune{
	types.Empty: ' ',
	types.Wall:  '#',
	types.Body:  'o',
	types.Head:  '@',
	types.Food:  '*',
}

var (
	wallStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	foodStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	snakeStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// View keeps a board in sync with the game and repaints only the cells
// each tick touched. Safe for one ticking and one input goroutine.
type View struct {
	mu     sync.Mutex
	screen tcell.Screen
	game   *game.Game
	board  *game.Board
	tick   int
	deaths int
	over   bool
}

func NewView(screen tcell.Screen, g *game.Game) *View {
	return &View{
		screen: screen,
		game:   g,
		board:  game.NewBoard(g),
	}
}

// DrawAll repaints the whole board and the status line.
func (v *View) DrawAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.screen.Clear()
	colors := v.agentStyles()
	for y := 0; y < v.board.Height(); y++ {
		for x := 0; x < v.board.Width(); x++ {
			v.drawCell(types.Point{X: x, Y: y}, colors)
		}
	}
	v.drawStatus()
	v.screen.Show()
}

// Apply patches the board with res and repaints the changed cells.
func (v *View) Apply(res game.TickResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.board.Apply(res)
	v.tick = res.Tick
	v.deaths += len(res.Deaths)
	v.over = v.over || res.Over

	colors := v.agentStyles()
	for _, p := range v.board.Dirty() {
		v.drawCell(p, colors)
	}
	v.drawStatus()
	v.screen.Show()
}

// agentStyles maps every live segment to its agent's colour.
func (v *View) agentStyles() map[types.Point]tcell.Style {
	styles := make(map[types.Point]tcell.Style)
	for _, a := range v.game.Agents() {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(a.Color.R), int32(a.Color.G), int32(a.Color.B)))
		for _, p := range a.Body {
			styles[p] = style
		}
	}
	return styles
}

func (v *View) drawCell(p types.Point, colors map[types.Point]tcell.Style) {
	cell := v.board.At(p)
	style := tcell.StyleDefault
	switch cell {
	case types.Wall:
		style = wallStyle
	case types.Food:
		style = foodStyle
	case types.Body, types.Head:
		style = snakeStyle
		if s, ok := colors[p]; ok {
			style = s
		}
	}
	v.screen.SetContent(p.X, p.Y, glyphs[cell], nil, style)
}

func (v *View) drawStatus() {
	status := fmt.Sprintf("tick %d  alive %d  dead %d", v.tick, len(v.game.Agents()), v.deaths)
	if v.over {
		status += "  [over]"
	}
	y := v.board.Height()
	width, _ := v.screen.Size()
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
	for x, r := range []rune(status) {
		v.screen.SetContent(x, y, r, nil, textStyle)
	}
}

// HandleEvent reacts to one terminal event and reports whether the user
// asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
		v.DrawAll()
	}
	return false
}

// handleKey maps arrows to player turns. Escape, Ctrl-C and q quit.
func (v *View) handleKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ch == 'q'
	}

	side := types.TurnLeft
	switch key {
	case tcell.KeyLeft:
	case tcell.KeyRight:
		side = types.TurnRight
	default:
		return false
	}
	id, ok := v.game.Player()
	if !ok {
		log.Debug().Msg("no player to steer")
		return false
	}
	if err := v.game.Turn(id, side); err != nil {
		log.Debug().Err(err).Msg("player input dropped")
	}
	return false
}

// Run takes over the terminal and ticks g until it ends, maxTicks is
// reached, ctx is done or the user quits.
func Run(ctx context.Context, g *game.Game, interval time.Duration, maxTicks int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "opening terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "initialising terminal")
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	view := NewView(screen, g)
	view.DrawAll()
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if view.HandleEvent(ev) {
				cancel()
				return
			}
		}
	}()

	err = game.Run(ctx, g, interval, maxTicks, view.Apply)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
