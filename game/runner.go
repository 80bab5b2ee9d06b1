package game

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Sink receives every tick result, in order.
type Sink func(TickResult)

// Run ticks g until the simulation is over, maxTicks ticks have run
// (0 means no limit), or ctx is done. With a zero interval it ticks as
// fast as it can. The end of the simulation is not an error.
func Run(ctx context.Context, g *Game, interval time.Duration, maxTicks int, sink Sink) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := 0; maxTicks == 0 || n < maxTicks; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		result, err := g.Tick()
		if errors.Is(err, ErrSimulationOver) {
			return nil
		}
		if err != nil {
			return err
		}
		if sink != nil {
			sink(result)
		}
		if result.Over {
			return nil
		}
	}
	return nil
}
