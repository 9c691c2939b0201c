// Package sim runs games without a terminal.
// The loop is explicit: each iteration builds an input snapshot, computes
// the elapsed time and steps the game once, so runs are reproducible from a seed.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/eco-defender/internal/core"
	"github.com/vovakirdan/eco-defender/internal/registry"
)

// ErrNoAutopilot is returned when autopilot is requested for a game that has none.
var ErrNoAutopilot = errors.New("sim: game has no autopilot")

// progressEvery is how often, in ticks, progress is logged.
const progressEvery = 600

// InputFunc returns the scripted input for a tick.
type InputFunc func(tick int) core.InputFrame

// Options controls a headless run.
type Options struct {
	// Ticks is the maximum number of ticks to run. The run also stops on game over.
	Ticks int

	// Autopilot lets the game drive itself. Requires registry.Autopilot.
	Autopilot bool

	// Input scripts the player when autopilot is off. Nil means no input.
	Input InputFunc

	// Realtime paces ticks with a wall-clock ticker and feeds the measured
	// elapsed time to the game. Otherwise every tick advances by exactly
	// one tick interval.
	Realtime bool

	// Logger receives progress at debug level. Nil disables logging.
	Logger *log.Logger
}

// Result is the outcome of a headless run.
type Result struct {
	Ticks    int              `yaml:"ticks"`
	State    core.GameState   `yaml:"state"`
	Summary  *core.RunSummary `yaml:"summary,omitempty"`
	Duration time.Duration    `yaml:"duration"` // Simulated time fed to the game
}

// Run resets the game with cfg and steps it until opts.Ticks ticks have run,
// the game ends, or ctx is done. On cancellation the partial result is
// returned along with ctx.Err().
func Run(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, opts Options) (Result, error) {
	var pilot registry.Autopilot
	if opts.Autopilot {
		p, ok := game.(registry.Autopilot)
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrNoAutopilot, game.ID())
		}
		pilot = p
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)
	interval := cfg.TickInterval()

	var ticker *time.Ticker
	if opts.Realtime {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	res := Result{State: game.State()}
	last := time.Now()

	for res.Ticks < opts.Ticks && !res.State.GameOver {
		elapsed := interval
		if ticker != nil {
			select {
			case <-ctx.Done():
				return finish(game, res), ctx.Err()
			case t := <-ticker.C:
				elapsed = t.Sub(last)
				last = t
			}
		} else if err := ctx.Err(); err != nil {
			return finish(game, res), err
		}

		var in core.InputFrame
		switch {
		case pilot != nil:
			in = pilot.Autopilot()
		case opts.Input != nil:
			in = opts.Input(res.Ticks)
		default:
			in = core.NewInputFrame()
		}
		in.Elapsed = elapsed

		res.State = game.Step(in).State
		res.Ticks++
		res.Duration += elapsed

		if res.Ticks%progressEvery == 0 {
			logger.Debug("sim progress",
				"game", game.ID(),
				"tick", res.Ticks,
				"score", res.State.Score,
			)
		}
	}

	res = finish(game, res)
	logger.Debug("sim finished",
		"game", game.ID(),
		"ticks", res.Ticks,
		"score", res.State.Score,
		"game_over", res.State.GameOver,
	)
	return res, nil
}

func finish(game registry.Game, res Result) Result {
	if s, ok := game.(registry.Summarizer); ok {
		sum := s.Summary()
		res.Summary = &sum
	}
	return res
}
