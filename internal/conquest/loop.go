package conquest

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Loop drives a World at a fixed tick rate without a window. Each iteration
// waits for the limiter, steps the world, presents the frame and then
// applies the input that arrived during the tick.
type Loop struct {
	World     *World
	Input     InputSource
	Presenter Presenter
	Limiter   *rate.Limiter
	MaxTicks  int // 0 runs until the match ends
}

// NewLoop builds a loop paced at tps ticks per second. With realtime false
// the loop runs as fast as the world can step.
func NewLoop(w *World, in InputSource, tps int, realtime bool) *Loop {
	limit := rate.Inf
	if realtime && tps > 0 {
		limit = rate.Limit(tps)
	}
	if in == nil {
		in = noInput{}
	}
	return &Loop{
		World:   w,
		Input:   in,
		Limiter: rate.NewLimiter(limit, 1),
	}
}

// Run steps until the match ends, a Quit event arrives, MaxTicks is reached
// or ctx is cancelled. Quit stops immediately; fleets in flight are dropped.
func (l *Loop) Run(ctx context.Context) (Outcome, error) {
	w := l.World
	for {
		if err := l.Limiter.Wait(ctx); err != nil {
			return w.Outcome(), fmt.Errorf("wait for tick %d: %w", w.Tick()+1, err)
		}
		outcome := w.Step()
		if l.Presenter != nil {
			l.Presenter.Present(w.Frame())
		}
		if outcome.Done() {
			return outcome, nil
		}
		for _, ev := range l.Input.Poll() {
			if w.HandleInput(ev) {
				return w.Outcome(), nil
			}
		}
		if l.MaxTicks > 0 && w.Tick() >= l.MaxTicks {
			return w.Outcome(), nil
		}
	}
}
