package engine

import (
	"context"
	"sync"
	"time"

	"github.com/birdrush/birdrush/internal/core"
)

// Loop is a fixed-timestep driver for headless hosts. It owns the engine
// while running: the loop goroutine is the only caller of Step, and input
// arrives through a channel, which preserves the single-writer model
// without locks. The loop stops rescheduling itself the moment the engine
// reports game over.
//
// The TUI host does not use Loop; Bubble Tea's tick messages drive Step on
// the UI goroutine instead.
type Loop struct {
	eng      *Engine
	tickRate int
	observer func(*State)

	input chan core.Action
	stop  chan struct{}
	done  chan struct{}

	stopOnce sync.Once
}

// LoopOption configures a Loop at construction.
type LoopOption func(*Loop)

// WithTickObserver installs a hook invoked after every step with the fresh
// state. It runs on the loop goroutine, so it may read the state freely,
// queue input through Flap, and call Destroy to end the run.
func WithTickObserver(fn func(*State)) LoopOption {
	return func(l *Loop) {
		l.observer = fn
	}
}

// NewLoop creates a loop driving the engine at tickRate steps per second.
func NewLoop(eng *Engine, tickRate int, opts ...LoopOption) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	l := &Loop{
		eng:      eng,
		tickRate: tickRate,
		input:    make(chan core.Action, 16),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Flap queues a flap for the next tick. Never blocks; excess input during
// a single tick is dropped.
func (l *Loop) Flap() {
	select {
	case l.input <- core.ActionFlap:
	default:
	}
}

// Run drives the engine until game over, Destroy, or context cancellation.
// Ticks are throttled to a minimum inter-frame delta measured against the
// wall clock, so a noisy scheduler cannot produce faster-than-real updates.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	interval := time.Second / time.Duration(l.tickRate)
	minDelta := interval * 9 / 10
	last := time.Now().Add(-interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frame := core.NewInputFrame()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case a := <-l.input:
			frame.Set(a)
		case now := <-ticker.C:
			if now.Sub(last) < minDelta {
				continue
			}
			last = now

			l.eng.Step(frame)
			frame.Clear()

			st := l.eng.Snapshot()
			if l.observer != nil {
				l.observer(st)
			}
			if st.GameOver() {
				return nil
			}
		}
	}
}

// Destroy cancels the loop and any pending tick. Idempotent; safe to call
// whether or not Run is active.
func (l *Loop) Destroy() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
