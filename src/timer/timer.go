package timer

import (
	"log/slog"
	"sync"
	"time"

	"liftsim/src/types"
)

// Scheduler runs the timed phases of the cars. Completions are delivered
// back to the simulation one at a time, never concurrently with each other.
type Scheduler interface {
	Now() time.Duration
	Schedule(after time.Duration, timeout types.PhaseTimeout)
}

// Real schedules on the wall clock. Completions arrive on C and must be
// consumed by the simulation loop.
type Real struct {
	start    time.Time
	timeouts chan types.PhaseTimeout
	done     chan struct{}
	stopOnce sync.Once
}

func NewReal() *Real {
	return &Real{
		start:    time.Now(),
		timeouts: make(chan types.PhaseTimeout),
		done:     make(chan struct{}),
	}
}

func (r *Real) Now() time.Duration {
	return time.Since(r.start)
}

func (r *Real) Schedule(after time.Duration, timeout types.PhaseTimeout) {
	time.AfterFunc(after, func() {
		select {
		case r.timeouts <- timeout:
			slog.Debug("Timer timed out", "car", timeout.CarID, "phase", timeout.Phase)
		case <-r.done:
		}
	})
}

func (r *Real) C() <-chan types.PhaseTimeout {
	return r.timeouts
}

// Stop releases timers that are still waiting for delivery.
func (r *Real) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}
