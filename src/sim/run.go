package sim

import (
	"context"
	"log/slog"

	"liftsim/src/elev"
	"liftsim/src/types"
)

// Run is the simulation loop. It serialises submitted calls, phase
// completions and status requests until ctx is cancelled.
func (s *Simulation) Run(ctx context.Context, timeouts <-chan types.PhaseTimeout) error {
	defer close(s.done)
	slog.Info("Simulation running", "floors", s.cfg.NumFloors, "lifts", s.cfg.NumCars)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Simulation stopped")
			return ctx.Err()
		case cmd := <-s.calls:
			cmd.reply <- s.RequestCall(cmd.call)
		case timeout := <-timeouts:
			s.HandleTimeout(timeout)
		case reply := <-s.statusCh:
			reply <- s.Status()
		}
	}
}

// Submit hands call to a running loop. Safe for concurrent use.
func (s *Simulation) Submit(ctx context.Context, call types.HallCall) error {
	if err := s.ValidateCall(call); err != nil {
		return err
	}
	cmd := callCmd{call: call, reply: make(chan error, 1)}
	select {
	case s.calls <- cmd:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// The loop answers every command it accepts.
	err := <-cmd.reply
	if err == nil {
		slog.Debug("Call submitted", "call", elev.FormatCall(call))
	}
	return err
}

// Snapshot asks a running loop for its Status. Safe for concurrent use.
func (s *Simulation) Snapshot(ctx context.Context) (Status, error) {
	reply := make(chan Status, 1)
	select {
	case s.statusCh <- reply:
	case <-s.done:
		return Status{}, ErrStopped
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
	return <-reply, nil
}
