// Package sim wires the fleet, the request queue, the dispatcher and the car
// controller into one simulation. All state is mutated from a single logical
// thread: either the caller's goroutine when driving the simulation directly
// (as tests do with a virtual clock) or the goroutine running Run.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"liftsim/src/config"
	"liftsim/src/dispatcher"
	"liftsim/src/elev"
	"liftsim/src/executor"
	"liftsim/src/timer"
	"liftsim/src/types"
)

var (
	ErrInvalidCall = errors.New("invalid call")
	ErrStopped     = errors.New("simulation stopped")
)

// Status is a detached copy of the simulation state.
type Status struct {
	At    time.Duration
	Cars  []elev.Car
	Queue []types.Request
}

type Simulation struct {
	cfg        config.Config
	sched      timer.Scheduler
	fleet      *elev.Fleet
	queue      *dispatcher.Queue
	dispatcher *dispatcher.Dispatcher
	controller *executor.Controller
	observers  []types.Notifier

	calls    chan callCmd
	statusCh chan chan Status
	done     chan struct{}
}

type callCmd struct {
	call  types.HallCall
	reply chan error
}

// New validates cfg before building any state.
func New(cfg config.Config, sched timer.Scheduler) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:      cfg,
		sched:    sched,
		fleet:    elev.NewFleet(cfg.NumCars),
		queue:    dispatcher.NewQueue(),
		calls:    make(chan callCmd),
		statusCh: make(chan chan Status),
		done:     make(chan struct{}),
	}
	s.controller = executor.New(cfg, sched, types.NotifierFunc(s.publish))
	s.dispatcher = dispatcher.New(s.fleet, s.controller)
	return s, nil
}

func (s *Simulation) Config() config.Config {
	return s.cfg
}

// Subscribe registers an observer. It must be called before Run.
func (s *Simulation) Subscribe(n types.Notifier) {
	s.observers = append(s.observers, n)
}

func (s *Simulation) publish(ev types.Event) {
	for _, n := range s.observers {
		n.Notify(ev)
	}
}

// ValidateCall checks that call names a hall button that exists: no Up at
// the top floor and no Down at the ground floor.
func (s *Simulation) ValidateCall(call types.HallCall) error {
	if call.Floor < 0 || call.Floor > s.cfg.TopFloor() {
		return fmt.Errorf("%w: floor %d outside 0..%d", ErrInvalidCall, call.Floor, s.cfg.TopFloor())
	}
	switch {
	case call.Dir == types.DirUp && call.Floor == s.cfg.TopFloor():
		return fmt.Errorf("%w: no up call at top floor %d", ErrInvalidCall, call.Floor)
	case call.Dir == types.DirDown && call.Floor == 0:
		return fmt.Errorf("%w: no down call at floor 0", ErrInvalidCall)
	case call.Dir != types.DirUp && call.Dir != types.DirDown:
		return fmt.Errorf("%w: direction %v", ErrInvalidCall, call.Dir)
	}
	return nil
}

// RequestCall queues call and tries to dispatch. A call equal to one that is
// already queued is dropped without error.
func (s *Simulation) RequestCall(call types.HallCall) error {
	if err := s.ValidateCall(call); err != nil {
		return err
	}
	req := types.NewRequest(call)
	if !s.queue.Enqueue(req) {
		slog.Debug("Duplicate call ignored", "call", elev.FormatCall(call))
		return nil
	}
	s.publish(types.Event{
		Kind:    types.CallQueued,
		At:      s.sched.Now(),
		CarID:   -1,
		Floor:   call.Floor,
		Request: req.ID,
		Call:    call,
	})
	s.dispatch()
	return nil
}

// HandleTimeout advances the car whose phase ended. A car that becomes idle
// immediately picks up whatever is waiting in the queue.
func (s *Simulation) HandleTimeout(timeout types.PhaseTimeout) {
	car := s.fleet.Car(timeout.CarID)
	if car == nil {
		slog.Warn("Timeout for unknown car", "car", timeout.CarID)
		return
	}
	if s.controller.HandleTimeout(car, timeout) {
		s.dispatch()
	}
}

func (s *Simulation) dispatch() {
	if assigned := s.dispatcher.Drain(s.queue); len(assigned) > 0 {
		slog.Debug("Dispatched", "assigned", len(assigned), "waiting", s.queue.Len())
	}
}

func (s *Simulation) Status() Status {
	cars, err := s.fleet.Snapshot()
	if err != nil {
		slog.Error("Snapshot failed", "err", err)
	}
	return Status{
		At:    s.sched.Now(),
		Cars:  cars,
		Queue: s.queue.Requests(),
	}
}
