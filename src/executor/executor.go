package executor

import (
	"log/slog"
	"time"

	"liftsim/src/config"
	"liftsim/src/elev"
	"liftsim/src/timer"
	"liftsim/src/types"
)

// Controller drives each car through
// Idle -> Moving -> DoorsOpen -> DoorsClosing -> Idle.
// Every timed phase ends with a PhaseTimeout handed back to HandleTimeout.
type Controller struct {
	travelDuration    time.Duration
	doorOpenDuration  time.Duration
	doorCloseDuration time.Duration
	sched             timer.Scheduler
	notify            types.Notifier
}

func New(cfg config.Config, sched timer.Scheduler, notify types.Notifier) *Controller {
	return &Controller{
		travelDuration:    cfg.TravelDuration,
		doorOpenDuration:  cfg.DoorOpenDuration,
		doorCloseDuration: cfg.DoorCloseDuration,
		sched:             sched,
		notify:            notify,
	}
}

// TravelTime is the length of the Moving phase between two floors.
func (c *Controller) TravelTime(from, to int) time.Duration {
	distance := from - to
	if distance < 0 {
		distance = -distance
	}
	return time.Duration(distance) * c.travelDuration
}

// Start is called once a car has been assigned req. A car that is already at
// the requested floor still passes through a zero-length Moving phase.
func (c *Controller) Start(car *elev.Car, req types.Request) {
	travel := c.TravelTime(car.Floor, car.Target)
	c.emit(types.Event{
		Kind:    types.CallAssigned,
		CarID:   car.ID,
		Floor:   req.Call.Floor,
		Request: req.ID,
		Call:    req.Call,
	})
	c.emit(types.Event{
		Kind:    types.CarDeparted,
		CarID:   car.ID,
		Floor:   car.Floor,
		From:    car.Floor,
		To:      car.Target,
		Travel:  travel,
		Request: req.ID,
		Call:    req.Call,
	})
	slog.Debug("Car departing", "car", car.ID, "from", car.Floor, "to", car.Target, "travel", travel)
	c.sched.Schedule(travel, types.PhaseTimeout{CarID: car.ID, Phase: types.Moving})
}

// HandleTimeout advances car past the phase that just finished. It returns
// true when the car has become idle and can take a new request.
func (c *Controller) HandleTimeout(car *elev.Car, timeout types.PhaseTimeout) bool {
	if car.Phase != timeout.Phase {
		slog.Warn("Ignoring timeout for a phase the car is not in",
			"car", car.ID,
			"phase", car.Phase,
			"timeout", timeout.Phase)
		return false
	}

	switch car.Phase {
	case types.Moving:
		car.Arrive()
		c.openDoor(car)
	case types.DoorsOpen:
		c.closeDoor(car)
	case types.DoorsClosing:
		served := car.Release()
		c.emit(types.Event{Kind: types.DoorsClosed, CarID: car.ID, Floor: car.Floor, Request: served.ID, Call: served.Call})
		c.emit(types.Event{Kind: types.CarIdle, CarID: car.ID, Floor: car.Floor, Request: served.ID, Call: served.Call})
		slog.Debug("Car idle", "car", car.ID, "floor", car.Floor)
		return true
	default:
		slog.Warn("Timeout for idle car", "car", car.ID)
	}
	return false
}

func (c *Controller) emit(ev types.Event) {
	ev.At = c.sched.Now()
	c.notify.Notify(ev)
}
