package dispatcher

import (
	"log/slog"

	"liftsim/src/elev"
	"liftsim/src/types"
)

// Starter begins the travel phase of a car that was just assigned.
type Starter interface {
	Start(car *elev.Car, req types.Request)
}

// Dispatcher chooses which idle car serves a request.
type Dispatcher struct {
	fleet   *elev.Fleet
	starter Starter
}

func New(fleet *elev.Fleet, starter Starter) *Dispatcher {
	return &Dispatcher{fleet: fleet, starter: starter}
}

// Assign gives req to the nearest idle car and starts it. It returns false,
// leaving every car untouched, when no idle car is available or when a car
// is already heading to the same floor in the same direction.
func (d *Dispatcher) Assign(req types.Request) bool {
	if covering := coveringCar(d.fleet, req.Call); covering != nil {
		slog.Debug("Call already covered, waiting",
			"call", elev.FormatCall(req.Call),
			"car", covering.ID)
		return false
	}

	car := nearestIdleCar(d.fleet, req.Call)
	if car == nil {
		slog.Debug("No idle car for call", "call", elev.FormatCall(req.Call))
		return false
	}

	slog.Info("Assigning call",
		"call", elev.FormatCall(req.Call),
		"car", car.ID,
		"from", car.Floor,
		"distance", car.Distance(req.Call.Floor))
	car.Assign(req)
	d.starter.Start(car, req)
	return true
}

// Drain assigns queued requests from the head until the head cannot be
// served. It returns the requests that were assigned.
func (d *Dispatcher) Drain(q *Queue) []types.Request {
	var assigned []types.Request
	for {
		req, ok := q.DequeueIfAssigned(d.Assign)
		if !ok {
			return assigned
		}
		assigned = append(assigned, req)
	}
}
