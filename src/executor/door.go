package executor

import (
	"log/slog"

	"liftsim/src/elev"
	"liftsim/src/types"
)

// openDoor holds the doors open for boarding. The car must already be in DoorsOpen.
func (c *Controller) openDoor(car *elev.Car) {
	c.emit(types.Event{Kind: types.DoorsOpened, CarID: car.ID, Floor: car.Floor, Request: car.Request, Call: car.Call})
	slog.Debug("Doors open", "car", car.ID, "floor", car.Floor)
	c.sched.Schedule(c.doorOpenDuration, types.PhaseTimeout{CarID: car.ID, Phase: types.DoorsOpen})
}

func (c *Controller) closeDoor(car *elev.Car) {
	car.BeginClosing()
	c.emit(types.Event{Kind: types.DoorsClosingStarted, CarID: car.ID, Floor: car.Floor, Request: car.Request, Call: car.Call})
	slog.Debug("Doors closing", "car", car.ID, "floor", car.Floor)
	c.sched.Schedule(c.doorCloseDuration, types.PhaseTimeout{CarID: car.ID, Phase: types.DoorsClosing})
}
