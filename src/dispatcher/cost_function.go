package dispatcher

import (
	"liftsim/src/elev"
	"liftsim/src/types"
)

// nearestIdleCar picks the idle car closest to call.Floor. Ties go to the
// car that comes first in fleet order.
func nearestIdleCar(fleet *elev.Fleet, call types.HallCall) *elev.Car {
	var nearest *elev.Car
	fleet.ForEach(func(car *elev.Car) {
		if !car.Idle() {
			return
		}
		if nearest == nil || car.Distance(call.Floor) < nearest.Distance(call.Floor) {
			nearest = car
		}
	})
	return nearest
}

// coveringCar returns the car already on its way to serve call, if any.
// Idle cars have no target and direction None, so they never cover a call.
func coveringCar(fleet *elev.Fleet, call types.HallCall) *elev.Car {
	var covering *elev.Car
	fleet.ForEach(func(car *elev.Car) {
		if covering == nil && car.Heading(call) {
			covering = car
		}
	})
	return covering
}
