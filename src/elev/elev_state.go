package elev

import (
	"github.com/google/uuid"

	"liftsim/src/types"
)

func newCar(id int) Car {
	return Car{
		ID:     id,
		Floor:  0,
		Target: types.NoTarget,
		Dir:    types.DirNone,
		Phase:  types.Idle,
	}
}

func (car *Car) Idle() bool {
	return !car.Busy
}

// Heading reports whether the car is on its way to serve call.
func (car *Car) Heading(call types.HallCall) bool {
	return car.Busy && car.Target == call.Floor && car.Dir == call.Dir
}

// Assign marks the car busy with req and puts it in the Moving phase.
func (car *Car) Assign(req types.Request) {
	car.Busy = true
	car.Target = req.Call.Floor
	car.Dir = req.Call.Dir
	car.Phase = types.Moving
	car.Request = req.ID
	car.Call = req.Call
}

// Arrive completes the Moving phase.
func (car *Car) Arrive() {
	car.Floor = car.Target
	car.Phase = types.DoorsOpen
}

func (car *Car) BeginClosing() {
	car.Phase = types.DoorsClosing
}

// Release returns the car to Idle and gives back the request it served.
func (car *Car) Release() types.Request {
	served := types.Request{ID: car.Request, Call: car.Call}
	car.Busy = false
	car.Target = types.NoTarget
	car.Dir = types.DirNone
	car.Phase = types.Idle
	car.Request = uuid.Nil
	car.Call = types.HallCall{}
	return served
}

// Distance is the number of floors between the car and floor.
func (car *Car) Distance(floor int) int {
	return abs(car.Floor - floor)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
