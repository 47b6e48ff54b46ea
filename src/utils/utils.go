package utils

import (
	"fmt"
	"io"

	"liftsim/src/elev"
	"liftsim/src/sim"
	"liftsim/src/types"
)

// ForEachHallCall calls action for every hall button that exists in a
// building with numFloors floors, bottom up, Up before Down.
func ForEachHallCall(numFloors int, action func(call types.HallCall)) {
	for floor := 0; floor < numFloors; floor++ {
		if floor < numFloors-1 {
			action(types.HallCall{Floor: floor, Dir: types.DirUp})
		}
		if floor > 0 {
			action(types.HallCall{Floor: floor, Dir: types.DirDown})
		}
	}
}

// PrintStatus writes one line per car followed by the waiting calls.
func PrintStatus(w io.Writer, status sim.Status) {
	fmt.Fprintf(w, "t=%v\n", status.At)
	for _, car := range status.Cars {
		if car.Busy {
			fmt.Fprintf(w, "  car %d | floor %d | %-12v | -> %d serving %s\n",
				car.ID, car.Floor, car.Phase, car.Target, elev.FormatCall(car.Call))
		} else {
			fmt.Fprintf(w, "  car %d | floor %d | %-12v\n", car.ID, car.Floor, car.Phase)
		}
	}
	if len(status.Queue) == 0 {
		fmt.Fprintln(w, "  queue empty")
		return
	}
	fmt.Fprint(w, "  queue:")
	for _, req := range status.Queue {
		fmt.Fprintf(w, " %s", elev.FormatCall(req.Call))
	}
	fmt.Fprintln(w)
}
