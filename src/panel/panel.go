// Package panel connects the hall buttons of a building to the simulation.
package panel

import (
	"context"
	"log/slog"

	"liftsim/lib/driver-go/elevio"
	"liftsim/src/elev"
	"liftsim/src/types"
)

type Lamps interface {
	SetButtonLamp(button elevio.ButtonType, floor int, value bool) error
}

type Submitter interface {
	Submit(ctx context.Context, call types.HallCall) error
}

// Forward submits a call for every hall button press until ctx is cancelled
// or presses is closed.
func Forward(ctx context.Context, presses <-chan elevio.ButtonEvent, sim Submitter) {
	for {
		select {
		case <-ctx.Done():
			return
		case btn, ok := <-presses:
			if !ok {
				return
			}
			call, ok := callFor(btn)
			if !ok {
				continue
			}
			if err := sim.Submit(ctx, call); err != nil {
				slog.Warn("Hall call rejected", "call", elev.FormatCall(call), "err", err)
			}
		}
	}
}

func callFor(btn elevio.ButtonEvent) (types.HallCall, bool) {
	switch btn.Button {
	case elevio.BT_HallUp:
		return types.HallCall{Floor: btn.Floor, Dir: types.DirUp}, true
	case elevio.BT_HallDown:
		return types.HallCall{Floor: btn.Floor, Dir: types.DirDown}, true
	}
	return types.HallCall{}, false
}

func buttonFor(dir types.Direction) (elevio.ButtonType, bool) {
	switch dir {
	case types.DirUp:
		return elevio.BT_HallUp, true
	case types.DirDown:
		return elevio.BT_HallDown, true
	}
	return 0, false
}
