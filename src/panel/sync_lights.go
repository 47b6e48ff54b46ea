package panel

import (
	"errors"
	"log/slog"

	"liftsim/src/types"
	"liftsim/src/utils"
)

// Lights keeps a hall lamp lit while at least one request for its call is
// waiting or being served. It is a Notifier and runs on the simulation loop.
type Lights struct {
	lamps       Lamps
	outstanding map[types.HallCall]int
}

func NewLights(lamps Lamps) *Lights {
	return &Lights{lamps: lamps, outstanding: make(map[types.HallCall]int)}
}

func (l *Lights) Notify(ev types.Event) {
	switch ev.Kind {
	case types.CallQueued:
		l.outstanding[ev.Call]++
		if l.outstanding[ev.Call] == 1 {
			l.set(ev.Call, true)
		}
	case types.CarIdle:
		if l.outstanding[ev.Call] == 0 {
			return
		}
		l.outstanding[ev.Call]--
		if l.outstanding[ev.Call] == 0 {
			delete(l.outstanding, ev.Call)
			l.set(ev.Call, false)
		}
	}
}

// ClearLamps turns off every hall lamp. Run it before the first call.
func ClearLamps(lamps Lamps, numFloors int) error {
	var errs []error
	utils.ForEachHallCall(numFloors, func(call types.HallCall) {
		button, _ := buttonFor(call.Dir)
		if err := lamps.SetButtonLamp(button, call.Floor, false); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// Lit reports whether the lamp for call is on.
func (l *Lights) Lit(call types.HallCall) bool {
	return l.outstanding[call] > 0
}

func (l *Lights) set(call types.HallCall, on bool) {
	button, ok := buttonFor(call.Dir)
	if !ok {
		return
	}
	if err := l.lamps.SetButtonLamp(button, call.Floor, on); err != nil {
		slog.Error("Could not set hall lamp", "floor", call.Floor, "dir", call.Dir, "err", err)
	}
}
