package sim

import (
	"log/slog"

	"liftsim/src/elev"
	"liftsim/src/types"
)

// LogNotifier writes every event to the default logger.
type LogNotifier struct{}

func (LogNotifier) Notify(ev types.Event) {
	switch ev.Kind {
	case types.CallQueued:
		slog.Info("Call queued", "call", elev.FormatCall(ev.Call), "request", ev.Request)
	case types.CarDeparted:
		slog.Info("Car departed", "car", ev.CarID, "from", ev.From, "to", ev.To, "travel", ev.Travel)
	case types.CarIdle:
		slog.Info("Car idle", "car", ev.CarID, "floor", ev.Floor, "served", elev.FormatCall(ev.Call))
	default:
		slog.Debug("Event", "kind", ev.Kind, "car", ev.CarID, "floor", ev.Floor, "at", ev.At)
	}
}
