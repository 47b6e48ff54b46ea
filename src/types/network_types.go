package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventKind int

const (
	CallQueued EventKind = iota
	CallAssigned
	CarDeparted
	DoorsOpened
	DoorsClosingStarted
	DoorsClosed
	CarIdle
)

var eventKindNames = [...]string{
	CallQueued:          "call-queued",
	CallAssigned:        "call-assigned",
	CarDeparted:         "car-departed",
	DoorsOpened:         "doors-opened",
	DoorsClosingStarted: "doors-closing",
	DoorsClosed:         "doors-closed",
	CarIdle:             "car-idle",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventKindNames[k]
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) error {
	for i, name := range eventKindNames {
		if name == string(text) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event is a state change notification for observers of the simulation.
// Fields that do not apply to Kind are left zero.
type Event struct {
	Kind    EventKind     `json:"kind"`
	At      time.Duration `json:"at"`
	CarID   int           `json:"car"`
	Floor   int           `json:"floor"`
	From    int           `json:"from"`
	To      int           `json:"to"`
	Travel  time.Duration `json:"travel"`
	Request uuid.UUID     `json:"request"`
	Call    HallCall      `json:"call"`
}

type Notifier interface {
	Notify(ev Event)
}

type NotifierFunc func(ev Event)

func (f NotifierFunc) Notify(ev Event) { f(ev) }
