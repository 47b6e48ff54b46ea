package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NoTarget marks a car without a destination.
const NoTarget = -1

type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "none", "":
		return DirNone, nil
	}
	return DirNone, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// HallCall is a request for a car at Floor going in Dir.
type HallCall struct {
	Floor int       `json:"floor"`
	Dir   Direction `json:"dir"`
}

func (c HallCall) String() string {
	return fmt.Sprintf("%s(%d)", c.Dir, c.Floor)
}

// Request is a queued hall call. ID follows the call through every event.
type Request struct {
	ID   uuid.UUID `json:"id"`
	Call HallCall  `json:"call"`
}

func NewRequest(call HallCall) Request {
	return Request{ID: uuid.New(), Call: call}
}
