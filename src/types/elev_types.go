package types

type CarPhase int

const (
	Idle CarPhase = iota
	Moving
	DoorsOpen
	DoorsClosing
)

func (p CarPhase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case DoorsOpen:
		return "doors-open"
	case DoorsClosing:
		return "doors-closing"
	}
	return "unknown"
}

func (p CarPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PhaseTimeout signals that CarID has finished its timed Phase.
type PhaseTimeout struct {
	CarID int
	Phase CarPhase
}
