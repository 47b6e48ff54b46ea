// State types are defined in elev package to make method receivers possible in elev_state.go.
package elev

import (
	"github.com/google/uuid"

	"liftsim/src/types"
)

// Car is the state of one elevator car.
//   - Busy is false exactly when Phase is Idle
//   - an idle car has Target == types.NoTarget and Dir == types.DirNone
//   - Floor only changes when a Moving phase completes
type Car struct {
	ID      int
	Floor   int
	Busy    bool
	Target  int
	Dir     types.Direction
	Phase   types.CarPhase
	Request uuid.UUID
	Call    types.HallCall
}

// Fleet owns the cars. Its size never changes after NewFleet.
type Fleet struct {
	cars []Car
}
