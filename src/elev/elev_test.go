package elev

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"liftsim/src/types"
)

func TestNewFleet(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		fleet := NewFleet(n)
		if fleet.Len() != n {
			t.Fatalf("NewFleet(%d).Len() = %d", n, fleet.Len())
		}
		fleet.ForEach(func(car *Car) {
			if car.Floor != 0 || car.Busy || car.Target != types.NoTarget ||
				car.Dir != types.DirNone || car.Phase != types.Idle {
				t.Errorf("car %d not idle at floor 0: %+v", car.ID, *car)
			}
		})
	}
}

func TestFleetCarLookup(t *testing.T) {
	fleet := NewFleet(3)
	if car := fleet.Car(2); car == nil || car.ID != 2 {
		t.Errorf("Car(2) = %+v", car)
	}
	if fleet.Car(3) != nil || fleet.Car(-1) != nil {
		t.Error("out of range lookup returned a car")
	}
	fleet.Car(1).Floor = 5
	if fleet.Car(1).Floor != 5 {
		t.Error("Car does not return live state")
	}
}

func TestCarLifecycle(t *testing.T) {
	car := newCar(0)
	car.Floor = 2
	req := types.NewRequest(types.HallCall{Floor: 6, Dir: types.DirDown})

	car.Assign(req)
	if !car.Busy || car.Target != 6 || car.Dir != types.DirDown || car.Phase != types.Moving {
		t.Fatalf("after Assign: %+v", car)
	}
	if car.Floor != 2 {
		t.Errorf("Assign moved the car to %d", car.Floor)
	}
	if !car.Heading(req.Call) {
		t.Error("Heading() = false for assigned call")
	}
	if car.Heading(types.HallCall{Floor: 6, Dir: types.DirUp}) {
		t.Error("Heading() = true for other direction")
	}

	car.Arrive()
	if car.Floor != 6 || car.Phase != types.DoorsOpen || !car.Busy {
		t.Fatalf("after Arrive: %+v", car)
	}

	car.BeginClosing()
	if car.Phase != types.DoorsClosing {
		t.Fatalf("after BeginClosing: %+v", car)
	}

	served := car.Release()
	if served != req {
		t.Errorf("Release() = %+v, want %+v", served, req)
	}
	if car.Busy || car.Target != types.NoTarget || car.Dir != types.DirNone ||
		car.Phase != types.Idle || car.Request != uuid.Nil {
		t.Errorf("after Release: %+v", car)
	}
	if car.Floor != 6 {
		t.Errorf("Release moved the car to %d", car.Floor)
	}
}

func TestIdleCarCoversNothing(t *testing.T) {
	car := newCar(0)
	for floor := 0; floor < 4; floor++ {
		for _, dir := range []types.Direction{types.DirUp, types.DirDown, types.DirNone} {
			if car.Heading(types.HallCall{Floor: floor, Dir: dir}) {
				t.Errorf("idle car heading to %d %v", floor, dir)
			}
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	fleet := NewFleet(2)
	fleet.Car(0).Assign(types.NewRequest(types.HallCall{Floor: 3, Dir: types.DirUp}))

	snap, err := fleet.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 2 || !snap[0].Busy || snap[0].Target != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}

	snap[0].Floor = 9
	snap[1].Busy = true
	if fleet.Car(0).Floor != 0 || fleet.Car(1).Busy {
		t.Error("modifying the snapshot changed the fleet")
	}
}

func TestFormatCall(t *testing.T) {
	tests := []struct {
		call types.HallCall
		want string
	}{
		{types.HallCall{Floor: 2, Dir: types.DirUp}, "HallUp(2)"},
		{types.HallCall{Floor: 0, Dir: types.DirDown}, "HallDown(0)"},
		{types.HallCall{Floor: 1}, "Unknown"},
	}
	for _, tt := range tests {
		if got := FormatCall(tt.call); got != tt.want {
			t.Errorf("FormatCall(%v) = %q, want %q", tt.call, got, tt.want)
		}
	}
}

func TestLogHandlerFormatsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(&buf, slog.LevelDebug))
	logger.Debug("hello", "floor", 3)

	line := buf.String()
	if !strings.Contains(line, "source=elev_test.go:") {
		t.Errorf("source not shortened: %s", line)
	}
	if !strings.Contains(line, "floor=3") {
		t.Errorf("attribute missing: %s", line)
	}
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	if _, err := InitLogger("loud", ""); err == nil {
		t.Error("InitLogger accepted an unknown level")
	}
}

func TestInitLoggerWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closeFn, err := InitLogger("warn", filepath.Join(t.TempDir(), "liftsim.log"))
	if err != nil {
		t.Fatal(err)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}
}
