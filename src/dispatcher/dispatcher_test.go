package dispatcher

import (
	"testing"

	"liftsim/src/elev"
	"liftsim/src/types"
)

type startRecorder struct {
	started []int
}

func (s *startRecorder) Start(car *elev.Car, req types.Request) {
	s.started = append(s.started, car.ID)
}

func fleetAt(floors ...int) *elev.Fleet {
	fleet := elev.NewFleet(len(floors))
	fleet.ForEach(func(car *elev.Car) {
		car.Floor = floors[car.ID]
	})
	return fleet
}

func call(floor int, dir types.Direction) types.Request {
	return types.NewRequest(types.HallCall{Floor: floor, Dir: dir})
}

func busyCount(fleet *elev.Fleet) int {
	n := 0
	fleet.ForEach(func(car *elev.Car) {
		if car.Busy {
			n++
		}
	})
	return n
}

func TestAssignNearest(t *testing.T) {
	tests := []struct {
		name    string
		floors  []int
		busy    []int
		req     types.Request
		wantCar int
	}{
		{"nearest of three", []int{0, 5, 9}, nil, call(6, types.DirUp), 1},
		{"tie goes to fleet order", []int{3, 3}, nil, call(5, types.DirDown), 0},
		{"equal distance either side", []int{0, 4}, nil, call(2, types.DirUp), 0},
		{"car already at floor", []int{2, 4}, nil, call(4, types.DirDown), 1},
		{"busy nearer car skipped", []int{0, 5, 9}, []int{1}, call(6, types.DirUp), 2},
		{"only far car idle", []int{6, 0}, []int{0}, call(6, types.DirUp), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fleet := fleetAt(tt.floors...)
			for _, id := range tt.busy {
				fleet.Car(id).Assign(call(8, types.DirDown))
			}
			starter := &startRecorder{}
			d := New(fleet, starter)
			before := busyCount(fleet)

			if !d.Assign(tt.req) {
				t.Fatal("Assign() = false, want true")
			}
			if len(starter.started) != 1 || starter.started[0] != tt.wantCar {
				t.Fatalf("started cars %v, want [%d]", starter.started, tt.wantCar)
			}
			car := fleet.Car(tt.wantCar)
			if car.Target != tt.req.Call.Floor || car.Dir != tt.req.Call.Dir || car.Request != tt.req.ID {
				t.Errorf("chosen car state %+v", *car)
			}
			if got := busyCount(fleet) - before; got != 1 {
				t.Errorf("%d cars became busy, want 1", got)
			}
		})
	}
}

func TestAssignNoIdleCar(t *testing.T) {
	fleet := fleetAt(0, 3)
	fleet.Car(0).Assign(call(2, types.DirUp))
	fleet.Car(1).Assign(call(1, types.DirDown))
	starter := &startRecorder{}

	if New(fleet, starter).Assign(call(3, types.DirUp)) {
		t.Fatal("Assign() = true with every car busy")
	}
	if len(starter.started) != 0 {
		t.Errorf("started %v", starter.started)
	}
}

func TestAssignSkipsCoveredCall(t *testing.T) {
	fleet := fleetAt(0, 6)
	covered := call(7, types.DirUp)
	fleet.Car(0).Assign(covered)
	starter := &startRecorder{}
	d := New(fleet, starter)

	if d.Assign(call(7, types.DirUp)) {
		t.Fatal("second car dispatched to a call already being served")
	}
	if !fleet.Car(1).Idle() {
		t.Error("idle car was touched")
	}

	// Same floor, other direction is a different call.
	if !d.Assign(call(7, types.DirDown)) {
		t.Fatal("Assign() = false for the opposite direction")
	}
	if starter.started[0] != 1 {
		t.Errorf("started %v, want [1]", starter.started)
	}
}

func TestIdleCarsNeverCover(t *testing.T) {
	// Idle cars carry direction None and no target; they must not block
	// a call at any floor, including the one they stand at.
	fleet := fleetAt(0, 0)
	d := New(fleet, &startRecorder{})
	if coveringCar(fleet, types.HallCall{Floor: 0, Dir: types.DirUp}) != nil {
		t.Fatal("idle car reported as covering")
	}
	if !d.Assign(call(0, types.DirUp)) {
		t.Fatal("Assign() = false for a call at the cars' floor")
	}
}

func TestQueueDedup(t *testing.T) {
	q := NewQueue()
	if !q.Enqueue(call(3, types.DirUp)) {
		t.Fatal("first Enqueue() = false")
	}
	if q.Enqueue(call(3, types.DirUp)) {
		t.Error("duplicate Enqueue() = true")
	}
	if !q.Enqueue(call(3, types.DirDown)) {
		t.Error("other direction rejected")
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
	if !q.Contains(types.HallCall{Floor: 3, Dir: types.DirDown}) {
		t.Error("Contains() = false")
	}
}

func TestDequeueIfAssigned(t *testing.T) {
	q := NewQueue()
	first, second := call(1, types.DirUp), call(2, types.DirDown)
	q.Enqueue(first)
	q.Enqueue(second)

	var offered []types.Request
	if _, ok := q.DequeueIfAssigned(func(r types.Request) bool {
		offered = append(offered, r)
		return false
	}); ok {
		t.Fatal("dequeued although assign refused")
	}
	if len(offered) != 1 || offered[0] != first || q.Len() != 2 {
		t.Fatalf("offered %v, queue length %d", offered, q.Len())
	}

	got, ok := q.DequeueIfAssigned(func(types.Request) bool { return true })
	if !ok || got != first {
		t.Fatalf("DequeueIfAssigned() = %v, %v", got, ok)
	}
	if head, _ := q.Head(); head != second {
		t.Errorf("Head() = %v, want %v", head, second)
	}

	empty := NewQueue()
	if _, ok := empty.DequeueIfAssigned(func(types.Request) bool { return true }); ok {
		t.Error("dequeued from an empty queue")
	}
}

func TestRequestsIsACopy(t *testing.T) {
	q := NewQueue()
	q.Enqueue(call(1, types.DirUp))
	reqs := q.Requests()
	reqs[0].Call.Floor = 9
	if head, _ := q.Head(); head.Call.Floor != 1 {
		t.Error("Requests() exposes queue storage")
	}
}

func TestDrainStopsAtBlockedHead(t *testing.T) {
	fleet := fleetAt(0, 0, 0)
	fleet.Car(0).Assign(call(5, types.DirUp))
	starter := &startRecorder{}
	d := New(fleet, starter)

	q := NewQueue()
	q.Enqueue(call(5, types.DirUp)) // covered by car 0
	q.Enqueue(call(2, types.DirDown))

	if assigned := d.Drain(q); len(assigned) != 0 {
		t.Fatalf("Drain() assigned %v behind a blocked head", assigned)
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
}

func TestDrainServesWhileCarsIdle(t *testing.T) {
	fleet := fleetAt(0, 0)
	starter := &startRecorder{}
	d := New(fleet, starter)

	q := NewQueue()
	q.Enqueue(call(1, types.DirUp))
	q.Enqueue(call(2, types.DirUp))
	q.Enqueue(call(3, types.DirUp))

	assigned := d.Drain(q)
	if len(assigned) != 2 {
		t.Fatalf("Drain() assigned %d requests, want 2", len(assigned))
	}
	if head, _ := q.Head(); head.Call.Floor != 3 {
		t.Errorf("Head() = %v, want floor 3", head)
	}
	if busyCount(fleet) != 2 {
		t.Errorf("%d busy cars, want 2", busyCount(fleet))
	}
}
