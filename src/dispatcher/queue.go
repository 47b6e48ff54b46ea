package dispatcher

import (
	"slices"

	"liftsim/src/types"
)

// Queue holds pending hall calls in arrival order, at most one per
// (floor, direction).
type Queue struct {
	requests []types.Request
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends req unless an equal call is already queued.
func (q *Queue) Enqueue(req types.Request) bool {
	if q.Contains(req.Call) {
		return false
	}
	q.requests = append(q.requests, req)
	return true
}

func (q *Queue) Contains(call types.HallCall) bool {
	return slices.ContainsFunc(q.requests, func(r types.Request) bool {
		return r.Call == call
	})
}

func (q *Queue) Head() (types.Request, bool) {
	if len(q.requests) == 0 {
		return types.Request{}, false
	}
	return q.requests[0], true
}

// DequeueIfAssigned offers the head to assign and removes it only when
// assign accepts it. Requests behind the head are never considered.
func (q *Queue) DequeueIfAssigned(assign func(types.Request) bool) (types.Request, bool) {
	head, ok := q.Head()
	if !ok || !assign(head) {
		return types.Request{}, false
	}
	q.requests = q.requests[1:]
	return head, true
}

func (q *Queue) Len() int {
	return len(q.requests)
}

// Requests returns a copy of the queue, head first.
func (q *Queue) Requests() []types.Request {
	return slices.Clone(q.requests)
}
