package timer

import (
	"container/heap"
	"time"

	"liftsim/src/types"
)

// Virtual is a simulated clock. Time only moves on Advance or Drain, and due
// completions are handed to the attached handler in due order; timeouts
// scheduled for the same instant fire in the order they were scheduled.
type Virtual struct {
	now     time.Duration
	seq     uint64
	pending timeoutHeap
	handler func(types.PhaseTimeout)
}

func NewVirtual() *Virtual {
	return &Virtual{}
}

// Attach sets the function that receives completions.
func (v *Virtual) Attach(handler func(types.PhaseTimeout)) {
	v.handler = handler
}

func (v *Virtual) Now() time.Duration {
	return v.now
}

func (v *Virtual) Schedule(after time.Duration, timeout types.PhaseTimeout) {
	if after < 0 {
		after = 0
	}
	v.seq++
	heap.Push(&v.pending, scheduled{due: v.now + after, seq: v.seq, timeout: timeout})
}

func (v *Virtual) Pending() int {
	return v.pending.Len()
}

// Advance moves the clock forward by d, firing everything due on the way.
// Timeouts scheduled by the handler are fired too if they fall inside d.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now + d
	for v.pending.Len() > 0 && v.pending[0].due <= target {
		v.fireNext()
	}
	v.now = target
}

// Drain fires completions until none are pending.
func (v *Virtual) Drain() {
	for v.pending.Len() > 0 {
		v.fireNext()
	}
}

func (v *Virtual) fireNext() {
	next := heap.Pop(&v.pending).(scheduled)
	v.now = next.due
	if v.handler != nil {
		v.handler(next.timeout)
	}
}

type scheduled struct {
	due     time.Duration
	seq     uint64
	timeout types.PhaseTimeout
}

type timeoutHeap []scheduled

func (h timeoutHeap) Len() int { return len(h) }

func (h timeoutHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timeoutHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timeoutHeap) Push(x any) { *h = append(*h, x.(scheduled)) }

func (h *timeoutHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
