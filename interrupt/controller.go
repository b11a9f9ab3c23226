package interrupt

import "container/heap"

// Controller is a min-heap priority queue of pending interrupts: lower
// Priority dequeues earlier, with strict FIFO ordering among entries of
// equal priority via a monotonic insertion sequence.
type Controller struct {
	heap interruptHeap
	seq  uint64
}

// NewController constructs an empty controller.
func NewController() *Controller {
	return &Controller{}
}

// Raise enqueues i, assigning it the next insertion sequence number.
func (c *Controller) Raise(i Interrupt) {
	i.Sequence = c.seq
	c.seq++
	heap.Push(&c.heap, i)
}

// FetchNext dequeues and returns the highest-urgency pending interrupt, or
// false if none remain.
func (c *Controller) FetchNext() (Interrupt, bool) {
	if c.heap.Len() == 0 {
		return Interrupt{}, false
	}
	return heap.Pop(&c.heap).(Interrupt), true
}

// HasPending reports whether any interrupt is queued.
func (c *Controller) HasPending() bool { return c.heap.Len() > 0 }

// Clear discards all pending interrupts without dispatching them.
func (c *Controller) Clear() {
	c.heap = nil
}

// Len reports the number of pending interrupts.
func (c *Controller) Len() int { return c.heap.Len() }

type interruptHeap []Interrupt

func (h interruptHeap) Len() int { return len(h) }

func (h interruptHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].Sequence < h[j].Sequence
}

func (h interruptHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *interruptHeap) Push(x any) {
	*h = append(*h, x.(Interrupt))
}

func (h *interruptHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
