package scheduler

import "golang.org/x/exp/slices"

// RoundRobinScheduler is a FIFO queue re-sorted by priority at dequeue time,
// preemptive by quantum. The quantum itself is enforced by the engine, which
// increments quantum_used on the RUNNING process and re-queues it via
// AddProcess when the quantum is exhausted; the scheduler only remembers the
// configured value for callers that need it.
type RoundRobinScheduler struct {
	quantum    int
	queue      []Process
	dispatches int
}

// NewRoundRobin constructs an empty round-robin scheduler with the given
// quantum (consecutive ticks a process may run before preemption).
func NewRoundRobin(quantum int) *RoundRobinScheduler {
	return &RoundRobinScheduler{quantum: quantum}
}

// Quantum returns the configured quantum.
func (s *RoundRobinScheduler) Quantum() int { return s.quantum }

func (s *RoundRobinScheduler) AddProcess(p Process) {
	s.queue = append(s.queue, p)
}

func (s *RoundRobinScheduler) NextProcess(currentTick int) Process {
	if len(s.queue) == 0 {
		return nil
	}
	slices.SortStableFunc(s.queue, func(a, b Process) int {
		return a.Priority() - b.Priority()
	})
	p := s.queue[0]
	s.queue = s.queue[1:]
	s.dispatches++
	return p
}

func (s *RoundRobinScheduler) OnTick() {}

func (s *RoundRobinScheduler) Len() int { return len(s.queue) }

func (s *RoundRobinScheduler) Dispatches() int { return s.dispatches }
