package scheduler

import "golang.org/x/exp/slices"

// SJFScheduler runs processes in order of (priority, duration_ticks),
// non-preemptively: once dispatched, a process keeps the CPU until it
// terminates or a higher layer (interrupts, quantum) intervenes.
type SJFScheduler struct {
	queue      []Process
	dispatches int
}

// NewSJF constructs an empty shortest-job-first scheduler.
func NewSJF() *SJFScheduler {
	return &SJFScheduler{}
}

func (s *SJFScheduler) AddProcess(p Process) {
	s.queue = append(s.queue, p)
}

func (s *SJFScheduler) NextProcess(currentTick int) Process {
	if len(s.queue) == 0 {
		return nil
	}
	slices.SortFunc(s.queue, func(a, b Process) int {
		if a.Priority() != b.Priority() {
			return a.Priority() - b.Priority()
		}
		return a.DurationTicks() - b.DurationTicks()
	})
	p := s.queue[0]
	s.queue = s.queue[1:]
	s.dispatches++
	return p
}

func (s *SJFScheduler) OnTick() {}

func (s *SJFScheduler) Len() int { return len(s.queue) }

func (s *SJFScheduler) Dispatches() int { return s.dispatches }
