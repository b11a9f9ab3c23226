package scheduler

import "golang.org/x/exp/slices"

// FCFSScheduler runs processes in order of (priority, arrival_tick), never
// preempting a running process.
type FCFSScheduler struct {
	queue      []Process
	dispatches int
}

// NewFCFS constructs an empty first-come-first-served scheduler.
func NewFCFS() *FCFSScheduler {
	return &FCFSScheduler{}
}

func (s *FCFSScheduler) AddProcess(p Process) {
	s.queue = append(s.queue, p)
}

func (s *FCFSScheduler) NextProcess(currentTick int) Process {
	if len(s.queue) == 0 {
		return nil
	}
	slices.SortFunc(s.queue, func(a, b Process) int {
		if a.Priority() != b.Priority() {
			return a.Priority() - b.Priority()
		}
		return a.ArrivalTick() - b.ArrivalTick()
	})
	p := s.queue[0]
	s.queue = s.queue[1:]
	s.dispatches++
	return p
}

func (s *FCFSScheduler) OnTick() {}

func (s *FCFSScheduler) Len() int { return len(s.queue) }

func (s *FCFSScheduler) Dispatches() int { return s.dispatches }
