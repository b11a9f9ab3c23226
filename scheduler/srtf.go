package scheduler

import "golang.org/x/exp/slices"

// SRTFScheduler runs processes in order of (priority, remaining_ticks),
// preempting the running process whenever a queued process is strictly
// better by that ordering.
type SRTFScheduler struct {
	queue      []Process
	dispatches int
}

// NewSRTF constructs an empty shortest-remaining-time-first scheduler.
func NewSRTF() *SRTFScheduler {
	return &SRTFScheduler{}
}

func (s *SRTFScheduler) AddProcess(p Process) {
	s.queue = append(s.queue, p)
}

func (s *SRTFScheduler) sort() {
	slices.SortFunc(s.queue, func(a, b Process) int {
		if a.Priority() != b.Priority() {
			return a.Priority() - b.Priority()
		}
		return a.RemainingTicks() - b.RemainingTicks()
	})
}

// NextProcess dequeues the best-ranked READY process, used to fill an idle
// CPU. It does not consider any process currently RUNNING elsewhere; use
// Preempt for that comparison.
func (s *SRTFScheduler) NextProcess(currentTick int) Process {
	if len(s.queue) == 0 {
		return nil
	}
	s.sort()
	p := s.queue[0]
	s.queue = s.queue[1:]
	s.dispatches++
	return p
}

// Preempt compares running against the best-ranked queued process. If the
// queued process is strictly better (lower priority, or equal priority and
// lower remaining_ticks), it dequeues and returns it with preempted=true;
// the caller is responsible for re-queuing running via AddProcess.
func (s *SRTFScheduler) Preempt(running Process, currentTick int) (next Process, preempted bool) {
	if running == nil || len(s.queue) == 0 {
		return nil, false
	}
	s.sort()
	best := s.queue[0]
	better := best.Priority() < running.Priority() ||
		(best.Priority() == running.Priority() && best.RemainingTicks() < running.RemainingTicks())
	if !better {
		return nil, false
	}
	s.queue = s.queue[1:]
	s.dispatches++
	return best, true
}

func (s *SRTFScheduler) OnTick() {}

func (s *SRTFScheduler) Len() int { return len(s.queue) }

func (s *SRTFScheduler) Dispatches() int { return s.dispatches }
