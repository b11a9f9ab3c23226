package scheduler

import "golang.org/x/exp/slices"

// DefaultAgingInterval is the number of ticks between aging passes when the
// caller does not specify one.
const DefaultAgingInterval = 10

// AgingWaitThreshold is the waiting_ticks value a READY process must exceed
// before an aging pass promotes it.
const AgingWaitThreshold = 20

// PriorityScheduler runs processes in order of lowest priority value,
// preemptive, with aging: every aging_interval ticks it decrements (floor 0)
// the priority of any queued process that has waited more than
// AgingWaitThreshold ticks.
type PriorityScheduler struct {
	agingInterval int
	ticksSinceAge int
	queue         []Process
	dispatches    int
}

// NewPriority constructs an empty priority scheduler with the given aging
// interval. A non-positive interval falls back to DefaultAgingInterval.
func NewPriority(agingInterval int) *PriorityScheduler {
	if agingInterval <= 0 {
		agingInterval = DefaultAgingInterval
	}
	return &PriorityScheduler{agingInterval: agingInterval}
}

func (s *PriorityScheduler) AddProcess(p Process) {
	s.queue = append(s.queue, p)
}

func (s *PriorityScheduler) sort() {
	slices.SortStableFunc(s.queue, func(a, b Process) int {
		return a.Priority() - b.Priority()
	})
}

func (s *PriorityScheduler) NextProcess(currentTick int) Process {
	if len(s.queue) == 0 {
		return nil
	}
	s.sort()
	p := s.queue[0]
	s.queue = s.queue[1:]
	s.dispatches++
	return p
}

// OnTick advances the aging counter, applying an aging pass to the queue
// whenever it reaches the configured interval.
func (s *PriorityScheduler) OnTick() {
	s.ticksSinceAge++
	if s.ticksSinceAge < s.agingInterval {
		return
	}
	s.ticksSinceAge = 0
	for _, p := range s.queue {
		if p.WaitingTicks() > AgingWaitThreshold && p.Priority() > 0 {
			p.SetPriority(p.Priority() - 1)
		}
	}
}

// Preempt reports whether the best-ranked queued process has a strictly
// lower priority value than running; if so it is dequeued and returned, and
// the caller must re-queue running via AddProcess.
func (s *PriorityScheduler) Preempt(running Process, currentTick int) (next Process, preempted bool) {
	if running == nil || len(s.queue) == 0 {
		return nil, false
	}
	s.sort()
	best := s.queue[0]
	if best.Priority() >= running.Priority() {
		return nil, false
	}
	s.queue = s.queue[1:]
	s.dispatches++
	return best, true
}

func (s *PriorityScheduler) Len() int { return len(s.queue) }

func (s *PriorityScheduler) Dispatches() int { return s.dispatches }
