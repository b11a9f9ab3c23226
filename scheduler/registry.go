package scheduler

// New constructs the scheduler identified by name. quantum applies to RR and
// PriorityRR; agingInterval applies to Priority. Returns false for an
// unrecognized name, matching the engine's InvalidMutation handling for
// unknown algorithm names.
func New(name Name, quantum, agingInterval int) (Scheduler, bool) {
	switch name {
	case FCFS:
		return NewFCFS(), true
	case SJF:
		return NewSJF(), true
	case SRTF:
		return NewSRTF(), true
	case RR:
		return NewRoundRobin(quantum), true
	case Priority:
		return NewPriority(agingInterval), true
	case PriorityRR:
		return NewPriorityRR(quantum), true
	default:
		return nil, false
	}
}
