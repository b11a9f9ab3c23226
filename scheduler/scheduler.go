// Package scheduler implements the six CPU-scheduling disciplines exposed to
// the engine behind a single polymorphic contract.
package scheduler

// Process is the minimal view of a PCB a scheduler needs to order its ready
// queue and select the next process to run. The engine's process type
// satisfies this interface; the scheduler package never depends on the
// engine package, avoiding a cyclic reference.
type Process interface {
	PID() int
	Priority() int
	SetPriority(int)
	ArrivalTick() int
	DurationTicks() int
	RemainingTicks() int
	WaitingTicks() int
}

// Scheduler is the common contract for every scheduling discipline: add a
// newly-ready process, ask for the next one to run, and advance internal
// bookkeeping (aging) once per tick. Quantum usage is counted by the engine,
// not by the scheduler.
type Scheduler interface {
	// AddProcess enqueues p, which the caller has already transitioned to
	// READY.
	AddProcess(p Process)
	// NextProcess is the sole authority for choosing which READY process
	// becomes RUNNING. Returns nil if the queue is empty.
	NextProcess(currentTick int) Process
	// OnTick advances scheduler-internal bookkeeping (the Priority
	// scheduler's aging interval) by one tick; the other disciplines do
	// nothing here.
	OnTick()
	// Len reports the number of processes currently queued, used by the
	// engine to pick the least-loaded scheduler for a newly-ready process.
	Len() int
	// Dispatches counts context switches performed by NextProcess.
	Dispatches() int
}

// Name identifies a scheduling discipline by the exact strings accepted by
// the engine's configuration surface and set_cpu_scheduler mutator.
type Name string

const (
	FCFS       Name = "FCFS"
	SJF        Name = "SJF"
	SRTF       Name = "SRTF"
	RR         Name = "RR"
	Priority   Name = "Priority"
	PriorityRR Name = "PriorityRR"
)
