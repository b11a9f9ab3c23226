package ossim

import "github.com/joeycumines/go-ossim/interrupt"

// ProcessState is a PCB's execution state.
type ProcessState int

const (
	StateNew ProcessState = iota
	StateReady
	StateRunning
	StateWaiting
	StateTerminated
)

// String implements fmt.Stringer.
func (s ProcessState) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateWaiting:
		return "WAITING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// NoID is the sentinel for an unset CPU id, memory unit id, start tick, or
// finish tick.
const NoID = -1

// Process is a process control block. Invariants (spec §3):
//
//	(a) RemainingTicks >= 0
//	(b) State == TERMINATED => RemainingTicks == 0
//	(c) CPUID != NoID <=> State == RUNNING
//	(d) State == WAITING => IORemainingTicks > 0 at entry
type Process struct {
	PID  int
	Name string

	SizeMB         int
	Priority       int
	DurationTicks  int
	RemainingTicks int

	State ProcessState

	ArrivalTick int
	StartTick   int
	FinishTick  int

	WaitingTicks int
	QuantumUsed  int

	CPUID        int
	MemoryUnitID int

	IORemainingTicks int
	InterruptReason  interrupt.Kind
	HasInterrupt     bool

	IOProbability        float64
	SyscallProbability   float64
	PageFaultProbability float64
}

// newProcess constructs a freshly-arrived process in state NEW, with no CPU
// or memory unit assignment yet.
func newProcess(pid int, name string, sizeMB, durationTicks, priority, arrivalTick int) *Process {
	return &Process{
		PID:            pid,
		Name:           name,
		SizeMB:         sizeMB,
		Priority:       priority,
		DurationTicks:  durationTicks,
		RemainingTicks: durationTicks,
		State:          StateNew,
		ArrivalTick:    arrivalTick,
		StartTick:      NoID,
		FinishTick:     NoID,
		CPUID:          NoID,
		MemoryUnitID:   NoID,

		IOProbability:        0.2,
		SyscallProbability:   0.2,
		PageFaultProbability: 0.1,
	}
}

// schedProc adapts *Process to scheduler.Process. It exists because Process
// already has fields named PID, Priority, etc.: a method set satisfying the
// scheduler package's narrow interface has to live on a separate type.
type schedProc struct{ p *Process }

func (a schedProc) PID() int           { return a.p.PID }
func (a schedProc) Priority() int      { return a.p.Priority }
func (a schedProc) SetPriority(v int)  { a.p.Priority = v }
func (a schedProc) ArrivalTick() int   { return a.p.ArrivalTick }
func (a schedProc) DurationTicks() int { return a.p.DurationTicks }
func (a schedProc) RemainingTicks() int { return a.p.RemainingTicks }
func (a schedProc) WaitingTicks() int  { return a.p.WaitingTicks }

// terminate marks p TERMINATED at finishTick, enforcing invariants (a)/(b).
func (p *Process) terminate(finishTick int) {
	p.State = StateTerminated
	p.RemainingTicks = 0
	p.FinishTick = finishTick
	p.CPUID = NoID
}
