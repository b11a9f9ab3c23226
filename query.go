package ossim

import (
	"github.com/joeycumines/go-ossim/memory"
	"github.com/joeycumines/go-ossim/scheduler"
)

// ProcessSnapshot is an immutable copy of a PCB at the moment of the call.
type ProcessSnapshot struct {
	PID              int
	Name             string
	SizeMB           int
	Priority         int
	DurationTicks    int
	RemainingTicks   int
	State            ProcessState
	ArrivalTick      int
	StartTick        int
	FinishTick       int
	WaitingTicks     int
	QuantumUsed      int
	CPUID            int
	MemoryUnitID     int
	IORemainingTicks int
	HasInterrupt     bool
}

func snapshotProcess(p *Process) ProcessSnapshot {
	return ProcessSnapshot{
		PID:              p.PID,
		Name:             p.Name,
		SizeMB:           p.SizeMB,
		Priority:         p.Priority,
		DurationTicks:    p.DurationTicks,
		RemainingTicks:   p.RemainingTicks,
		State:            p.State,
		ArrivalTick:      p.ArrivalTick,
		StartTick:        p.StartTick,
		FinishTick:       p.FinishTick,
		WaitingTicks:     p.WaitingTicks,
		QuantumUsed:      p.QuantumUsed,
		CPUID:            p.CPUID,
		MemoryUnitID:     p.MemoryUnitID,
		IORemainingTicks: p.IORemainingTicks,
		HasInterrupt:     p.HasInterrupt,
	}
}

// ActiveProcesses returns a snapshot of every live (non-cleaned-up) process,
// in PID order.
func (e *Engine) ActiveProcesses() []ProcessSnapshot {
	out := make([]ProcessSnapshot, 0, len(e.processOrder))
	for _, pid := range e.processOrder {
		out = append(out, snapshotProcess(e.processes[pid]))
	}
	return out
}

// MemoryUnitSummary is a read-only view of one memory unit's current state.
type MemoryUnitSummary struct {
	ID                 int
	TotalMB            int
	FreeMB             int
	FragmentationRatio float64
	Efficiency         float64
	AllocStrategy      memory.FitStrategy
	PageReplacement    memory.ReplacementPolicy
	FrameCount         int
	PageFaultRate      float64
	MemoryUtilization  float64
}

// MemoryUnitSummaries returns one summary per memory unit, in unit order.
func (e *Engine) MemoryUnitSummaries() []MemoryUnitSummary {
	out := make([]MemoryUnitSummary, len(e.units))
	for i, u := range e.units {
		out[i] = MemoryUnitSummary{
			ID:                 u.ID,
			TotalMB:            u.Contiguous.TotalMB(),
			FreeMB:             u.FreeMB(),
			FragmentationRatio: u.Contiguous.FragmentationRatio(),
			Efficiency:         u.Contiguous.Efficiency(),
			AllocStrategy:      u.Contiguous.Strategy(),
			PageReplacement:    u.Paged.Replacement(),
			FrameCount:         u.Paged.FrameCount(),
			PageFaultRate:      u.Paged.PageFaultRate(),
			MemoryUtilization:  u.Paged.MemoryUtilization(),
		}
	}
	return out
}

// StorageOverview aggregates contiguous-memory occupancy across all units.
type StorageOverview struct {
	TotalMB       int
	UsedMB        int
	FreeMB        int
	UnitSummaries []MemoryUnitSummary
}

// StorageOverview returns the aggregate view consumed by the external
// dashboard surface.
func (e *Engine) StorageOverview() StorageOverview {
	summaries := e.MemoryUnitSummaries()
	ov := StorageOverview{UnitSummaries: summaries}
	for _, s := range summaries {
		ov.TotalMB += s.TotalMB
		ov.FreeMB += s.FreeMB
	}
	ov.UsedMB = ov.TotalMB - ov.FreeMB
	return ov
}

// PagingStat is one memory unit's paging-specific metrics.
type PagingStat struct {
	UnitID            int
	FrameCount        int
	Replacement       memory.ReplacementPolicy
	PageFaultRate     float64
	MemoryUtilization float64
	Frames            []memory.Frame
}

// PagingStats returns one entry per memory unit's paged manager.
func (e *Engine) PagingStats() []PagingStat {
	out := make([]PagingStat, len(e.units))
	for i, u := range e.units {
		out[i] = PagingStat{
			UnitID:            u.ID,
			FrameCount:        u.Paged.FrameCount(),
			Replacement:       u.Paged.Replacement(),
			PageFaultRate:     u.Paged.PageFaultRate(),
			MemoryUtilization: u.Paged.MemoryUtilization(),
			Frames:            u.Paged.SnapshotFrames(),
		}
	}
	return out
}

// AlgorithmStats returns the observed waiting-time percentile summary for
// every scheduling discipline that has been exercised by at least one CPU
// since the last reset.
func (e *Engine) AlgorithmStats() map[scheduler.Name]AlgorithmStats {
	out := make(map[scheduler.Name]AlgorithmStats, len(e.algStats))
	for name, m := range e.algStats {
		out[name] = m.Snapshot()
	}
	return out
}

// InterruptLog returns the bounded interrupt-event log, oldest first.
func (e *Engine) InterruptLog() []LogEntry {
	return e.interruptLog.Slice()
}

// LayerFlowEvents returns the bounded architecture-layer-flow log, oldest
// first.
func (e *Engine) LayerFlowEvents() []LogEntry {
	return e.layerFlowLog.Slice()
}

// IsRunning reports whether the engine has ticked at least once since
// construction or the last Reset.
func (e *Engine) IsRunning() bool { return e.isRunning }

// Clock returns the current logical tick count.
func (e *Engine) Clock() int { return e.clock }

// CPUSummary is a read-only view of one CPU's current assignment.
type CPUSummary struct {
	ID             int
	ThreadCapacity int
	ThreadsInUse   int
	Scheduler      scheduler.Name
	AssignedPID    int
}

// CPUSummaries returns one summary per CPU, in CPU order.
func (e *Engine) CPUSummaries() []CPUSummary {
	out := make([]CPUSummary, len(e.cpus))
	for i, c := range e.cpus {
		pid := NoID
		if c.Process != nil {
			pid = c.Process.PID
		}
		out[i] = CPUSummary{
			ID:             c.ID,
			ThreadCapacity: c.ThreadCapacity,
			ThreadsInUse:   c.ThreadsInUse,
			Scheduler:      e.cpuSchedulerName[i],
			AssignedPID:    pid,
		}
	}
	return out
}
