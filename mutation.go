package ossim

import (
	"fmt"

	"github.com/joeycumines/go-ossim/memory"
	"github.com/joeycumines/go-ossim/scheduler"
)

// ManualCreateProcess is the console's create <size_mb> <duration_ticks>
// [priority] command: it spawns a process exactly as auto-spawn does,
// synchronously, returning the created PCB regardless of whether its
// allocation succeeded (a rejected allocation still gets a PID and a
// TERMINATED-at-birth record).
func (e *Engine) ManualCreateProcess(sizeMB, durationTicks int, priority int) (*Process, error) {
	if sizeMB <= 0 || durationTicks <= 0 {
		return nil, fmt.Errorf("%w: size_mb and duration_ticks must be positive", ErrOutOfRangeCommand)
	}
	if priority < 0 || priority > 9 {
		return nil, fmt.Errorf("%w: priority %d out of range [0,9]", ErrOutOfRangeCommand, priority)
	}
	name := fmt.Sprintf("manual-%d", e.pidCounter+1)
	return e.spawnProcess(name, sizeMB, durationTicks, priority), nil
}

// SetCPUScheduler replaces the scheduler driving CPU i, discarding its
// current queue. Disallowed while the engine is running.
func (e *Engine) SetCPUScheduler(i int, name scheduler.Name) error {
	if e.isRunning {
		return fmt.Errorf("%w: cannot change cpu scheduler while running", ErrInvalidMutation)
	}
	if i < 0 || i >= len(e.cpus) {
		return fmt.Errorf("%w: cpu index %d out of range", ErrOutOfRangeCommand, i)
	}
	sched, ok := scheduler.New(name, e.cfg.quantum, e.cfg.agingInterval)
	if !ok {
		return fmt.Errorf("%w: unknown scheduling algorithm %q", ErrInvalidMutation, name)
	}
	e.cpuSchedulers[i] = sched
	e.cpuSchedulerName[i] = name
	return nil
}

// SetCPUThreads changes CPU i's thread capacity. Disallowed while running.
func (e *Engine) SetCPUThreads(i, n int) error {
	if e.isRunning {
		return fmt.Errorf("%w: cannot change cpu threads while running", ErrInvalidMutation)
	}
	if i < 0 || i >= len(e.cpus) {
		return fmt.Errorf("%w: cpu index %d out of range", ErrOutOfRangeCommand, i)
	}
	if n < 1 || n > 8 {
		return fmt.Errorf("%w: threads_per_cpu %d out of range [1,8]", ErrOutOfRangeCommand, n)
	}
	e.cpus[i].ThreadCapacity = n
	if !e.cpus[i].Idle() {
		e.cpus[i].ThreadsInUse = n
	}
	return nil
}

// SetMemoryUnitAllocAlg switches unit i's contiguous fit strategy in place;
// existing blocks and their ownership are preserved (only future
// allocations pick blocks differently).
func (e *Engine) SetMemoryUnitAllocAlg(i int, name string) error {
	u := e.unitByIndex(i)
	if u == nil {
		return fmt.Errorf("%w: memory unit index %d out of range", ErrOutOfRangeCommand, i)
	}
	s, ok := memory.ParseFitStrategy(name)
	if !ok {
		return fmt.Errorf("%w: unknown fit strategy %q", ErrInvalidMutation, name)
	}
	u.Contiguous.SetStrategy(s)
	return nil
}

// SetMemoryUnitPageAlg rebuilds unit i's paged manager under a new
// replacement policy, losing all existing frame/page-table state by design
// (the spec calls this out explicitly as a state-losing rebuild).
func (e *Engine) SetMemoryUnitPageAlg(i int, name string) error {
	u := e.unitByIndex(i)
	if u == nil {
		return fmt.Errorf("%w: memory unit index %d out of range", ErrOutOfRangeCommand, i)
	}
	r, ok := memory.ParseReplacementPolicy(name)
	if !ok {
		return fmt.Errorf("%w: unknown replacement policy %q", ErrInvalidMutation, name)
	}
	u.Paged = memory.NewPagedManager(u.Contiguous.TotalMB(), u.Paged.PageSizeMB(), r)
	return nil
}

func (e *Engine) unitByIndex(i int) *memory.Unit {
	if i < 0 || i >= len(e.units) {
		return nil
	}
	return e.units[i]
}

// Compact runs manual compaction on memory unit i. Manual compaction is
// always permitted, regardless of fragmentation.
func (e *Engine) Compact(i int) error {
	u := e.unitByIndex(i)
	if u == nil {
		return fmt.Errorf("%w: memory unit index %d out of range", ErrOutOfRangeCommand, i)
	}
	u.Contiguous.Compact()
	return nil
}

// Reset is the sole cancellation primitive: it clears processes, metrics,
// interrupt state, and logs; rebuilds CPUs preserving count and thread
// capacity; rebuilds memory units preserving algorithms; leaves is_running
// false; and re-seeds the engine-owned PRNG so an identical tick sequence
// reproduces identical snapshots. The PID counter is intentionally not
// rewound.
func (e *Engine) Reset() {
	e.clock = 0
	e.isRunning = false
	e.processes = make(map[int]*Process)
	e.processOrder = nil
	e.waiting = nil
	e.autoSpawnSeq = 0

	threadCaps := make([]int, len(e.cpus))
	for i, c := range e.cpus {
		threadCaps[i] = c.ThreadCapacity
	}
	e.cpus = make([]*CPU, len(threadCaps))
	for i, tc := range threadCaps {
		e.cpus[i] = NewCPU(i, tc)
	}
	for i := range e.cpuSchedulers {
		sched, _ := scheduler.New(e.cpuSchedulerName[i], e.cfg.quantum, e.cfg.agingInterval)
		e.cpuSchedulers[i] = sched
	}

	for _, u := range e.units {
		strategy := u.Contiguous.Strategy()
		replacement := u.Paged.Replacement()
		capMB := u.Contiguous.TotalMB()
		pageSizeMB := u.Paged.PageSizeMB()
		*u = *memory.NewUnit(u.ID, capMB, strategy, pageSizeMB, replacement)
	}

	e.controller.Clear()
	e.interruptLog.Clear()
	e.layerFlowLog.Clear()
	e.algStats = make(map[scheduler.Name]*schedulerMetrics)

	e.rng = newEngineRNG(e.cfg.seed1, e.cfg.seed2)
}
