// Package ossim implements a discrete-event operating-system simulator: a
// multi-CPU scheduler family, an interrupt subsystem, and a dual memory
// subsystem, orchestrated by a single-threaded, deterministic, per-tick
// engine. The graphical surface, command console, and persistence are
// external collaborators outside this package's scope.
package ossim

import (
	"fmt"

	"github.com/joeycumines/go-ossim/eventlog"
	"github.com/joeycumines/go-ossim/interrupt"
	"github.com/joeycumines/go-ossim/memory"
	"github.com/joeycumines/go-ossim/scheduler"
)

// Interrupt priorities assigned by the engine when raising stochastic and
// timer interrupts; lower dequeues first. PAGE_FAULT and HARDWARE model
// genuine hardware urgency, TIMER sits below them, and software-originated
// SYSCALL/IO trail both.
const (
	priorityPageFault = 1
	priorityTimer     = 2
	prioritySyscall   = 3
	priorityIO        = 4
)

// Engine owns every piece of simulator state and is the sole mutator of it;
// external callers reach it exclusively through its mutation and query
// methods. The tick function is not reentrant.
type Engine struct {
	cfg  *engineConfig
	arch interrupt.Architecture
	chain interrupt.Chain

	clock      int
	pidCounter int
	isRunning  bool
	ticking    bool

	cpus             []*CPU
	cpuSchedulers    []scheduler.Scheduler
	cpuSchedulerName []scheduler.Name

	units []*memory.Unit

	processes    map[int]*Process
	processOrder []int
	waiting      []*Process

	controller *interrupt.Controller

	rng *engineRNG

	interruptLog *eventlog.Ring[LogEntry]
	layerFlowLog *eventlog.Ring[LogEntry]

	algStats map[scheduler.Name]*schedulerMetrics

	modules map[string]loadedModule

	autoSpawnSeq int
}

// NewEngine constructs an Engine from the given options, building N CPUs
// and N memory units per configuration.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	cfg, err := resolveEngineOptions(opts)
	if err != nil {
		return nil, err
	}
	arch, ok := interrupt.ParseArchitecture(cfg.architectureName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown architecture %q", ErrInvalidMutation, cfg.architectureName)
	}

	e := &Engine{
		cfg:          cfg,
		arch:         arch,
		processes:    make(map[int]*Process),
		controller:   interrupt.NewController(),
		interruptLog: newInterruptLog(),
		layerFlowLog: newLayerFlowLog(),
		algStats:     make(map[scheduler.Name]*schedulerMetrics),
		modules:      make(map[string]loadedModule),
	}
	e.rebuildChain()
	e.rebuildCPUsAndSchedulers()
	e.rebuildMemoryUnits()
	e.rng = newEngineRNG(cfg.seed1, cfg.seed2)
	return e, nil
}

func (e *Engine) rebuildChain() {
	e.chain = interrupt.DefaultChain(
		e.arch.AdjustDuration(interrupt.IO, interrupt.DefaultIODuration),
		e.arch.AdjustDuration(interrupt.SYSCALL, interrupt.DefaultSyscallDuration),
		e.arch.AdjustDuration(interrupt.PAGE_FAULT, interrupt.DefaultPageFaultDuration),
	)
}

func (e *Engine) rebuildCPUsAndSchedulers() {
	e.cpus = make([]*CPU, e.cfg.numCPUs)
	e.cpuSchedulers = make([]scheduler.Scheduler, e.cfg.numCPUs)
	e.cpuSchedulerName = make([]scheduler.Name, e.cfg.numCPUs)
	for i := range e.cpus {
		e.cpus[i] = NewCPU(i, e.cfg.threadsPerCPU)
		sched, _ := scheduler.New(e.cfg.schedulingAlg, e.cfg.quantum, e.cfg.agingInterval)
		e.cpuSchedulers[i] = sched
		e.cpuSchedulerName[i] = e.cfg.schedulingAlg
	}
}

func (e *Engine) rebuildMemoryUnits() {
	e.units = make([]*memory.Unit, e.cfg.numMemoryUnits)
	for i := range e.units {
		e.units[i] = memory.NewUnit(i, e.cfg.memoryUnitCapacityMB, e.cfg.allocStrategy, e.cfg.pageSizeMB, e.cfg.pageReplacement)
	}
}

func (e *Engine) nextPID() int {
	e.pidCounter++
	return e.pidCounter
}

func (e *Engine) registerProcess(p *Process) {
	e.processes[p.PID] = p
	e.processOrder = append(e.processOrder, p.PID)
}

// Tick advances the simulation by exactly one logical clock tick, performing
// the full per-tick protocol. It is not reentrant.
func (e *Engine) Tick() {
	if e.ticking {
		return
	}
	e.ticking = true
	defer func() { e.ticking = false }()

	e.isRunning = true
	e.clock++

	if e.rng.Float64() < e.cfg.autoSpawnProbability {
		e.autoSpawn()
	}

	for _, u := range e.units {
		u.Tick(e.clock)
	}

	if e.rng.Float64() < e.cfg.timerProbability {
		e.controller.Raise(interrupt.Interrupt{
			Kind:      interrupt.TIMER,
			Source:    "engine",
			TargetPID: interrupt.NoTarget,
			Priority:  priorityTimer,
		})
	}

	e.cleanupTerminated()
	e.promoteNew()
	e.decayWaiting()
	for _, sched := range e.cpuSchedulers {
		sched.OnTick()
	}
	e.runCPUs()
	e.drainInterrupts()
	e.dispatchIdleCPUs()
	e.incrementWaitingTicks()

	e.sparsePageAccess()
}

func (e *Engine) autoSpawn() {
	e.autoSpawnSeq++
	sizeMB := e.rng.IntRange(4, 64)
	priority := e.rng.IntRange(0, 9)
	name := fmt.Sprintf("auto-%d", e.autoSpawnSeq)
	// nextPID() has not run yet, but it is a strict, gapless increment, so
	// this is exactly the pid spawnProcess is about to assign: using it
	// keys the duration draw to the process's own identity rather than
	// the engine's private RNG stream, making it reproducible independent
	// of how many other draws preceded it this tick.
	pid := e.pidCounter + 1
	duration := stochasticDuration(pid, "auto-spawn-duration", 20, e.cfg.maxAutoSpawnDuration)
	e.spawnProcess(name, sizeMB, duration, priority)
}

// spawnProcess creates a process, attempts allocation across memory units in
// descending free-space order, and terminates it immediately on failure
// (AllocationRejected is a normal outcome, not an exception).
func (e *Engine) spawnProcess(name string, sizeMB, durationTicks, priority int) *Process {
	pid := e.nextPID()
	p := newProcess(pid, name, sizeMB, durationTicks, priority, e.clock)
	e.registerProcess(p)

	unit := e.allocateInDescendingFreeSpaceOrder(p)
	if unit == nil {
		e.terminateProcess(p)
		err := fmt.Errorf("%w: process %d (%d MiB)", ErrAllocationRejected, pid, sizeMB)
		e.logInterrupt("%s", err)
		getLogger().Warning().Int(`pid`, pid).Int(`size_mb`, sizeMB).Log(`allocation rejected`)
		return p
	}
	p.MemoryUnitID = unit.ID
	unit.Paged.Allocate(pid, sizeMB, e.clock)
	return p
}

func (e *Engine) allocateInDescendingFreeSpaceOrder(p *Process) *memory.Unit {
	order := make([]*memory.Unit, len(e.units))
	copy(order, e.units)
	// simple descending-free-space sort; unit counts are small (<=8).
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && order[j].FreeMB() > order[j-1].FreeMB(); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	for _, u := range order {
		if res := u.Contiguous.Allocate(p.PID, p.SizeMB); res.Success {
			return u
		}
	}
	return nil
}

// terminateProcess marks p TERMINATED and releases its memory; memory is
// freed immediately, independent of cleanup_delay (which only governs when
// the process is dropped from the live set).
func (e *Engine) terminateProcess(p *Process) {
	p.terminate(e.clock)
	if p.MemoryUnitID != NoID {
		if u := e.unitByID(p.MemoryUnitID); u != nil {
			u.Release(p.PID)
		}
	}
}

func (e *Engine) unitByID(id int) *memory.Unit {
	for _, u := range e.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (e *Engine) cleanupTerminated() {
	kept := e.processOrder[:0:0]
	for _, pid := range e.processOrder {
		p := e.processes[pid]
		if p.State == StateTerminated && e.clock-p.FinishTick >= e.cfg.cleanupDelay {
			delete(e.processes, pid)
			continue
		}
		kept = append(kept, pid)
	}
	e.processOrder = kept
}

func (e *Engine) promoteNew() {
	for _, pid := range e.processOrder {
		p := e.processes[pid]
		if p.State == StateNew && p.ArrivalTick+e.cfg.newDelay <= e.clock {
			p.State = StateReady
			e.leastLoadedScheduler().AddProcess(schedProc{p})
		}
	}
}

func (e *Engine) leastLoadedScheduler() scheduler.Scheduler {
	best := 0
	for i := 1; i < len(e.cpuSchedulers); i++ {
		if e.cpuSchedulers[i].Len() < e.cpuSchedulers[best].Len() {
			best = i
		}
	}
	return e.cpuSchedulers[best]
}

func (e *Engine) decayWaiting() {
	still := e.waiting[:0:0]
	for _, p := range e.waiting {
		p.IORemainingTicks--
		if p.IORemainingTicks <= 0 {
			p.State = StateReady
			p.HasInterrupt = false
			e.leastLoadedScheduler().AddProcess(schedProc{p})
			continue
		}
		still = append(still, p)
	}
	e.waiting = still
}

func (e *Engine) incrementWaitingTicks() {
	for _, pid := range e.processOrder {
		p := e.processes[pid]
		if p.State == StateReady {
			p.WaitingTicks++
		}
	}
}

// runCPUs executes step 5.iv: for each CPU with an assigned, non-terminated
// process, evaluate stochastic interrupts; a fired interrupt is raised for
// step 5.v to dispatch, otherwise the CPU ticks and quantum/priority
// preemption is enforced.
func (e *Engine) runCPUs() {
	for i, cpu := range e.cpus {
		if cpu.Process == nil {
			continue
		}
		p := cpu.Process
		if p.State == StateTerminated {
			cpu.Release()
			continue
		}

		if kind, ok := e.evaluateStochasticInterrupt(p); ok {
			e.controller.Raise(interrupt.Interrupt{
				Kind:      kind,
				Source:    "process",
				TargetPID: p.PID,
				Priority:  interruptPriorityFor(kind),
			})
			continue
		}

		terminated := cpu.Tick(e.clock)
		if terminated {
			continue
		}

		e.enforceQuantum(i, cpu)
		e.enforcePriorityPreemption(i, cpu)
	}
}

func interruptPriorityFor(k interrupt.Kind) int {
	switch k {
	case interrupt.PAGE_FAULT, interrupt.HARDWARE:
		return priorityPageFault
	case interrupt.SYSCALL, interrupt.SOFTWARE:
		return prioritySyscall
	default:
		return priorityIO
	}
}

// evaluateStochasticInterrupt draws, in syscall -> io -> page-fault order,
// the deterministic SHA-256(pid|tick|salt) value for p at the current tick;
// the first draw under its corresponding probability fires and the rest are
// skipped this tick.
func (e *Engine) evaluateStochasticInterrupt(p *Process) (interrupt.Kind, bool) {
	if stochasticDraw(p.PID, e.clock, "syscall") < p.SyscallProbability {
		return interrupt.SYSCALL, true
	}
	if stochasticDraw(p.PID, e.clock, "io") < p.IOProbability {
		return interrupt.IO, true
	}
	if stochasticDraw(p.PID, e.clock, "pagefault") < p.PageFaultProbability {
		return interrupt.PAGE_FAULT, true
	}
	return 0, false
}

func (e *Engine) enforceQuantum(cpuIdx int, cpu *CPU) {
	name := e.cpuSchedulerName[cpuIdx]
	if name != scheduler.RR && name != scheduler.PriorityRR {
		return
	}
	p := cpu.Process
	if p == nil {
		return
	}
	p.QuantumUsed++
	quantum := e.schedulerQuantum(cpuIdx)
	if p.QuantumUsed < quantum {
		return
	}
	cpu.Release()
	p.State = StateReady
	p.QuantumUsed = 0
	e.cpuSchedulers[cpuIdx].AddProcess(schedProc{p})
	e.logLayerFlow("process %d quantum expired on cpu %d, requeued", p.PID, cpu.ID)
}

func (e *Engine) schedulerQuantum(cpuIdx int) int {
	switch s := e.cpuSchedulers[cpuIdx].(type) {
	case *scheduler.RoundRobinScheduler:
		return s.Quantum()
	case *scheduler.PriorityRRScheduler:
		return s.Quantum()
	default:
		return e.cfg.quantum
	}
}

// enforcePriorityPreemption implements the engine-side preemption check
// shared by SRTF and Priority: both expose Preempt(running, currentTick) on
// their concrete types rather than the common Scheduler interface, since
// preemption of an already-running process is not part of next_process's
// contract.
func (e *Engine) enforcePriorityPreemption(cpuIdx int, cpu *CPU) {
	p := cpu.Process
	if p == nil {
		return
	}
	var next scheduler.Process
	var preempted bool
	switch s := e.cpuSchedulers[cpuIdx].(type) {
	case *scheduler.SRTFScheduler:
		next, preempted = s.Preempt(schedProc{p}, e.clock)
	case *scheduler.PriorityScheduler:
		next, preempted = s.Preempt(schedProc{p}, e.clock)
	default:
		return
	}
	if !preempted {
		return
	}
	cpu.Release()
	p.State = StateReady
	e.cpuSchedulers[cpuIdx].AddProcess(schedProc{p})
	winner := next.(schedProc).p
	cpu.Assign(winner, e.clock)
	e.logLayerFlow("process %d preempted process %d on cpu %d", winner.PID, p.PID, cpu.ID)
}

// drainInterrupts implements step 5.v: every pending interrupt is dispatched
// through the handler chain and its Effect applied.
func (e *Engine) drainInterrupts() {
	for {
		i, ok := e.controller.FetchNext()
		if !ok {
			break
		}
		i = e.arch.Annotate(i)
		if !i.HasTarget() {
			err := fmt.Errorf("%w: %s", ErrGlobalInterruptNoTarget, i.Kind)
			e.logInterrupt("%s", err)
			continue
		}
		effect := e.chain.Dispatch(i)
		e.applyEffect(i, effect)
	}
}

func (e *Engine) applyEffect(i interrupt.Interrupt, effect interrupt.Effect) {
	p, ok := e.processes[effect.TargetPID]
	if !ok {
		return
	}
	homeCPUIdx := -1
	if p.CPUID != NoID {
		for idx, c := range e.cpus {
			if c.ID == p.CPUID {
				homeCPUIdx = idx
				c.Release()
				break
			}
		}
	}

	switch effect.Kind {
	case interrupt.EffectWait:
		p.State = StateWaiting
		p.IORemainingTicks = effect.DurationTicks
		p.InterruptReason = i.Kind
		p.HasInterrupt = true
		e.waiting = append(e.waiting, p)
		e.logInterrupt("process %d raised %s, waiting %d ticks", p.PID, i.Kind, effect.DurationTicks)
	case interrupt.EffectPreempt:
		p.State = StateReady
		p.InterruptReason = i.Kind
		p.HasInterrupt = true
		schedIdx := homeCPUIdx
		if schedIdx < 0 {
			schedIdx = 0
		}
		e.cpuSchedulers[schedIdx].AddProcess(schedProc{p})
		e.logInterrupt("process %d preempted by %s", p.PID, i.Kind)
	default:
		e.logInterrupt("process %d received %s (no effect)", p.PID, i.Kind)
	}
}

// dispatchIdleCPUs implements step 5.vi: each idle CPU asks its own
// scheduler for the next ready process and, if one is returned, assigns it;
// the scheduler's waiting-time observation is recorded at this hand-off,
// since that is precisely when the waiting streak ends.
func (e *Engine) dispatchIdleCPUs() {
	for i, cpu := range e.cpus {
		if !cpu.Idle() {
			continue
		}
		next := e.cpuSchedulers[i].NextProcess(e.clock)
		if next == nil {
			continue
		}
		p := next.(schedProc).p
		e.observeWaiting(i, p)
		cpu.Assign(p, e.clock)
	}
}

func (e *Engine) observeWaiting(cpuIdx int, p *Process) {
	name := e.cpuSchedulerName[cpuIdx]
	m, ok := e.algStats[name]
	if !ok {
		m = newSchedulerMetrics()
		e.algStats[name] = m
	}
	m.Observe(float64(p.WaitingTicks))
}

// sparsePageAccess implements step 6: with probability 0.10 per running CPU,
// touch a random valid logical page of its process to exercise paging
// statistics.
func (e *Engine) sparsePageAccess() {
	for _, cpu := range e.cpus {
		p := cpu.Process
		if p == nil || p.State != StateRunning || p.MemoryUnitID == NoID {
			continue
		}
		if e.rng.Float64() >= 0.10 {
			continue
		}
		unit := e.unitByID(p.MemoryUnitID)
		if unit == nil {
			continue
		}
		pages := (p.SizeMB + unit.Paged.PageSizeMB() - 1) / unit.Paged.PageSizeMB()
		if pages <= 0 {
			continue
		}
		page := e.rng.IntRange(0, pages-1)
		unit.Paged.AccessPage(p.PID, page, e.clock)
	}
}
