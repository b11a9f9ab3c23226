package ossim

// CPU is one of the engine's N processing cores: a fixed thread capacity and
// at most one assigned process. Threads-in-use equals thread capacity iff a
// process is assigned, else 0.
type CPU struct {
	ID             int
	ThreadCapacity int
	ThreadsInUse   int
	Process        *Process
}

// NewCPU constructs an idle CPU with the given thread capacity (>= 1).
func NewCPU(id, threadCapacity int) *CPU {
	if threadCapacity < 1 {
		threadCapacity = 1
	}
	return &CPU{ID: id, ThreadCapacity: threadCapacity}
}

// Idle reports whether the CPU has no assigned process.
func (c *CPU) Idle() bool { return c.Process == nil }

// Assign binds p to the CPU: p becomes RUNNING, its quantum counter resets,
// and the CPU's thread count switches to full capacity.
func (c *CPU) Assign(p *Process, currentTick int) {
	p.State = StateRunning
	p.QuantumUsed = 0
	p.CPUID = c.ID
	if p.StartTick == NoID {
		p.StartTick = currentTick
	}
	c.Process = p
	c.ThreadsInUse = c.ThreadCapacity
}

// Release detaches the CPU's process (if any) without altering its state;
// callers transition the process's state themselves (READY on preemption,
// WAITING on an interrupt, or leave TERMINATED as-is).
func (c *CPU) Release() {
	if c.Process != nil {
		c.Process.CPUID = NoID
	}
	c.Process = nil
	c.ThreadsInUse = 0
}

// Tick decrements the assigned process's remaining ticks by
// max(1, threads_in_use) (thread-scaled acceleration), terminating it if it
// reaches zero. Returns true if the process terminated this tick.
func (c *CPU) Tick(currentTick int) bool {
	if c.Process == nil {
		return false
	}
	scale := c.ThreadsInUse
	if scale < 1 {
		scale = 1
	}
	c.Process.RemainingTicks -= scale
	if c.Process.RemainingTicks <= 0 {
		c.Process.terminate(currentTick)
		return true
	}
	return false
}
