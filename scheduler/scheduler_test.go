package scheduler

import "testing"

// fakeProcess is a minimal Process implementation for scheduler-level tests;
// the engine's real PCB type is exercised separately.
type fakeProcess struct {
	pid            int
	priority       int
	arrivalTick    int
	durationTicks  int
	remainingTicks int
	waitingTicks   int
}

func (p *fakeProcess) PID() int            { return p.pid }
func (p *fakeProcess) Priority() int       { return p.priority }
func (p *fakeProcess) SetPriority(v int)   { p.priority = v }
func (p *fakeProcess) ArrivalTick() int    { return p.arrivalTick }
func (p *fakeProcess) DurationTicks() int  { return p.durationTicks }
func (p *fakeProcess) RemainingTicks() int { return p.remainingTicks }
func (p *fakeProcess) WaitingTicks() int   { return p.waitingTicks }

var _ Process = (*fakeProcess)(nil)
