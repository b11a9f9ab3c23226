package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSRTFScheduler_PreemptsOnStrictlyShorterRemaining(t *testing.T) {
	s := NewSRTF()
	running := &fakeProcess{pid: 1, priority: 5, remainingTicks: 15}
	candidate := &fakeProcess{pid: 2, priority: 5, remainingTicks: 3}
	s.AddProcess(candidate)

	next, preempted := s.Preempt(running, 0)
	require.True(t, preempted)
	require.Equal(t, candidate, next)
	require.Equal(t, 0, s.Len())
}

func TestSRTFScheduler_DoesNotPreemptOnEqualOrWorseRemaining(t *testing.T) {
	s := NewSRTF()
	running := &fakeProcess{pid: 1, priority: 5, remainingTicks: 3}
	candidate := &fakeProcess{pid: 2, priority: 5, remainingTicks: 3}
	s.AddProcess(candidate)

	_, preempted := s.Preempt(running, 0)
	require.False(t, preempted)
	require.Equal(t, 1, s.Len())
}

func TestSRTFScheduler_PreemptsOnBetterPriorityEvenIfRemainingIsLonger(t *testing.T) {
	s := NewSRTF()
	running := &fakeProcess{pid: 1, priority: 5, remainingTicks: 3}
	candidate := &fakeProcess{pid: 2, priority: 2, remainingTicks: 10}
	s.AddProcess(candidate)

	next, preempted := s.Preempt(running, 0)
	require.True(t, preempted)
	require.Equal(t, candidate, next)
}
