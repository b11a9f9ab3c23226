package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundRobinScheduler_SortsByPriorityAtDequeue(t *testing.T) {
	s := NewRoundRobin(4)
	require.Equal(t, 4, s.Quantum())

	low := &fakeProcess{pid: 1, priority: 5}
	high := &fakeProcess{pid: 2, priority: 0}
	s.AddProcess(low)
	s.AddProcess(high)

	require.Equal(t, high, s.NextProcess(0))
	require.Equal(t, low, s.NextProcess(0))
}

func TestRoundRobinScheduler_FIFOAmongEqualPriority(t *testing.T) {
	s := NewRoundRobin(4)
	first := &fakeProcess{pid: 1, priority: 3}
	second := &fakeProcess{pid: 2, priority: 3}
	s.AddProcess(first)
	s.AddProcess(second)

	require.Equal(t, first, s.NextProcess(0))
	require.Equal(t, second, s.NextProcess(0))
}
