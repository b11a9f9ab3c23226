package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriorityRRScheduler_ServesLowestNonEmptyLevel(t *testing.T) {
	s := NewPriorityRR(4)
	low := &fakeProcess{pid: 1, priority: 5}
	high := &fakeProcess{pid: 2, priority: 0}
	s.AddProcess(low)
	s.AddProcess(high)

	require.Equal(t, high, s.NextProcess(0))
	require.Equal(t, low, s.NextProcess(0))
	require.Nil(t, s.NextProcess(0))
}

func TestPriorityRRScheduler_FIFOWithinLevel(t *testing.T) {
	s := NewPriorityRR(4)
	first := &fakeProcess{pid: 1, priority: 3}
	second := &fakeProcess{pid: 2, priority: 3}
	s.AddProcess(first)
	s.AddProcess(second)

	require.Equal(t, first, s.NextProcess(0))
	require.Equal(t, second, s.NextProcess(0))
}

func TestPriorityRRScheduler_LenSumsAllLevels(t *testing.T) {
	s := NewPriorityRR(4)
	s.AddProcess(&fakeProcess{pid: 1, priority: 0})
	s.AddProcess(&fakeProcess{pid: 2, priority: 9})
	require.Equal(t, 2, s.Len())
}

func TestPriorityRRScheduler_ClampsOutOfRangePriority(t *testing.T) {
	s := NewPriorityRR(4)
	s.AddProcess(&fakeProcess{pid: 1, priority: 99})
	require.Equal(t, 1, s.Len())
}
