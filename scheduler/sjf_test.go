package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSJFScheduler_OrdersByPriorityThenDuration(t *testing.T) {
	s := NewSJF()
	long := &fakeProcess{pid: 1, priority: 5, durationTicks: 20}
	short := &fakeProcess{pid: 2, priority: 5, durationTicks: 5}
	s.AddProcess(long)
	s.AddProcess(short)

	require.Equal(t, short, s.NextProcess(0))
	require.Equal(t, long, s.NextProcess(0))
}
