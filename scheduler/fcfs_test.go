package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFCFSScheduler_OrdersByPriorityThenArrival(t *testing.T) {
	s := NewFCFS()
	p1 := &fakeProcess{pid: 1, priority: 5, arrivalTick: 5}
	p2 := &fakeProcess{pid: 2, priority: 5, arrivalTick: 1}
	p3 := &fakeProcess{pid: 3, priority: 1, arrivalTick: 10}
	s.AddProcess(p1)
	s.AddProcess(p2)
	s.AddProcess(p3)

	require.Equal(t, p3, s.NextProcess(0)) // lowest priority wins regardless of arrival
	require.Equal(t, p2, s.NextProcess(0)) // tie broken by earlier arrival
	require.Equal(t, p1, s.NextProcess(0))
	require.Nil(t, s.NextProcess(0))
	require.Equal(t, 3, s.Dispatches())
}

func TestFCFSScheduler_LenTracksQueue(t *testing.T) {
	s := NewFCFS()
	require.Equal(t, 0, s.Len())
	s.AddProcess(&fakeProcess{pid: 1})
	require.Equal(t, 1, s.Len())
}
