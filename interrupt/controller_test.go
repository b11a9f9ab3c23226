package interrupt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestController_DequeuesByPriorityThenFIFO(t *testing.T) {
	c := NewController()
	c.Raise(Interrupt{Kind: IO, Priority: 5, TargetPID: 1})
	c.Raise(Interrupt{Kind: SYSCALL, Priority: 1, TargetPID: 2})
	c.Raise(Interrupt{Kind: TIMER, Priority: 5, TargetPID: 3})

	first, ok := c.FetchNext()
	require.True(t, ok)
	require.Equal(t, 2, first.TargetPID) // lowest priority value first

	second, ok := c.FetchNext()
	require.True(t, ok)
	require.Equal(t, 1, second.TargetPID) // FIFO among equal priority 5

	third, ok := c.FetchNext()
	require.True(t, ok)
	require.Equal(t, 3, third.TargetPID)

	_, ok = c.FetchNext()
	require.False(t, ok)
}

func TestController_HasPendingAndClear(t *testing.T) {
	c := NewController()
	require.False(t, c.HasPending())
	c.Raise(Interrupt{Kind: IO, TargetPID: 1})
	require.True(t, c.HasPending())
	require.Equal(t, 1, c.Len())
	c.Clear()
	require.False(t, c.HasPending())
	require.Equal(t, 0, c.Len())
}
