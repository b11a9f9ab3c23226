package interrupt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func defaultChain() Chain {
	return DefaultChain(DefaultIODuration, DefaultSyscallDuration, DefaultPageFaultDuration)
}

func TestChain_IODispatchesWait(t *testing.T) {
	c := defaultChain()
	eff := c.Dispatch(Interrupt{Kind: IO, TargetPID: 7})
	require.Equal(t, EffectWait, eff.Kind)
	require.Equal(t, 7, eff.TargetPID)
	require.Equal(t, DefaultIODuration, eff.DurationTicks)
}

func TestChain_SyscallAndSoftwareShareHandler(t *testing.T) {
	c := defaultChain()
	for _, k := range []Kind{SYSCALL, SOFTWARE} {
		eff := c.Dispatch(Interrupt{Kind: k, TargetPID: 1})
		require.Equal(t, EffectWait, eff.Kind)
		require.Equal(t, DefaultSyscallDuration, eff.DurationTicks)
	}
}

func TestChain_PageFaultWithTargetWaits(t *testing.T) {
	c := defaultChain()
	eff := c.Dispatch(Interrupt{Kind: PAGE_FAULT, TargetPID: 3})
	require.Equal(t, EffectWait, eff.Kind)
	require.Equal(t, DefaultPageFaultDuration, eff.DurationTicks)
}

func TestChain_HardwareWithTargetPreempts(t *testing.T) {
	c := defaultChain()
	eff := c.Dispatch(Interrupt{Kind: HARDWARE, TargetPID: 4})
	require.Equal(t, EffectPreempt, eff.Kind)
	require.Equal(t, 4, eff.TargetPID)
}

func TestChain_NoTargetIsGlobalEventOnly(t *testing.T) {
	c := defaultChain()
	eff := c.Dispatch(Interrupt{Kind: TIMER, TargetPID: NoTarget})
	require.Equal(t, EffectNone, eff.Kind)
}

func TestChain_UnclaimedKindReturnsNoneInsteadOfPanicking(t *testing.T) {
	c := Chain{IOHandler{Duration: 3}}
	require.NotPanics(t, func() {
		eff := c.Dispatch(Interrupt{Kind: SYSCALL, TargetPID: 1})
		require.Equal(t, EffectNone, eff.Kind)
	})
}
