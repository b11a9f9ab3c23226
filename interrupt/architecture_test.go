package interrupt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonolithic_NoAdjustment(t *testing.T) {
	a := Monolithic{}
	require.Equal(t, 3, a.AdjustDuration(IO, 3))
}

func TestMicrokernel_AddsKernelLatencyToIOAndSyscallAndPageFault(t *testing.T) {
	a := Microkernel{KernelLatency: 2}
	require.Equal(t, 5, a.AdjustDuration(IO, 3))
	require.Equal(t, 4, a.AdjustDuration(SYSCALL, 2))
	require.Equal(t, 7, a.AdjustDuration(PAGE_FAULT, 5))
	require.Equal(t, 10, a.AdjustDuration(TIMER, 10), "timer is not adjusted by microkernel")
}

func TestModular_AddsHardwareDelayToPageFaultOnly(t *testing.T) {
	a := Modular{HardwareDelay: 1}
	require.Equal(t, 6, a.AdjustDuration(PAGE_FAULT, 5))
	require.Equal(t, 3, a.AdjustDuration(IO, 3), "modular leaves I/O duration untouched")
}

func TestModular_AnnotatesHardwareAndTimerInterrupts(t *testing.T) {
	a := Modular{HardwareDelay: 1}
	i := a.Annotate(Interrupt{Kind: HARDWARE})
	require.Equal(t, 1, i.Payload["hardware_delay"])

	i = a.Annotate(Interrupt{Kind: IO})
	require.Nil(t, i.Payload)
}

func TestParseArchitecture_ModularParsesAndUnknownIsRejected(t *testing.T) {
	arch, ok := ParseArchitecture("Modular")
	require.True(t, ok)
	require.Equal(t, "Modular", arch.Name())

	_, ok = ParseArchitecture("nonsense")
	require.False(t, ok)
}
