package ossim

import "errors"

// Sentinel errors for the engine's "normal failure outcome" error model
// (§7): nothing here ever escapes the tick boundary, but the mutation API
// and internal logging wrap these with %w for context.
var (
	// ErrAllocationRejected marks a memory request that could not be
	// satisfied by any unit; the caller terminates the process at birth.
	ErrAllocationRejected = errors.New("ossim: allocation rejected")
	// ErrInvalidMutation marks a disallowed or malformed configuration
	// change (e.g. changing a CPU's scheduler while the engine is running,
	// unloading a non-removable module, an unknown algorithm name).
	ErrInvalidMutation = errors.New("ossim: invalid mutation")
	// ErrOutOfRangeCommand marks a UI/console command whose arguments fall
	// outside the accepted range.
	ErrOutOfRangeCommand = errors.New("ossim: command argument out of range")
	// ErrGlobalInterruptNoTarget marks an interrupt with no target PID; it
	// is logged as a global event only, never an engine error.
	ErrGlobalInterruptNoTarget = errors.New("ossim: global interrupt has no target")
)
