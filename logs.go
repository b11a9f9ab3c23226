package ossim

import (
	"fmt"

	"github.com/joeycumines/go-ossim/eventlog"
)

const (
	interruptLogCap = 200
	layerFlowLogCap = 50
)

// LogEntry is one ring-bounded log line, newest-last.
type LogEntry struct {
	Tick    int
	Message string
}

// String renders the entry in the spec's "[Tick N] message" format.
func (e LogEntry) String() string {
	return fmt.Sprintf("[Tick %d] %s", e.Tick, e.Message)
}

func (e *Engine) logInterrupt(format string, args ...any) {
	e.interruptLog.Push(LogEntry{Tick: e.clock, Message: fmt.Sprintf(format, args...)})
}

func (e *Engine) logLayerFlow(format string, args ...any) {
	e.layerFlowLog.Push(LogEntry{Tick: e.clock, Message: fmt.Sprintf(format, args...)})
}

func newInterruptLog() *eventlog.Ring[LogEntry] { return eventlog.NewRing[LogEntry](interruptLogCap) }
func newLayerFlowLog() *eventlog.Ring[LogEntry] { return eventlog.NewRing[LogEntry](layerFlowLogCap) }
