package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_ConstructsEachKnownDiscipline(t *testing.T) {
	names := []Name{FCFS, SJF, SRTF, RR, Priority, PriorityRR}
	for _, name := range names {
		s, ok := New(name, 4, 10)
		require.True(t, ok, "name %q should be recognized", name)
		require.NotNil(t, s)
	}
}

func TestNew_RejectsUnknownName(t *testing.T) {
	_, ok := New(Name("Bogus"), 4, 10)
	require.False(t, ok)
}
