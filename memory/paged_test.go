package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagedManager_FIFOAllocationEvictsOldestOnOverflow(t *testing.T) {
	// 16 MiB / 4 MiB pages = 4 frames. A 20 MiB process needs 5 pages: the
	// first 4 load into free frames (no fault), the 5th evicts the FIFO head
	// (the frame holding page 0), for a lifetime fault rate of 1/5.
	m := NewPagedManager(16, 4, FIFO)
	require.Equal(t, 4, m.FrameCount())

	res := m.Allocate(1, 20, 0)
	require.True(t, res.Success)
	require.Equal(t, 5, res.PagesAllocated)
	require.Equal(t, 1, res.PageFaults)
	require.InDelta(t, 0.2, m.PageFaultRate(), 1e-9)

	frames := m.SnapshotFrames()
	for _, f := range frames {
		require.Equal(t, 1, f.Owner)
	}
	// page 0 must have been evicted in favor of page 4.
	found4 := false
	for _, f := range frames {
		if f.Page == 4 {
			found4 = true
		}
		require.NotEqual(t, 0, f.Page, "page 0's frame should have been reclaimed")
	}
	require.True(t, found4)
}

func TestPagedManager_AccessPageHitDoesNotFault(t *testing.T) {
	m := NewPagedManager(16, 4, FIFO)
	res := m.Allocate(1, 8, 0) // 2 pages, 2 free frames, no faults
	require.True(t, res.Success)
	require.Equal(t, 0, res.PageFaults)

	fault := m.AccessPage(1, 0, 1)
	require.False(t, fault)
	fault = m.AccessPage(1, 1, 2)
	require.False(t, fault)
	require.InDelta(t, 0.0, m.PageFaultRate(), 1e-9)
}

func TestPagedManager_AccessPageMissAlwaysFaultsEvenWithFreeFrame(t *testing.T) {
	m := NewPagedManager(16, 4, FIFO) // 4 frames, all free
	fault := m.AccessPage(1, 0, 0)
	require.True(t, fault, "a miss always counts as a fault regardless of free-frame availability")
	require.InDelta(t, 1.0, m.PageFaultRate(), 1e-9)
}

func TestPagedManager_LRUEvictsLeastRecentlyAccessed(t *testing.T) {
	m := NewPagedManager(16, 4, LRU) // 4 frames
	require.True(t, m.Allocate(1, 16, 0).Success) // pages 0-3 fill all frames, ticks 0..0

	// touch pages 1,2,3 at increasing ticks, leaving page 0 least recent.
	m.AccessPage(1, 1, 1)
	m.AccessPage(1, 2, 2)
	m.AccessPage(1, 3, 3)

	// a 5th page forces an eviction: page 0 should be the victim.
	fault := m.AccessPage(1, 4, 4)
	require.True(t, fault)

	for _, f := range m.SnapshotFrames() {
		require.NotEqual(t, 0, f.Page, "page 0 should have been evicted as least recently used")
	}
}

func TestPagedManager_ReleaseFreesAllFramesAndPageTable(t *testing.T) {
	m := NewPagedManager(16, 4, FIFO)
	require.True(t, m.Allocate(1, 16, 0).Success)
	require.Equal(t, 1.0, m.MemoryUtilization())

	m.Release(1)
	require.Equal(t, 0.0, m.MemoryUtilization())
	for _, f := range m.SnapshotFrames() {
		require.True(t, f.Free())
	}

	// re-accessing after release is a fresh fault, not a stale hit.
	fault := m.AccessPage(1, 0, 10)
	require.True(t, fault)
}

func TestPagedManager_OptimalApproximationSelectsSameVictimAsLRU(t *testing.T) {
	m := NewPagedManager(16, 4, Optimal)
	require.True(t, m.Allocate(1, 16, 0).Success)

	m.AccessPage(1, 1, 1)
	m.AccessPage(1, 2, 2)
	m.AccessPage(1, 3, 3)

	m.AccessPage(1, 4, 4)

	for _, f := range m.SnapshotFrames() {
		require.NotEqual(t, 0, f.Page)
	}
}
