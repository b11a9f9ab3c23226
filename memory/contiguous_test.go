package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContiguousManager_AllocateReleaseRoundTrip(t *testing.T) {
	m := NewContiguousManager(256, FirstFit)
	before := m.SnapshotBlocks()

	res := m.Allocate(1, 8)
	require.True(t, res.Success)
	m.Release(1)

	require.Equal(t, before, m.SnapshotBlocks())
}

func TestContiguousManager_CompactTwiceIsIdempotent(t *testing.T) {
	m := NewContiguousManager(64, FirstFit)
	require.True(t, m.Allocate(1, 16).Success)
	require.True(t, m.Allocate(2, 16).Success)
	m.Release(1)

	m.Compact()
	once := m.SnapshotBlocks()
	m.Compact()
	require.Equal(t, once, m.SnapshotBlocks())
}

func TestContiguousManager_BestFitVsFirstFit(t *testing.T) {
	// Build the hole pattern [16 free, 8 used, 12 free, 8 used, 20 free]
	// by allocating everything first, then releasing the two placeholder
	// blocks (pids 100 and 101), leaving the three free holes.
	build := func(strategy FitStrategy) *ContiguousManager {
		m := NewContiguousManager(64, strategy)
		require.True(t, m.Allocate(100, 16).Success) // becomes free hole 1
		require.True(t, m.Allocate(1, 8).Success)     // stays used
		require.True(t, m.Allocate(101, 12).Success)  // becomes free hole 2
		require.True(t, m.Allocate(2, 8).Success)      // stays used
		// remaining 20 MiB is the trailing free hole already.
		m.Release(100)
		m.Release(101)
		return m
	}

	freeSizes := func(blocks []Block) []int {
		var sizes []int
		for _, b := range blocks {
			if b.Free() {
				sizes = append(sizes, b.Size())
			}
		}
		return sizes
	}

	bf := build(BestFit)
	res := bf.Allocate(3, 12)
	require.True(t, res.Success)
	// the 12 MiB hole is consumed exactly: the other two holes (16, 20) survive untouched.
	require.ElementsMatch(t, []int{16, 20}, freeSizes(bf.SnapshotBlocks()))

	ff := build(FirstFit)
	res = ff.Allocate(3, 12)
	require.True(t, res.Success)
	// first-fit takes the first (16 MiB) hole, splitting off a 4 MiB remainder.
	require.ElementsMatch(t, []int{4, 12, 20}, freeSizes(ff.SnapshotBlocks()))
}

func TestContiguousManager_FragmentationAndEfficiency(t *testing.T) {
	m := NewContiguousManager(100, FirstFit)
	require.True(t, m.Allocate(1, 50).Success)
	// one free block of 50 remains: fragmentation excludes the largest (only) free block.
	require.Equal(t, 0.0, m.FragmentationRatio())
	require.InDelta(t, 0.5, m.Efficiency(), 1e-9)
}

func TestContiguousManager_AllocationRejectedIsNormalOutcome(t *testing.T) {
	m := NewContiguousManager(10, FirstFit)
	res := m.Allocate(1, 20)
	require.False(t, res.Success)
}

func TestContiguousManager_BlocksPartitionCapacityNoGaps(t *testing.T) {
	m := NewContiguousManager(32, WorstFit)
	require.True(t, m.Allocate(1, 10).Success)
	require.True(t, m.Allocate(2, 5).Success)
	m.Release(1)

	blocks := m.SnapshotBlocks()
	require.Equal(t, 0, blocks[0].Start)
	for i := 1; i < len(blocks); i++ {
		require.Equal(t, blocks[i-1].End, blocks[i].Start, "blocks must be contiguous with no gaps")
	}
	require.Equal(t, 32, blocks[len(blocks)-1].End)
	for i := 0; i+1 < len(blocks); i++ {
		require.False(t, blocks[i].Free() && blocks[i+1].Free(), "adjacent free blocks must be merged")
	}
}
