// Package memory implements the two memory subsystems of the simulator: a
// contiguous allocator with First/Best/Worst-Fit strategies and compaction,
// and a paged allocator with FIFO/LRU/Optimal-approximation replacement.
package memory

import (
	"fmt"
	"strings"
)

// FitStrategy selects which free block the contiguous allocator chooses
// when more than one satisfies a request.
type FitStrategy int

const (
	// FirstFit picks the first free block with size >= the request.
	FirstFit FitStrategy = iota
	// BestFit picks the smallest free block with size >= the request.
	BestFit
	// WorstFit picks the largest free block.
	WorstFit
)

// String implements fmt.Stringer.
func (s FitStrategy) String() string {
	switch s {
	case FirstFit:
		return "FirstFit"
	case BestFit:
		return "BestFit"
	case WorstFit:
		return "WorstFit"
	default:
		return fmt.Sprintf("FitStrategy(%d)", int(s))
	}
}

// ParseFitStrategy maps a case-insensitive algorithm name to a FitStrategy.
func ParseFitStrategy(name string) (FitStrategy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "firstfit", "first-fit", "first_fit", "first":
		return FirstFit, true
	case "bestfit", "best-fit", "best_fit", "best":
		return BestFit, true
	case "worstfit", "worst-fit", "worst_fit", "worst":
		return WorstFit, true
	default:
		return 0, false
	}
}

const (
	// DefaultCompactFragmentationThreshold is the fragmentation ratio at or
	// above which Tick triggers an immediate compaction.
	DefaultCompactFragmentationThreshold = 0.30
	// DefaultCompactInterval is the number of ticks between interval-driven
	// compactions, subject also to DefaultCompactMinFragmentation.
	DefaultCompactInterval = 50
	// DefaultCompactMinFragmentation is the minimum fragmentation ratio
	// required for an interval-driven compaction to actually fire.
	DefaultCompactMinFragmentation = 0.10

	// noOwner marks a Block as free.
	noOwner = -1
)

// Block is a contiguous interval [Start, End) of MiB, either free (Owner ==
// NoOwner()) or owned by a single process.
type Block struct {
	Start, End int
	Owner      int
}

// NoOwner is the sentinel Owner value for a free block.
func NoOwner() int { return noOwner }

// Size returns the block's size in MiB.
func (b Block) Size() int { return b.End - b.Start }

// Free reports whether the block is unowned.
func (b Block) Free() bool { return b.Owner == noOwner }

// ContiguousResult is the outcome of an Allocate call.
type ContiguousResult struct {
	Success       bool
	Fragmentation float64
	Efficiency    float64
	Algorithm     FitStrategy
}

// ContiguousManager is a single memory-unit's contiguous block allocator.
type ContiguousManager struct {
	totalMB              int
	strategy             FitStrategy
	blocks               []Block
	compactInterval      int
	compactThreshold     float64
	compactMinFragment   float64
	lastCompactTick      int
}

// NewContiguousManager constructs a manager over [0, totalMB) MiB, entirely
// free, using strategy for allocation decisions.
func NewContiguousManager(totalMB int, strategy FitStrategy) *ContiguousManager {
	return &ContiguousManager{
		totalMB:            totalMB,
		strategy:           strategy,
		blocks:             []Block{{Start: 0, End: totalMB, Owner: noOwner}},
		compactInterval:    DefaultCompactInterval,
		compactThreshold:   DefaultCompactFragmentationThreshold,
		compactMinFragment: DefaultCompactMinFragmentation,
	}
}

// Strategy returns the configured fit strategy.
func (m *ContiguousManager) Strategy() FitStrategy { return m.strategy }

// SetStrategy changes the fit strategy used for future allocations. It does
// not alter existing blocks.
func (m *ContiguousManager) SetStrategy(s FitStrategy) { m.strategy = s }

// TotalMB returns the unit's total capacity.
func (m *ContiguousManager) TotalMB() int { return m.totalMB }

// Allocate attempts to satisfy a sizeMB request on behalf of pid. A false
// Success is a normal outcome, not an error: the caller may retry on
// another memory unit.
func (m *ContiguousManager) Allocate(pid, sizeMB int) ContiguousResult {
	idx := m.findCandidate(sizeMB)
	if idx < 0 {
		return ContiguousResult{
			Success:       false,
			Fragmentation: m.FragmentationRatio(),
			Efficiency:    m.Efficiency(),
			Algorithm:     m.strategy,
		}
	}

	b := m.blocks[idx]
	if b.Size() == sizeMB {
		m.blocks[idx].Owner = pid
	} else {
		owned := Block{Start: b.Start, End: b.Start + sizeMB, Owner: pid}
		remainder := Block{Start: b.Start + sizeMB, End: b.End, Owner: noOwner}
		m.blocks[idx] = owned
		m.blocks = append(m.blocks, Block{})
		copy(m.blocks[idx+2:], m.blocks[idx+1:])
		m.blocks[idx+1] = remainder
	}

	return ContiguousResult{
		Success:       true,
		Fragmentation: m.FragmentationRatio(),
		Efficiency:    m.Efficiency(),
		Algorithm:     m.strategy,
	}
}

// findCandidate returns the index of the chosen free block, or -1.
func (m *ContiguousManager) findCandidate(sizeMB int) int {
	best := -1
	for i, b := range m.blocks {
		if !b.Free() || b.Size() < sizeMB {
			continue
		}
		switch m.strategy {
		case FirstFit:
			return i
		case BestFit:
			if best < 0 || b.Size() < m.blocks[best].Size() {
				best = i
			}
		case WorstFit:
			if best < 0 || b.Size() > m.blocks[best].Size() {
				best = i
			}
		}
	}
	return best
}

// Release frees the block owned by pid, if any, then merges adjacent free
// blocks in a single left-to-right pass.
func (m *ContiguousManager) Release(pid int) {
	for i := range m.blocks {
		if m.blocks[i].Owner == pid {
			m.blocks[i].Owner = noOwner
			break
		}
	}
	m.mergeFree()
}

// mergeFree combines consecutive free blocks into one, left to right.
func (m *ContiguousManager) mergeFree() {
	merged := m.blocks[:0:0]
	for _, b := range m.blocks {
		if n := len(merged); n > 0 && merged[n-1].Free() && b.Free() {
			merged[n-1].End = b.End
			continue
		}
		merged = append(merged, b)
	}
	m.blocks = merged
}

// Compact slides every allocated block leftward, preserving order, and
// appends one trailing free block for the residual capacity. Applying
// Compact twice in a row is idempotent: the second call is a no-op because
// the first already removed all internal fragmentation.
func (m *ContiguousManager) Compact() {
	out := make([]Block, 0, len(m.blocks)+1)
	cursor := 0
	for _, b := range m.blocks {
		if b.Free() {
			continue
		}
		size := b.Size()
		out = append(out, Block{Start: cursor, End: cursor + size, Owner: b.Owner})
		cursor += size
	}
	if cursor < m.totalMB {
		out = append(out, Block{Start: cursor, End: m.totalMB, Owner: noOwner})
	}
	m.blocks = out
}

// Tick advances the manager's internal bookkeeping by one logical clock
// tick, auto-compacting when fragmentation is high, or periodically when it
// is merely elevated.
func (m *ContiguousManager) Tick(currentTick int) {
	frag := m.FragmentationRatio()
	switch {
	case frag >= m.compactThreshold:
		m.Compact()
		m.lastCompactTick = currentTick
	case currentTick-m.lastCompactTick >= m.compactInterval && frag > m.compactMinFragment:
		m.Compact()
		m.lastCompactTick = currentTick
	}
}

// FragmentationRatio is the external-fragmentation metric: the sum of free
// block sizes excluding the single largest, divided by total capacity.
func (m *ContiguousManager) FragmentationRatio() float64 {
	if m.totalMB == 0 {
		return 0
	}
	largest := 0
	sum := 0
	for _, b := range m.blocks {
		if !b.Free() {
			continue
		}
		sum += b.Size()
		if b.Size() > largest {
			largest = b.Size()
		}
	}
	return float64(sum-largest) / float64(m.totalMB)
}

// Efficiency is (used/total) * (1 - fragmentation).
func (m *ContiguousManager) Efficiency() float64 {
	if m.totalMB == 0 {
		return 0
	}
	used := 0
	for _, b := range m.blocks {
		if !b.Free() {
			used += b.Size()
		}
	}
	return (float64(used) / float64(m.totalMB)) * (1 - m.FragmentationRatio())
}

// SnapshotBlocks returns an immutable copy of the current block list.
func (m *ContiguousManager) SnapshotBlocks() []Block {
	out := make([]Block, len(m.blocks))
	copy(out, m.blocks)
	return out
}
