package memory

// Unit is an independent capacity island owned by the engine: a pair of a
// contiguous manager and a paged manager sharing the same MiB capacity.
type Unit struct {
	ID         int
	Contiguous *ContiguousManager
	Paged      *PagedManager
}

// NewUnit constructs a Unit of capacityMB, using the given contiguous
// strategy and page-replacement policy.
func NewUnit(id, capacityMB int, strategy FitStrategy, pageSizeMB int, replacement ReplacementPolicy) *Unit {
	return &Unit{
		ID:         id,
		Contiguous: NewContiguousManager(capacityMB, strategy),
		Paged:      NewPagedManager(capacityMB, pageSizeMB, replacement),
	}
}

// FreeMB returns the contiguous manager's total free capacity, used by the
// engine to rank units by descending free space for auto-spawn placement.
func (u *Unit) FreeMB() int {
	free := 0
	for _, b := range u.Contiguous.SnapshotBlocks() {
		if b.Free() {
			free += b.Size()
		}
	}
	return free
}

// Tick advances the contiguous manager by one logical clock tick (periodic
// compaction bookkeeping). The paged manager has no periodic maintenance of
// its own — faults and evictions are driven entirely by Allocate and
// AccessPage calls —
// so there is nothing for it to do on a bare tick.
func (u *Unit) Tick(currentTick int) {
	u.Contiguous.Tick(currentTick)
}

// Release frees pid's allocation in both sub-managers.
func (u *Unit) Release(pid int) {
	u.Contiguous.Release(pid)
	u.Paged.Release(pid)
}
