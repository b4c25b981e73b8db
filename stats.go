package cmempool

// Stats is a point-in-time snapshot of pool-wide bookkeeping, useful for
// tests and diagnostics. It takes the PageCache's lock briefly to read a
// consistent count and is not meant to be called from a hot path.
type Stats struct {
	// FreePages is the number of pages currently sitting idle in the
	// PageCache's free-span pool, not yet released back to the OS.
	FreePages uintptr
	// PageSize is the byte size of one page for this Allocator.
	PageSize uintptr
}

// Stats returns a snapshot of a's page pool.
func (a *Allocator) Stats() Stats {
	return Stats{
		FreePages: a.pageCache.FreePageCount(),
		PageSize:  a.pageCache.PageSize(),
	}
}

// StatsSnapshot returns a snapshot of the process-wide default Allocator's
// page pool.
func StatsSnapshot() Stats {
	return defaultAllocator().Stats()
}
