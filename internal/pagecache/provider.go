package pagecache

import "github.com/pkg/errors"

// ErrOutOfMemory is returned by a PageProvider (and surfaces, wrapped,
// from ConcurrentAlloc) when the OS cannot satisfy a reservation. The
// public façade raises it as a panic; it also panics on a failed release
// of a big object and on contract violations.
var ErrOutOfMemory = errors.New("pagecache: out of memory")

// PageProvider is the abstract OS page provider the spec places out of
// scope beyond its contract (spec §1, §6): reserve and release whole,
// contiguous, committed pages. Implementations wrap a platform virtual
// memory primitive (mmap/munmap, VirtualAlloc/VirtualFree); PageCache
// never talks to the OS any other way.
type PageProvider interface {
	// Reserve returns the base address of n contiguous, committed,
	// readable-writable pages, PageSize-aligned. Freshness is
	// guaranteed; zero-initialization is not.
	Reserve(n uintptr) (base uintptr, err error)
	// Release returns exactly the region a prior Reserve(n) handed
	// out, identified by its base address.
	Release(base uintptr, n uintptr) error
}
