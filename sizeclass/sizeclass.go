// Package sizeclass computes the allocator's size-class table: which byte
// count an allocation request rounds up to, how many objects move per
// batch between a ThreadCache and the CentralCache, and how many pages a
// fresh span for a class should carry.
//
// Everything here is pure and built once at init time, the same way
// runtime/msize.go's InitSizes fills class_to_size and
// class_to_allocnpages before the first allocation ever happens.
package sizeclass

import "fmt"

const (
	// PageShift is the log2 of the page size used for span bookkeeping.
	PageShift = 12
	// PageSize is 1<<PageShift bytes per page.
	PageSize = 1 << PageShift
	// MaxBytes is the largest request the small-object path serves.
	// Anything above this goes straight to the big-object path.
	MaxBytes = 64 * 1024

	minBatch = 2
	maxBatch = 512
)

// alignStep describes one piecewise-alignment range of the size-class
// table: sizes in (prev upper bound, upper] round up to a multiple of
// align.
type alignStep struct {
	upper int
	align int
}

var steps = []alignStep{
	{128, 8},
	{1024, 16},
	{8192, 128},
	{MaxBytes, 1024},
}

// classSizes[i] is the largest request size that falls in class i, i.e.
// the aligned object size the class carves its spans into.
var classSizes []int

func init() {
	classSizes = make([]int, 0, 224)
	lower := 0
	for _, s := range steps {
		for n := lower + s.align; n <= s.upper; n += s.align {
			classSizes = append(classSizes, n)
		}
		lower = s.upper
	}
}

// NumClasses is FREE_LIST_COUNT: the number of size classes the table
// defines. ThreadCache and CentralCache size their per-class arrays to
// this. It is a constant so it can size arrays; each alignment step
// contributes (upper - previous upper) / align classes, 184 in all.
const NumClasses = 128/8 + (1024-128)/16 + (8192-1024)/128 + (MaxBytes-8192)/1024

func checkRange(bytes int) {
	if bytes < 1 || bytes > MaxBytes {
		panic(fmt.Sprintf("sizeclass: %d bytes out of range [1, %d]", bytes, MaxBytes))
	}
}

// ClassIndex returns the zero-based size class that bytes rounds into.
// Panics if bytes is outside [1, MaxBytes] — callers are expected to have
// already dispatched big-object requests elsewhere (spec §4.4).
func ClassIndex(bytes int) int {
	checkRange(bytes)
	lo, hi := 0, len(classSizes)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if classSizes[mid] < bytes {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// AlignedSize rounds bytes up to the object size its size class carves
// objects into.
func AlignedSize(bytes int) int {
	return classSizes[ClassIndex(bytes)]
}

// ClassObjectSize returns the object size carved by class cls. Panics if
// cls is not a valid class index — a ContractViolation, since it can only
// be reached by feeding this package its own output back incorrectly.
func ClassObjectSize(cls int) int {
	if cls < 0 || cls >= len(classSizes) {
		panic(fmt.Sprintf("sizeclass: class %d out of range [0, %d)", cls, len(classSizes)))
	}
	return classSizes[cls]
}

// BatchLimit returns the clamped batch width used to move objects of this
// class between a ThreadCache and the CentralCache: larger objects move in
// smaller batches. A transfer moves at most about 64KiB, except for classes
// above 32KiB, where the lower clamp of 2 objects lets it move up to 128KiB.
func BatchLimit(bytes int) int {
	aligned := AlignedSize(bytes)
	n := MaxBytes / aligned
	if n < minBatch {
		return minBatch
	}
	if n > maxBatch {
		return maxBatch
	}
	return n
}

// SpanPageCount returns the number of pages a freshly carved span for this
// class should contain, chosen so the span holds at least BatchLimit
// objects.
func SpanPageCount(bytes int) int {
	aligned := AlignedSize(bytes)
	pages := (BatchLimit(bytes)*aligned + PageSize - 1) >> PageShift
	if pages < 1 {
		return 1
	}
	return pages
}

// Classes iterates every size class in ascending order, yielding the
// object size each one carves. Used by diagnostics and tests; not on any
// allocation fast path.
func Classes(yield func(cls, objectSize int)) {
	for i, sz := range classSizes {
		yield(i, sz)
	}
}
