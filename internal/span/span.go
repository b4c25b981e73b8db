// Package span implements the shared bookkeeping structure that PageCache
// and CentralCache trade back and forth: a run of pages, optionally carved
// into a free list of equally sized objects.
//
// A Span always lives in exactly one place — a PageCache free bucket, a
// CentralCache class bucket, or "dispersed" with some of its objects
// checked out to ThreadCaches — mirroring runtime/mheap.go's mspan, with
// the GC sweep-generation bookkeeping that spec has no use for stripped
// out.
package span

import "unsafe"

// PageID identifies an OS page as address>>PageShift. The shift is a
// parameter rather than a constant here so this package stays independent
// of sizeclass; callers agree on one shift process-wide.
type PageID uintptr

// Location records which domain currently owns a span's mutable
// bookkeeping (FreeListHead, UseCount): mirrors runtime/mheap.go's
// mSpanState discipline, but here the only two possibilities that matter
// to coalescing are "idle in a PageCache free bucket" and "handed off to
// someone else" (a CentralCache bucket, or a single big-object caller).
// Location itself is mutated only under the PageCache's lock, by
// PageCache, never by CentralCache or ThreadCache — it is the single
// source of truth PageCache.ReleaseSpan consults to decide whether a
// page-adjacent neighbour is actually free, rather than inferring that
// from UseCount, a field a concurrent CentralCache may be transitioning
// through zero on its own schedule.
type Location uint8

const (
	// LocationInUse is the zero value: a span not currently resident in
	// any PageCache free bucket, whether it is still being constructed,
	// sitting in a CentralCache bucket, or serving a big-object request.
	// Never a coalescing candidate.
	LocationInUse Location = iota
	// LocationFree means the span is linked into a PageCache free
	// bucket right now and is a legitimate coalescing candidate.
	LocationFree
)

// Span is a contiguous run of pages, carved into objects of ObjectSize
// once it is handed to a CentralCache bucket.
type Span struct {
	PageID     PageID // PageID of the first page in the run.
	PageCount  uintptr
	ObjectSize uintptr // 0 while free / not yet carved.

	// FreeListHead is the head of the intrusive singly linked free list
	// threaded through the span's own bytes: the first pointer-sized
	// word of each free object stores the address of the next one, the
	// same trick runtime/mcache.go's gclink/gclinkptr applies to avoid
	// any per-object header.
	FreeListHead unsafe.Pointer
	UseCount     int

	// Location is PageCache-owned; see the Location type doc.
	Location Location

	prev, next *Span // SpanList intrusive links.
}

// BaseAddr returns the address of the first byte of the span, given the
// page shift in effect.
func (s *Span) BaseAddr(pageShift uint) uintptr {
	return uintptr(s.PageID) << pageShift
}

// Bytes returns the span's size in bytes.
func (s *Span) Bytes(pageShift uint) uintptr {
	return s.PageCount << pageShift
}

// PushObject threads ptr onto the front of the span's free list. The
// caller must hold whatever lock currently owns the span.
func (s *Span) PushObject(ptr unsafe.Pointer) {
	*(*unsafe.Pointer)(ptr) = s.FreeListHead
	s.FreeListHead = ptr
}

// PopObject detaches and returns the head of the span's free list, or nil
// if the list is empty. The caller must hold whatever lock currently owns
// the span.
func (s *Span) PopObject() unsafe.Pointer {
	head := s.FreeListHead
	if head == nil {
		return nil
	}
	s.FreeListHead = *(*unsafe.Pointer)(head)
	return head
}

// Carve partitions the span's byte range into a chain of objectSize-sized
// free objects and sets FreeListHead/ObjectSize accordingly. Called once,
// when a fresh raw span is handed to a CentralCache bucket.
func (s *Span) Carve(objectSize uintptr, pageShift uint) {
	s.ObjectSize = objectSize
	base := s.BaseAddr(pageShift)
	total := s.Bytes(pageShift)
	count := total / objectSize
	s.FreeListHead = nil
	// Thread from the highest address down so the list ends up head ==
	// lowest address, matching the source's carving order.
	for i := count; i > 0; i-- {
		obj := unsafe.Pointer(base + (i-1)*objectSize)
		s.PushObject(obj)
	}
}
