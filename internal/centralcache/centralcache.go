// Package centralcache implements the process-wide, per-size-class span
// pool mediating bulk transfers between ThreadCaches and the PageCache.
// One instance per Allocator; one SpanList (and mutex) per size class, per
// spec §4.2 and runtime/mcentral.go's "collects all spans of a given size
// class" shape, with the GC sweep-generation split that mcentral.go
// carries dropped — this spec has no collector to coordinate with.
package centralcache

import (
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/myc13381/ConcurrentMemoryPool/internal/pagecache"
	"github.com/myc13381/ConcurrentMemoryPool/internal/span"
	"github.com/myc13381/ConcurrentMemoryPool/sizeclass"
)

// CentralCache mediates fetch/release of batches of free objects between
// ThreadCaches and the spans it holds, one SpanList bucket per size class.
// Acquiring buckets[cls].Mu may lead to acquiring the PageCache's global
// lock (span miss, span exhaustion); it is never the reverse (spec §4.2,
// §5's lock hierarchy).
type CentralCache struct {
	buckets   [sizeclass.NumClasses]span.SpanList
	pageCache *pagecache.PageCache
	pageShift uint
	logger    zerolog.Logger
}

// New builds a CentralCache backed by pc.
func New(pc *pagecache.PageCache, logger zerolog.Logger) *CentralCache {
	return &CentralCache{pageCache: pc, pageShift: pc.PageShift(), logger: logger}
}

func contractViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("centralcache: contract violation: "+format, args...))
}

// FetchRange detaches up to requested objects of class cls from whichever
// span in the bucket has free capacity, fetching and carving a fresh span
// from the PageCache first if no span in the bucket has a free object. It
// returns the chain's head, tail, and the actual count, which may be less
// than requested —
// spec §4.2 treats a short return as a legitimate success, not an error.
func (cc *CentralCache) FetchRange(cls int, requested int) (head, tail unsafe.Pointer, count int, err error) {
	if requested <= 0 {
		return nil, nil, 0, nil
	}
	objectSize := uintptr(sizeclass.ClassObjectSize(cls))
	b := &cc.buckets[cls]

	b.Mu.Lock()
	s := b.Find(func(s *span.Span) bool { return s.FreeListHead != nil })
	if s == nil {
		b.Mu.Unlock()
		pages := uintptr(sizeclass.SpanPageCount(int(objectSize)))
		fresh, ferr := cc.pageCache.NewSpan(pages)
		if ferr != nil {
			return nil, nil, 0, ferr
		}
		fresh.Carve(objectSize, cc.pageShift)
		// A freshly carved span arrives with UseCount == 1, PageCache's
		// marker that it is no longer sitting free in its own pool
		// (see pagecache.newSpanLocked); reset it to 0 here since none
		// of its objects are checked out to a ThreadCache yet — they're
		// all still on the span's own free list, about to be counted
		// below as they're handed out.
		fresh.UseCount = 0
		cc.logger.Debug().
			Int("class", cls).
			Uint64("pages", uint64(pages)).
			Msg("centralcache: carved fresh span")
		b.Mu.Lock()
		b.PushFront(fresh)
		s = fresh
	}

	objs := make([]unsafe.Pointer, 0, requested)
	for len(objs) < requested {
		obj := s.PopObject()
		if obj == nil {
			break
		}
		objs = append(objs, obj)
	}
	for i, obj := range objs {
		var next unsafe.Pointer
		if i+1 < len(objs) {
			next = objs[i+1]
		}
		*(*unsafe.Pointer)(obj) = next
	}
	if len(objs) > 0 {
		head, tail = objs[0], objs[len(objs)-1]
	}
	s.UseCount += len(objs)
	count = len(objs)
	b.Mu.Unlock()
	return head, tail, count, nil
}

// ReleaseRange returns a singly linked chain of objects of class cls to
// their owning spans, decrementing use_count and handing any span that
// drains to zero back to the PageCache.
func (cc *CentralCache) ReleaseRange(cls int, head unsafe.Pointer) error {
	b := &cc.buckets[cls]
	var drained []*span.Span

	b.Mu.Lock()
	for obj := head; obj != nil; {
		next := *(*unsafe.Pointer)(obj)
		owner := cc.pageCache.SpanForObject(uintptr(obj))
		owner.PushObject(obj)
		owner.UseCount--
		if owner.UseCount < 0 {
			b.Mu.Unlock()
			contractViolation("span use_count went negative for class %d", cls)
		}
		if owner.UseCount == 0 {
			b.Erase(owner)
			drained = append(drained, owner)
		}
		obj = next
	}
	b.Mu.Unlock()

	for _, s := range drained {
		cc.pageCache.ReleaseSpan(s)
	}
	return nil
}

// BucketLen reports how many spans sit in class cls's bucket. Diagnostics
// and tests only.
func (cc *CentralCache) BucketLen(cls int) int {
	b := &cc.buckets[cls]
	b.Mu.Lock()
	defer b.Mu.Unlock()
	return b.Len()
}
