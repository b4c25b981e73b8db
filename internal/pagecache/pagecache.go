// Package pagecache implements the process-wide pool of raw spans: it
// splits larger free spans to satisfy smaller requests, coalesces free
// neighbours back together on release, owns the page↔span map, and routes
// objects bigger than the CentralCache's span pool straight to the OS.
//
// Grounded on _examples/original_source/PageCache.cpp's _NewSpan and
// ReleaseSpanToPageCache, restructured around Go's sync.Mutex and the
// pagemap package instead of a raw unordered_map.
package pagecache

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/myc13381/ConcurrentMemoryPool/internal/pagemap"
	"github.com/myc13381/ConcurrentMemoryPool/internal/span"
)

// NPages is NPAGES from spec §6: free_spans[1..NPages-1] are pooled;
// anything at or above NPages pages goes straight to the OS.
const NPages = 129

// PageCache owns the page pool and the page↔span map; each Allocator builds
// one, and the process-wide default Allocator's is shared by the whole
// process. One global mutex protects both, per spec §4.3/§5.
type PageCache struct {
	mu        sync.Mutex
	freeSpans [NPages]span.SpanList // index 0 unused
	pageMap   *pagemap.Map
	provider  PageProvider
	pageShift uint
	pageSize  uintptr
	logger    zerolog.Logger
}

// New builds a PageCache over the given page shift and page provider. Test
// code supplies a mock PageProvider; production code uses the platform
// default from NewOSProvider.
func New(pageShift uint, provider PageProvider, logger zerolog.Logger) *PageCache {
	return &PageCache{
		pageMap:   pagemap.New(),
		provider:  provider,
		pageShift: pageShift,
		pageSize:  1 << pageShift,
		logger:    logger,
	}
}

func contractViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("pagecache: contract violation: "+format, args...))
}

// NewSpan returns a free span of exactly n pages, splitting a larger span
// or reserving fresh OS memory as needed. 1 <= n < NPages.
func (pc *PageCache) NewSpan(n uintptr) (*span.Span, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.newSpanLocked(n)
}

func (pc *PageCache) newSpanLocked(n uintptr) (*span.Span, error) {
	if n < 1 || n >= NPages {
		contractViolation("NewSpan(%d): want 1 <= n < %d", n, NPages)
	}

	if s := pc.freeSpans[n].PopFront(); s != nil {
		s.UseCount = 1
		s.Location = span.LocationInUse
		return s, nil
	}

	for i := n + 1; i < NPages; i++ {
		s := pc.freeSpans[i].PopFront()
		if s == nil {
			continue
		}
		head := &span.Span{
			PageID:    s.PageID,
			PageCount: n,
			UseCount:  1,
			Location:  span.LocationInUse,
		}
		s.PageID += span.PageID(n)
		s.PageCount -= n
		s.Location = span.LocationFree
		pc.pageMap.Insert(head)
		pc.freeSpans[s.PageCount].PushFront(s)
		pc.logger.Debug().
			Uint64("span_pages", uint64(n)).
			Uint64("remainder_pages", uint64(s.PageCount)).
			Msg("pagecache: split span")
		return head, nil
	}

	base, err := pc.provider.Reserve(NPages - 1)
	if err != nil {
		return nil, errors.Wrap(err, "pagecache: reserve fresh OS span")
	}
	fresh := &span.Span{
		PageID:    span.PageID(base >> pc.pageShift),
		PageCount: NPages - 1,
		Location:  span.LocationFree,
	}
	pc.pageMap.Insert(fresh)
	pc.freeSpans[fresh.PageCount].PushFront(fresh)
	pc.logger.Debug().Uint64("pages", NPages-1).Msg("pagecache: reserved fresh OS span")
	return pc.newSpanLocked(n)
}

// ReleaseSpan returns a fully-free span to the pool, coalescing it
// aggressively with both immediate page-address neighbours before
// reinserting it. s must not currently be linked into any list.
func (pc *PageCache) ReleaseSpan(s *span.Span) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	s.ObjectSize = 0
	s.UseCount = 0
	s.Location = span.LocationFree

	// Backward merge: absorb the free span immediately before us. A
	// neighbour is only a candidate once it is actually resident in a
	// freeSpans bucket (Location == LocationFree) — not merely because
	// its UseCount currently reads zero, which can be true transiently
	// while a CentralCache bucket still holds it (e.g. between a
	// ReleaseRange decrementing UseCount to zero and the span reaching
	// this function). Location is set only here, under this lock, so it
	// can't observe that transient state.
	for {
		prevID := s.PageID - 1
		prev := pc.pageMap.Lookup(prevID)
		if prev == nil || prev.Location != span.LocationFree {
			break
		}
		if s.PageCount+prev.PageCount > NPages-1 {
			break
		}
		pc.freeSpans[prev.PageCount].Erase(prev)
		prev.PageCount += s.PageCount
		// Remap every page of the absorbed span onto the surviving
		// parent — not just one page. The spec calls out a suspected
		// off-by-one here in the source this is ported from; this
		// loop deliberately covers [s.PageID, s.PageID+s.PageCount).
		for i := span.PageID(0); i < span.PageID(s.PageCount); i++ {
			pc.pageMap.InsertPage(s.PageID+i, prev)
		}
		s = prev
	}

	// Forward merge: absorb the free span immediately after us. Same
	// Location-based freeness check as the backward merge above.
	for {
		nextID := s.PageID + span.PageID(s.PageCount)
		next := pc.pageMap.Lookup(nextID)
		if next == nil || next.Location != span.LocationFree {
			break
		}
		if s.PageCount+next.PageCount > NPages-1 {
			break
		}
		pc.freeSpans[next.PageCount].Erase(next)
		merged := s.PageCount + next.PageCount
		for i := span.PageID(0); i < span.PageID(next.PageCount); i++ {
			pc.pageMap.InsertPage(next.PageID+i, s)
		}
		s.PageCount = merged
	}

	pc.logger.Debug().Uint64("pages", uint64(s.PageCount)).Msg("pagecache: coalesced span")
	pc.freeSpans[s.PageCount].PushFront(s)
}

// SpanForObject returns the span that owns ptr. ptr must be an address
// previously handed out by this PageCache (directly or via a
// CentralCache/ThreadCache it fed); otherwise this is a ContractViolation.
func (pc *PageCache) SpanForObject(ptr uintptr) *span.Span {
	id := span.PageID(ptr >> pc.pageShift)
	pc.mu.Lock()
	s := pc.pageMap.Lookup(id)
	pc.mu.Unlock()
	if s == nil {
		contractViolation("no span owns pointer %#x (page %d)", ptr, id)
	}
	return s
}

// AllocBig serves a request larger than MAX_BYTES: pool-backed if it fits
// under NPages pages, otherwise a direct, unpooled OS reservation.
func (pc *PageCache) AllocBig(bytes uintptr) (*span.Span, error) {
	npages := (bytes + pc.pageSize - 1) >> pc.pageShift
	if npages < NPages {
		s, err := pc.NewSpan(npages)
		if err != nil {
			return nil, err
		}
		s.ObjectSize = npages << pc.pageShift
		s.UseCount = 1
		return s, nil
	}

	base, err := pc.provider.Reserve(npages)
	if err != nil {
		return nil, errors.Wrap(err, "pagecache: reserve big object")
	}
	s := &span.Span{
		PageID:     span.PageID(base >> pc.pageShift),
		PageCount:  npages,
		ObjectSize: npages << pc.pageShift,
		UseCount:   1,
		Location:   span.LocationInUse,
	}
	pc.mu.Lock()
	pc.pageMap.Insert(s)
	pc.mu.Unlock()
	pc.logger.Debug().Uint64("pages", uint64(npages)).Msg("pagecache: direct OS reservation for big object")
	return s, nil
}

// FreeBig releases a span obtained from AllocBig. Pool-backed spans go
// through the normal coalescing release; direct OS reservations are
// unmapped and forgotten.
func (pc *PageCache) FreeBig(s *span.Span) error {
	if s.PageCount < NPages {
		pc.ReleaseSpan(s)
		return nil
	}
	pc.mu.Lock()
	pc.pageMap.Erase(s)
	pc.mu.Unlock()
	base := s.BaseAddr(pc.pageShift)
	if err := pc.provider.Release(base, s.PageCount); err != nil {
		return errors.Wrap(err, "pagecache: release big object")
	}
	return nil
}

// PageShift reports the page shift this cache was constructed with.
func (pc *PageCache) PageShift() uint { return pc.pageShift }

// PageSize reports 1<<PageShift.
func (pc *PageCache) PageSize() uintptr { return pc.pageSize }

// FreePageCount sums the pages currently sitting idle in freeSpans, for
// tests and the façade's Stats snapshot.
func (pc *PageCache) FreePageCount() uintptr {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	var total uintptr
	for i := 1; i < NPages; i++ {
		pc.freeSpans[i].ForEach(func(s *span.Span) bool {
			total += s.PageCount
			return true
		})
	}
	return total
}
