// Package pagemap implements the page↔span map: given any page inside
// managed memory, which Span currently owns it. PageCache is the map's
// only writer; every insert, lookup, and erase happens under the
// PageCache's own lock (spec §5), so this package does no locking of its
// own — it is a bookkeeping structure, not a concurrent one.
//
// A plain Go map is spec-conformant (spec §9: "a hash map ... is
// simplest"); the radix-tree alternative the original source supports
// behind USE_RADIX_TREE is out of scope here (spec §1) but would satisfy
// the same Insert/Lookup/Erase contract.
package pagemap

import "github.com/myc13381/ConcurrentMemoryPool/internal/span"

// Map records, for every page the PageCache has ever carved or handed to
// the OS-direct big-object path, which Span currently owns it. It mandates
// every-page coverage (spec §9's second open question): a span occupying
// k pages has k entries, not just a first/last-page shortcut, so
// SpanForObject resolves any in-bounds pointer in O(1).
type Map struct {
	pages map[span.PageID]*span.Span
}

// New returns an empty Map.
func New() *Map {
	return &Map{pages: make(map[span.PageID]*span.Span)}
}

// Insert records every page of s as owned by s, overwriting any prior
// owner for those pages. PageCache uses it to register a fresh OS
// reservation, the head of a split, and a direct big-object span.
func (m *Map) Insert(s *span.Span) {
	for i := span.PageID(0); i < span.PageID(s.PageCount); i++ {
		m.pages[s.PageID+i] = s
	}
}

// InsertPage records a single page as owned by s. PageCache's coalescing
// loops use it to remap each page of an absorbed neighbour onto the merged
// span.
func (m *Map) InsertPage(id span.PageID, s *span.Span) {
	m.pages[id] = s
}

// Lookup returns the span owning id, or nil if id is not currently
// managed memory.
func (m *Map) Lookup(id span.PageID) *span.Span {
	return m.pages[id]
}

// Erase removes every page of s from the map. Called when s is released
// back to the OS and no longer exists as managed memory.
func (m *Map) Erase(s *span.Span) {
	for i := span.PageID(0); i < span.PageID(s.PageCount); i++ {
		delete(m.pages, s.PageID+i)
	}
}

// Len reports how many pages are currently tracked. Diagnostics only.
func (m *Map) Len() int {
	return len(m.pages)
}
