package pagemap

import (
	"testing"

	"github.com/myc13381/ConcurrentMemoryPool/internal/span"
)

func TestInsertLookupErase(t *testing.T) {
	m := New()
	s := &span.Span{PageID: 10, PageCount: 3}
	m.Insert(s)

	for _, id := range []span.PageID{10, 11, 12} {
		if got := m.Lookup(id); got != s {
			t.Fatalf("Lookup(%d) = %v, want s", id, got)
		}
	}
	if got := m.Lookup(13); got != nil {
		t.Fatalf("Lookup(13) = %v, want nil", got)
	}

	m.Erase(s)
	for _, id := range []span.PageID{10, 11, 12} {
		if got := m.Lookup(id); got != nil {
			t.Fatalf("after Erase, Lookup(%d) = %v, want nil", id, got)
		}
	}
}

func TestInsertOverwritesPriorOwner(t *testing.T) {
	m := New()
	a := &span.Span{PageID: 5, PageCount: 2}
	b := &span.Span{PageID: 5, PageCount: 4}
	m.Insert(a)
	m.Insert(b)
	for _, id := range []span.PageID{5, 6, 7, 8} {
		if got := m.Lookup(id); got != b {
			t.Fatalf("Lookup(%d) = %v, want b (merged owner)", id, got)
		}
	}
}

func TestLenTracksPages(t *testing.T) {
	m := New()
	m.Insert(&span.Span{PageID: 0, PageCount: 5})
	if m.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", m.Len())
	}
}
