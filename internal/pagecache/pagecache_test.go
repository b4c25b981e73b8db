package pagecache

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestCache() *PageCache {
	return New(12, NewMemProvider(1<<12), zerolog.Nop())
}

func TestNewSpanServesExactFit(t *testing.T) {
	pc := newTestCache()
	s, err := pc.NewSpan(3)
	if err != nil {
		t.Fatal(err)
	}
	if s.PageCount != 3 || s.UseCount != 1 {
		t.Fatalf("got PageCount=%d UseCount=%d, want 3,1", s.PageCount, s.UseCount)
	}
}

func TestNewSpanOutOfRangePanics(t *testing.T) {
	pc := newTestCache()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for n >= NPages")
		}
	}()
	pc.NewSpan(NPages)
}

func TestReleaseSpanCoalescesWithNeighbours(t *testing.T) {
	pc := newTestCache()

	s, err := pc.NewSpan(NPages - 1)
	if err != nil {
		t.Fatal(err)
	}
	full := s.PageCount

	a, err := pc.NewSpan(10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := pc.NewSpan(20)
	if err != nil {
		t.Fatal(err)
	}
	// The remainder of the second split is already sitting free in the
	// pool; releasing a and b should coalesce them with it and with
	// each other into one full-size span again.

	pc.ReleaseSpan(a)
	pc.ReleaseSpan(b)

	got := pc.FreePageCount()
	if got != full {
		t.Fatalf("FreePageCount() = %d, want %d (fully coalesced)", got, full)
	}
}

// TestReleaseSpanDoesNotCoalesceSpanStillOwnedElsewhere covers the race a
// review flagged: a span can read UseCount == 0 while still resident in a
// CentralCache bucket, between that bucket decrementing UseCount to zero
// and actually calling ReleaseSpan. A page-adjacent ReleaseSpan must not
// treat that span as a free neighbour (and must not touch its prev/next,
// which are not linked into any PageCache bucket at that point).
func TestReleaseSpanDoesNotCoalesceSpanStillOwnedElsewhere(t *testing.T) {
	pc := newTestCache()

	s, err := pc.NewSpan(NPages - 1)
	if err != nil {
		t.Fatal(err)
	}
	full := s.PageCount

	a, err := pc.NewSpan(10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := pc.NewSpan(20)
	if err != nil {
		t.Fatal(err)
	}

	// b's UseCount reads zero, as if a CentralCache bucket had just
	// decremented it, but nothing has called ReleaseSpan(b) yet — its
	// Location is still LocationInUse and it is not linked into any
	// freeSpans bucket.
	b.UseCount = 0

	// a sits immediately before b; releasing it must not mistake b for a
	// free neighbour merely because UseCount == 0.
	pc.ReleaseSpan(a)

	got := pc.FreePageCount()
	want := full - b.PageCount
	if got != want {
		t.Fatalf("FreePageCount() = %d, want %d (a released, b left alone)", got, want)
	}
}

func TestSpanForObjectRoundTrip(t *testing.T) {
	pc := newTestCache()
	s, err := pc.NewSpan(2)
	if err != nil {
		t.Fatal(err)
	}
	ptr := s.BaseAddr(pc.PageShift())
	got := pc.SpanForObject(ptr)
	if got != s {
		t.Fatalf("SpanForObject returned wrong span")
	}
}

func TestSpanForObjectUnknownPanics(t *testing.T) {
	pc := newTestCache()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unmanaged pointer")
		}
	}()
	pc.SpanForObject(0xdeadbeef000)
}

func TestAllocBigRoutesOSDirectPastNPages(t *testing.T) {
	pc := newTestCache()
	s, err := pc.AllocBig(uintptr(NPages) << pc.PageShift())
	if err != nil {
		t.Fatal(err)
	}
	if s.PageCount < NPages {
		t.Fatalf("expected OS-direct path, got PageCount=%d", s.PageCount)
	}
	if err := pc.FreeBig(s); err != nil {
		t.Fatal(err)
	}
}

func TestAllocBigSmallUsesSpanPool(t *testing.T) {
	pc := newTestCache()
	s, err := pc.AllocBig(5 << pc.PageShift())
	if err != nil {
		t.Fatal(err)
	}
	if s.PageCount >= NPages {
		t.Fatalf("expected pool-backed span, got PageCount=%d", s.PageCount)
	}
	if err := pc.FreeBig(s); err != nil {
		t.Fatal(err)
	}
	if got := pc.FreePageCount(); got < s.PageCount {
		t.Fatalf("FreePageCount() = %d, expected span's pages returned", got)
	}
}
