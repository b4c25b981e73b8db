package centralcache

import (
	"testing"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/myc13381/ConcurrentMemoryPool/internal/pagecache"
)

func newTestCentral(t *testing.T) *CentralCache {
	t.Helper()
	pc := pagecache.New(12, pagecache.NewMemProvider(1<<12), zerolog.Nop())
	return New(pc, zerolog.Nop())
}

func chainLen(head unsafe.Pointer) int {
	n := 0
	for p := head; p != nil; p = *(*unsafe.Pointer)(p) {
		n++
	}
	return n
}

func TestFetchRangeCarvesFreshSpanOnMiss(t *testing.T) {
	cc := newTestCentral(t)
	const cls = 0 // smallest class, 8 bytes
	head, tail, count, err := cc.FetchRange(cls, 5)
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 || head == nil || tail == nil {
		t.Fatalf("FetchRange = head=%v tail=%v count=%d, want 5 non-nil", head, tail, count)
	}
	if got := chainLen(head); got != 5 {
		t.Fatalf("chain length = %d, want 5", got)
	}
	if cc.BucketLen(cls) != 1 {
		t.Fatalf("BucketLen = %d, want 1 span carved", cc.BucketLen(cls))
	}
}

func TestFetchThenReleaseDrainsSpanBackToPageCache(t *testing.T) {
	cc := newTestCentral(t)
	const cls = 0

	// A request far larger than one span can hold carves exactly one
	// fresh span and returns everything it was carved into, in one short
	// return (spec §4.2: short returns are a success, not an error).
	head, _, count, err := cc.FetchRange(cls, 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if count == 0 {
		t.Fatal("expected a non-empty fetch")
	}
	if cc.BucketLen(cls) != 1 {
		t.Fatalf("BucketLen = %d, want 1 span carved", cc.BucketLen(cls))
	}

	if err := cc.ReleaseRange(cls, head); err != nil {
		t.Fatal(err)
	}
	if cc.BucketLen(cls) != 0 {
		t.Fatalf("BucketLen after full release = %d, want 0 (span returned to PageCache)", cc.BucketLen(cls))
	}
}

func TestFetchRangeShortReturnIsNotAnError(t *testing.T) {
	cc := newTestCentral(t)
	const cls = 0
	_, _, count, err := cc.FetchRange(cls, 1<<30)
	if err != nil {
		t.Fatal(err)
	}
	if count <= 0 {
		t.Fatalf("count = %d, want a positive short count", count)
	}
}
