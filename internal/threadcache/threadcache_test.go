package threadcache

import (
	"testing"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/myc13381/ConcurrentMemoryPool/internal/centralcache"
	"github.com/myc13381/ConcurrentMemoryPool/internal/pagecache"
	"github.com/myc13381/ConcurrentMemoryPool/sizeclass"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	pc := pagecache.New(12, pagecache.NewMemProvider(1<<12), zerolog.Nop())
	cc := centralcache.New(pc, zerolog.Nop())
	return NewStore(cc)
}

func TestAllocateDeallocateRoundTrip(t *testing.T) {
	store := newTestStore(t)
	tc := store.Acquire()
	defer store.Release(tc)

	obj, cls, err := tc.Allocate(32)
	if err != nil {
		t.Fatal(err)
	}
	if obj == nil {
		t.Fatal("nil object")
	}
	if err := tc.Deallocate(obj, cls); err != nil {
		t.Fatal(err)
	}
	// Reallocating the same size class should reuse the freed slot
	// without another CentralCache round trip.
	obj2, _, err := tc.Allocate(32)
	if err != nil {
		t.Fatal(err)
	}
	if obj2 != obj {
		t.Fatalf("expected to reuse freed object %p, got %p", obj, obj2)
	}
}

func TestSlowStartGrowsMaxSize(t *testing.T) {
	store := newTestStore(t)
	tc := store.Acquire()
	defer store.Release(tc)

	cls := sizeclass.ClassIndex(16)
	fl := &tc.lists[cls]
	if fl.maxSize != 1 {
		t.Fatalf("maxSize = %d before first use, want 1 (spec §4.1 slow start)", fl.maxSize)
	}
	if _, _, err := tc.Allocate(16); err != nil {
		t.Fatal(err)
	}
	if fl.maxSize < 1 {
		t.Fatalf("maxSize = %d after first refill, want >= 1", fl.maxSize)
	}
	first := fl.maxSize
	// The first refill's batch was a single object, already handed to
	// the caller, so the list is empty again and the next Allocate
	// triggers another refill, bumping maxSize once more.
	if _, _, err := tc.Allocate(16); err != nil {
		t.Fatal(err)
	}
	if fl.maxSize <= first {
		t.Fatalf("maxSize did not grow: before=%d after=%d", first, fl.maxSize)
	}
}

// TestDeallocateOnlyClassFlushesWithoutRefill covers spec §8 scenario 4's
// producer/consumer handoff: a ThreadCache that only ever frees objects of
// a class it never allocated (so that class's free list never refilled,
// and maxSize never grew past its starting value) must still flush, not
// accumulate objects without bound.
func TestDeallocateOnlyClassFlushesWithoutRefill(t *testing.T) {
	store := newTestStore(t)

	producer := store.Acquire()
	cls := sizeclass.ClassIndex(24)
	const n = 50
	objs := make([]unsafe.Pointer, n)
	for i := range objs {
		obj, _, err := producer.Allocate(24)
		if err != nil {
			t.Fatal(err)
		}
		objs[i] = obj
	}
	store.Release(producer)

	consumer := &ThreadCache{central: store.central}
	for i := range consumer.lists {
		consumer.lists[i].maxSize = 1
	}
	fl := &consumer.lists[cls]

	for _, obj := range objs {
		if err := consumer.Deallocate(obj, cls); err != nil {
			t.Fatal(err)
		}
		if fl.size > fl.maxSize {
			t.Fatalf("free list grew past its water mark (size=%d maxSize=%d): objects piling up without bound", fl.size, fl.maxSize)
		}
	}
}

func TestDeallocateFlushesAtWaterMark(t *testing.T) {
	store := newTestStore(t)
	tc := store.Acquire()
	defer store.Release(tc)

	cls := sizeclass.ClassIndex(8)
	fl := &tc.lists[cls]

	var objs []unsafe.Pointer
	for i := 0; i < 2; i++ {
		obj, _, err := tc.Allocate(8)
		if err != nil {
			t.Fatal(err)
		}
		objs = append(objs, obj)
	}

	if err := tc.Deallocate(objs[0], cls); err != nil {
		t.Fatal(err)
	}
	if fl.size == 0 || fl.size >= fl.maxSize {
		t.Fatalf("size = %d, maxSize = %d: expected below water mark, no flush yet", fl.size, fl.maxSize)
	}

	if err := tc.Deallocate(objs[1], cls); err != nil {
		t.Fatal(err)
	}
	if fl.size != 0 {
		t.Fatalf("size = %d after hitting water mark, want 0 (flushed)", fl.size)
	}
}
