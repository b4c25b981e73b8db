package cmempool

import (
	"math/rand"
	"sync"
	"testing"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/myc13381/ConcurrentMemoryPool/internal/pagecache"
	"github.com/myc13381/ConcurrentMemoryPool/sizeclass"
)

func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	return New(WithPageProvider(pagecache.NewMemProvider(1 << 12)))
}

func TestConcurrentAllocReturnsDistinctPointers(t *testing.T) {
	a := newTestAllocator(t)
	seen := make(map[unsafe.Pointer]bool)
	for i := 0; i < 1000; i++ {
		p := a.ConcurrentAlloc(16)
		if seen[p] {
			t.Fatalf("duplicate pointer %p returned while all others are still live", p)
		}
		seen[p] = true
	}
}

func TestConcurrentAllocWriteReadBack(t *testing.T) {
	a := newTestAllocator(t)
	const n = 40
	p := a.ConcurrentAlloc(n)
	buf := unsafe.Slice((*byte)(p), n)
	for i := range buf {
		buf[i] = byte(i)
	}
	for i := range buf {
		if buf[i] != byte(i) {
			t.Fatalf("byte %d = %d, want %d: allocation overlaps another live object", i, buf[i], byte(i))
		}
	}
	a.ConcurrentFree(p)
}

func TestConcurrentAllocAtEachSizeClassBoundary(t *testing.T) {
	a := newTestAllocator(t)
	sizes := []int{1, 8, 9, 128, 129, 1024, 1025, 8192, 8193, sizeclass.MaxBytes}
	for _, n := range sizes {
		p := a.ConcurrentAlloc(n)
		if p == nil {
			t.Fatalf("ConcurrentAlloc(%d) returned nil", n)
		}
		a.ConcurrentFree(p)
	}
}

func TestConcurrentAllocBigObjectPastMaxBytes(t *testing.T) {
	a := newTestAllocator(t)
	p := a.ConcurrentAlloc(sizeclass.MaxBytes + 1)
	if p == nil {
		t.Fatal("nil pointer for a big-object allocation")
	}
	a.ConcurrentFree(p)
}

func TestConcurrentAllocDirectOSReservation(t *testing.T) {
	a := newTestAllocator(t)
	pageSize := int(a.pageCache.PageSize())
	bytes := pagecache.NPages * pageSize
	p := a.ConcurrentAlloc(bytes)
	a.ConcurrentFree(p)
}

func TestAllocFreeRoundTripDoesNotShrinkFreePages(t *testing.T) {
	a := newTestAllocator(t)
	before := a.Stats().FreePages

	var ptrs []unsafe.Pointer
	for i := 0; i < 500; i++ {
		ptrs = append(ptrs, a.ConcurrentAlloc(64))
	}
	for _, p := range ptrs {
		a.ConcurrentFree(p)
	}

	after := a.Stats().FreePages
	if after < before {
		t.Fatalf("FreePages shrank from %d to %d after a full alloc/free round trip", before, after)
	}
}

func TestConcurrentAllocZeroOrNegativePanics(t *testing.T) {
	a := newTestAllocator(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a non-positive size")
		}
	}()
	a.ConcurrentAlloc(0)
}

func TestConcurrentFreeNilPanics(t *testing.T) {
	a := newTestAllocator(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for freeing nil")
		}
	}()
	a.ConcurrentFree(nil)
}

func TestSingleGoroutineAllocFreeLoop(t *testing.T) {
	a := newTestAllocator(t)
	for i := 0; i < 10000; i++ {
		p := a.ConcurrentAlloc(32)
		a.ConcurrentFree(p)
	}
}

func TestMultiSizeSingleGoroutine(t *testing.T) {
	a := newTestAllocator(t)
	sizes := []int{8, 17, 33, 200, 2000, 9000}
	for round := 0; round < 200; round++ {
		var held []unsafe.Pointer
		for _, sz := range sizes {
			held = append(held, a.ConcurrentAlloc(sz))
		}
		for _, p := range held {
			a.ConcurrentFree(p)
		}
	}
}

func TestConcurrentStress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}
	a := newTestAllocator(t)

	var g errgroup.Group
	for w := 0; w < 10; w++ {
		w := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(w) + 1))
			for i := 0; i < 1000; i++ {
				sz := 1 + r.Intn(4096)
				var ptrs []unsafe.Pointer
				for j := 0; j < 100; j++ {
					ptrs = append(ptrs, a.ConcurrentAlloc(sz))
				}
				for _, p := range ptrs {
					a.ConcurrentFree(p)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestProducerConsumer(t *testing.T) {
	a := newTestAllocator(t)
	ch := make(chan unsafe.Pointer, 64)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer close(ch)
		for i := 0; i < 2000; i++ {
			ch <- a.ConcurrentAlloc(48)
		}
	}()
	go func() {
		defer wg.Done()
		for p := range ch {
			a.ConcurrentFree(p)
		}
	}()
	wg.Wait()
}

func TestDefaultAllocatorSharedAcrossPackageFuncs(t *testing.T) {
	p := ConcurrentAlloc(24)
	if p == nil {
		t.Fatal("package-level ConcurrentAlloc returned nil")
	}
	ConcurrentFree(p)
}
