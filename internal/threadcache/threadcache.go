// Package threadcache implements the lock-free allocation fast path: a
// per-size-class free list an application thread drains and refills
// without ever taking the CentralCache's or PageCache's locks on the
// common case.
//
// spec §0/§5 frame "thread" the way runtime/mcache.go frames it — "in Go,
// per-P" — but this package cannot linkname into the runtime's private
// per-P pinning the way package sync itself does for sync.Pool. Instead a
// ThreadCache is checked out of a sync.Pool for the span of exactly one
// ConcurrentAlloc/ConcurrentFree call: sync.Pool.Get already hands out an
// object no other concurrent caller can observe, usually the same object a
// previous call on the same P last returned, which reproduces the spec's
// "no locking, usually local" property on top of the standard library
// alone. A finalizer drains a ThreadCache's free lists back to the
// CentralCache if it is ever dropped by the pool instead of reused,
// standing in for the spec's "destroyed when the thread exits" teardown.
package threadcache

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/myc13381/ConcurrentMemoryPool/internal/centralcache"
	"github.com/myc13381/ConcurrentMemoryPool/sizeclass"
)

// FreeList is a LIFO intrusive free list of equally sized objects, the
// same shape as runtime/mcache.go's per-class free lists: size is the
// current length, maxSize is the slow-start water mark that bounds how
// many objects move in one refill/release batch. maxSize starts at 1 for
// every class (spec §4.1) so a deallocate-only class — one that never
// refills because the thread only ever frees objects another thread
// allocated — still has a water mark to flush against.
type FreeList struct {
	head    unsafe.Pointer
	size    int
	maxSize int
}

func (f *FreeList) push(obj unsafe.Pointer) {
	*(*unsafe.Pointer)(obj) = f.head
	f.head = obj
	f.size++
}

func (f *FreeList) pop() unsafe.Pointer {
	obj := f.head
	if obj == nil {
		return nil
	}
	f.head = *(*unsafe.Pointer)(obj)
	f.size--
	return obj
}

// ThreadCache is one application thread's small-object cache: one
// FreeList per size class, refilled from and flushed to a shared
// CentralCache. Exactly one goroutine touches a given ThreadCache between
// a Pool Get and its matching Put.
type ThreadCache struct {
	lists   [sizeclass.NumClasses]FreeList
	central *centralcache.CentralCache
}

func contractViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("threadcache: contract violation: "+format, args...))
}

// Store owns the sync.Pool of ThreadCaches for one CentralCache and hands
// out checked-out instances to callers.
type Store struct {
	pool    sync.Pool
	central *centralcache.CentralCache
}

// NewStore builds a Store whose ThreadCaches refill from and flush to
// central.
func NewStore(central *centralcache.CentralCache) *Store {
	s := &Store{central: central}
	s.pool.New = func() interface{} {
		tc := &ThreadCache{central: central}
		for i := range tc.lists {
			tc.lists[i].maxSize = 1
		}
		runtime.SetFinalizer(tc, drainOnFinalize)
		return tc
	}
	return s
}

func drainOnFinalize(tc *ThreadCache) {
	tc.drainAll()
}

// Acquire checks out a ThreadCache exclusively for the calling goroutine.
// The caller must call Release when done, typically via defer, before any
// blocking operation that could hand this goroutine's P to someone else
// mid-use.
func (s *Store) Acquire() *ThreadCache {
	return s.pool.Get().(*ThreadCache)
}

// Release returns tc to the store so a later Acquire (very often, though
// not guaranteed, by the same P) can reuse its free lists without a
// refill.
func (s *Store) Release(tc *ThreadCache) {
	s.pool.Put(tc)
}

// Allocate serves one object of the given byte size from tc's free lists,
// refilling from the CentralCache on a miss. Never touches any lock the
// caller didn't already hold via the CentralCache refill path.
func (tc *ThreadCache) Allocate(bytes int) (unsafe.Pointer, int, error) {
	cls := sizeclass.ClassIndex(bytes)
	fl := &tc.lists[cls]
	if obj := fl.pop(); obj != nil {
		return obj, cls, nil
	}
	if err := tc.refill(cls); err != nil {
		return nil, cls, err
	}
	obj := fl.pop()
	if obj == nil {
		contractViolation("refill(%d) returned no objects and no error", cls)
	}
	return obj, cls, nil
}

// refill asks the CentralCache for a batch sized by the class's current
// water mark, bumps the water mark (spec §4.1 slow start), and pushes
// every fetched object onto the free list.
func (tc *ThreadCache) refill(cls int) error {
	fl := &tc.lists[cls]
	limit := sizeclass.BatchLimit(sizeclass.ClassObjectSize(cls))
	want := fl.maxSize
	if want > limit {
		want = limit
	}

	head, _, count, err := tc.central.FetchRange(cls, want)
	if err != nil {
		return err
	}
	for obj := head; obj != nil; {
		next := *(*unsafe.Pointer)(obj)
		fl.push(obj)
		obj = next
	}
	_ = count

	if fl.maxSize < limit {
		fl.maxSize++
	}
	return nil
}

// Deallocate returns obj, known to belong to size class cls, to tc's free
// list, flushing a batch back to the CentralCache once the list reaches
// its water mark (spec §4.1).
func (tc *ThreadCache) Deallocate(obj unsafe.Pointer, cls int) error {
	fl := &tc.lists[cls]
	fl.push(obj)
	if fl.size >= fl.maxSize {
		return tc.flush(cls, fl.maxSize)
	}
	return nil
}

// flush unlinks the first n objects of class cls's free list and hands
// them to the CentralCache in one batch.
func (tc *ThreadCache) flush(cls int, n int) error {
	fl := &tc.lists[cls]
	if n > fl.size {
		n = fl.size
	}
	if n == 0 {
		return nil
	}
	head := fl.head
	var tail unsafe.Pointer
	cur := head
	for i := 0; i < n; i++ {
		tail = cur
		cur = *(*unsafe.Pointer)(cur)
	}
	fl.head = cur
	fl.size -= n
	*(*unsafe.Pointer)(tail) = nil
	return tc.central.ReleaseRange(cls, head)
}

// drainAll flushes every non-empty free list back to the CentralCache.
// Called from the finalizer that stands in for thread-exit teardown
// (spec §4.1, §5), and exposed for an embedder that wants to force a
// drain (e.g. around a worker-pool goroutine's graceful shutdown).
func (tc *ThreadCache) drainAll() {
	for cls := range tc.lists {
		fl := &tc.lists[cls]
		for fl.size > 0 {
			if err := tc.flush(cls, fl.size); err != nil {
				return
			}
		}
	}
}

// DrainAll flushes every non-empty free list back to the CentralCache.
// Exported for callers that want to force an idle ThreadCache to give its
// memory back without waiting on the garbage collector to finalize it.
func (tc *ThreadCache) DrainAll() { tc.drainAll() }
