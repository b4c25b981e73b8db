// Package cmempool is a thread-caching, small-object memory allocator in
// the classic three-tier shape: a per-goroutine ThreadCache for the
// lock-free fast path, a process-wide CentralCache mediating batched
// refills, and a process-wide PageCache owning the page pool and the
// page↔span map. It exposes exactly two entry points, ConcurrentAlloc and
// ConcurrentFree, the way the source this is ported from does (spec §6).
//
// ConcurrentAlloc never returns a nil pointer on success; it panics if the
// operating system cannot satisfy a reservation (out of memory) or if a
// caller violates the API's contract (spec §7). ConcurrentFree's argument
// must be a pointer previously returned by ConcurrentAlloc and not yet
// freed — passing anything else is undefined behaviour caught, where
// possible, by a panic rather than silently corrupting state.
package cmempool

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/myc13381/ConcurrentMemoryPool/internal/centralcache"
	"github.com/myc13381/ConcurrentMemoryPool/internal/pagecache"
	"github.com/myc13381/ConcurrentMemoryPool/internal/threadcache"
	"github.com/myc13381/ConcurrentMemoryPool/sizeclass"
)

// Allocator is one independent instance of the three-tier pool. Most
// programs never construct one directly — they use the package-level
// ConcurrentAlloc/ConcurrentFree, which share one process-wide default
// instance — but tests and embedders that want isolation (a fake
// PageProvider, a scoped logger) can build their own with New.
type Allocator struct {
	pageCache *pagecache.PageCache
	central   *centralcache.CentralCache
	store     *threadcache.Store
}

// New builds an independent Allocator. With no options it behaves like
// the process-wide default: platform page provider, 4KiB pages, no
// logging.
func New(opts ...Option) *Allocator {
	cfg := config{
		pageShift: sizeclass.PageShift,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = pagecache.NewOSProvider(1 << cfg.pageShift)
	}

	pc := pagecache.New(cfg.pageShift, cfg.provider, cfg.logger)
	cc := centralcache.New(pc, cfg.logger)
	store := threadcache.NewStore(cc)
	return &Allocator{pageCache: pc, central: cc, store: store}
}

func contractViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("cmempool: contract violation: "+format, args...))
}

// ConcurrentAlloc returns a pointer to a freshly allocated block of at
// least bytes bytes. Requests of MAX_BYTES (sizeclass.MaxBytes) or less
// are served by the calling goroutine's ThreadCache; larger requests go
// straight to the PageCache's big-object path (spec §4.5).
func (a *Allocator) ConcurrentAlloc(bytes int) unsafe.Pointer {
	if bytes <= 0 {
		contractViolation("ConcurrentAlloc(%d): size must be positive", bytes)
	}

	if bytes <= sizeclass.MaxBytes {
		tc := a.store.Acquire()
		obj, _, err := tc.Allocate(bytes)
		a.store.Release(tc)
		if err != nil {
			panic(errors.Wrap(err, "cmempool: ConcurrentAlloc: out of memory"))
		}
		return obj
	}

	s, err := a.pageCache.AllocBig(uintptr(bytes))
	if err != nil {
		panic(errors.Wrap(err, "cmempool: ConcurrentAlloc: out of memory"))
	}
	return unsafe.Pointer(s.BaseAddr(a.pageCache.PageShift()))
}

// ConcurrentFree releases ptr, a pointer previously returned by
// ConcurrentAlloc on this Allocator and not yet freed. It consults the
// page↔span map to find the owning span and dispatches to the big-object
// path or the owning size class's ThreadCache (spec §4.5).
func (a *Allocator) ConcurrentFree(ptr unsafe.Pointer) {
	if ptr == nil {
		contractViolation("ConcurrentFree(nil)")
	}

	s := a.pageCache.SpanForObject(uintptr(ptr))
	if int(s.ObjectSize) > sizeclass.MaxBytes {
		if err := a.pageCache.FreeBig(s); err != nil {
			panic(errors.Wrap(err, "cmempool: ConcurrentFree: releasing big object"))
		}
		return
	}

	cls := sizeclass.ClassIndex(int(s.ObjectSize))
	tc := a.store.Acquire()
	defer a.store.Release(tc)
	if err := tc.Deallocate(ptr, cls); err != nil {
		panic(errors.Wrap(err, "cmempool: ConcurrentFree: returning object to central cache"))
	}
}

var (
	defaultOnce sync.Once
	defaultPool *Allocator

	defaultLoggerMu sync.Mutex
	defaultLogger   = zerolog.Nop()
)

// SetLogger configures the structured diagnostic logger the process-wide
// default Allocator uses for its slow paths (span split/coalesce, OS
// reservations — never the allocate/free fast path). It only affects
// construction of the default instance, so call it before the first
// ConcurrentAlloc/ConcurrentFree; for a custom logger on an independently
// constructed Allocator use New(WithLogger(...)) instead.
func SetLogger(l zerolog.Logger) {
	defaultLoggerMu.Lock()
	defaultLogger = l
	defaultLoggerMu.Unlock()
}

func defaultAllocator() *Allocator {
	defaultOnce.Do(func() {
		defaultLoggerMu.Lock()
		l := defaultLogger
		defaultLoggerMu.Unlock()
		defaultPool = New(WithLogger(l))
	})
	return defaultPool
}

// ConcurrentAlloc allocates from the process-wide default Allocator. See
// (*Allocator).ConcurrentAlloc.
func ConcurrentAlloc(bytes int) unsafe.Pointer {
	return defaultAllocator().ConcurrentAlloc(bytes)
}

// ConcurrentFree frees ptr on the process-wide default Allocator. See
// (*Allocator).ConcurrentFree.
func ConcurrentFree(ptr unsafe.Pointer) {
	defaultAllocator().ConcurrentFree(ptr)
}
