package pagecache

import (
	"sync"
	"unsafe"
)

// memProvider backs pages with ordinary Go heap memory instead of a real
// OS mapping. Exported as NewMemProvider for package tests (here and in
// centralcache) that need a PageProvider without depending on mmap/
// VirtualAlloc being available in the test environment.
type memProvider struct {
	mu       sync.Mutex
	pageSize uintptr
	live     map[uintptr][]byte
}

// NewMemProvider returns a PageProvider backed by the Go heap. Reserved
// regions are kept alive in the provider itself so the garbage collector
// never reclaims memory a PageCache still considers reserved.
func NewMemProvider(pageSize uintptr) PageProvider {
	return &memProvider{pageSize: pageSize, live: make(map[uintptr][]byte)}
}

func (p *memProvider) Reserve(n uintptr) (uintptr, error) {
	buf := make([]byte, n*p.pageSize+p.pageSize)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := (base + p.pageSize - 1) &^ (p.pageSize - 1)
	p.mu.Lock()
	p.live[aligned] = buf
	p.mu.Unlock()
	return aligned, nil
}

func (p *memProvider) Release(base uintptr, n uintptr) error {
	p.mu.Lock()
	delete(p.live, base)
	p.mu.Unlock()
	return nil
}
