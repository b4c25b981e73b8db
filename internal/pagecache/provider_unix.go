//go:build unix

package pagecache

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// unixProvider reserves pages via anonymous private mmap and releases them
// via munmap, the same pair the original source's PageCache.cpp uses under
// its __linux__ branch.
type unixProvider struct {
	pageSize uintptr
}

// NewOSProvider returns the platform PageProvider: mmap/munmap on unix.
func NewOSProvider(pageSize uintptr) PageProvider {
	return &unixProvider{pageSize: pageSize}
}

func (p *unixProvider) Reserve(n uintptr) (uintptr, error) {
	length := int(n * p.pageSize)
	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, errors.Wrapf(ErrOutOfMemory, "mmap %d pages: %v", n, err)
	}
	return uintptr(unsafe.Pointer(&data[0])), nil
}

func (p *unixProvider) Release(base uintptr, n uintptr) error {
	length := int(n * p.pageSize)
	data := unsafe.Slice((*byte)(unsafe.Pointer(base)), length)
	if err := unix.Munmap(data); err != nil {
		return errors.Wrapf(err, "munmap %#x (%d pages)", base, n)
	}
	return nil
}
