//go:build windows

package pagecache

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// windowsProvider reserves and commits pages via VirtualAlloc and releases
// them via VirtualFree, mirroring the original source's _WIN32 branch.
type windowsProvider struct {
	pageSize uintptr
}

// NewOSProvider returns the platform PageProvider: VirtualAlloc/VirtualFree
// on Windows.
func NewOSProvider(pageSize uintptr) PageProvider {
	return &windowsProvider{pageSize: pageSize}
}

func (p *windowsProvider) Reserve(n uintptr) (uintptr, error) {
	size := n * p.pageSize
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return 0, errors.Wrapf(ErrOutOfMemory, "VirtualAlloc %d pages: %v", n, err)
	}
	return addr, nil
}

func (p *windowsProvider) Release(base uintptr, n uintptr) error {
	if err := windows.VirtualFree(base, 0, windows.MEM_RELEASE); err != nil {
		return errors.Wrapf(err, "VirtualFree %#x (%d pages)", base, n)
	}
	return nil
}
