package span

import (
	"runtime"
	"testing"
	"unsafe"
)

func TestCarveAndPopFillsWholeSpan(t *testing.T) {
	const pageShift = 12
	const pageCount = 4
	// One spare page lets a page-aligned run of pageCount pages fit inside
	// buf, since Carve starts at BaseAddr, the page-aligned address.
	buf := make([]byte, (pageCount+1)<<pageShift)
	base := (uintptr(unsafe.Pointer(&buf[0])) + (1<<pageShift - 1)) &^ (1<<pageShift - 1)
	s := &Span{
		PageID:    PageID(base >> pageShift),
		PageCount: pageCount,
	}
	const objectSize = 64
	s.Carve(objectSize, pageShift)

	seen := map[uintptr]bool{}
	count := 0
	for {
		obj := s.PopObject()
		if obj == nil {
			break
		}
		addr := uintptr(obj)
		if seen[addr] {
			t.Fatalf("object %x popped twice", addr)
		}
		seen[addr] = true
		count++
	}
	want := int((pageCount << pageShift) / objectSize)
	if count != want {
		t.Fatalf("popped %d objects, want %d", count, want)
	}
	runtime.KeepAlive(buf)
}

func TestPushPopLIFO(t *testing.T) {
	var s Span
	var a, b, c int
	pa, pb, pc := unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c)
	s.PushObject(pa)
	s.PushObject(pb)
	s.PushObject(pc)
	if got := s.PopObject(); got != pc {
		t.Fatal("expected c first")
	}
	if got := s.PopObject(); got != pb {
		t.Fatal("expected b second")
	}
	if got := s.PopObject(); got != pa {
		t.Fatal("expected a third")
	}
	if s.PopObject() != nil {
		t.Fatal("expected empty list")
	}
}
