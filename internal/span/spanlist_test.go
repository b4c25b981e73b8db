package span

import "testing"

func TestSpanListPushPopOrder(t *testing.T) {
	var l SpanList
	a, b, c := &Span{PageID: 1}, &Span{PageID: 2}, &Span{PageID: 3}
	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c)
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	if got := l.PopFront(); got != c {
		t.Fatalf("PopFront() = %v, want c", got.PageID)
	}
	if got := l.PopFront(); got != b {
		t.Fatalf("PopFront() = %v, want b", got.PageID)
	}
	if got := l.PopFront(); got != a {
		t.Fatalf("PopFront() = %v, want a", got.PageID)
	}
	if !l.Empty() {
		t.Fatal("expected empty list")
	}
	if l.PopFront() != nil {
		t.Fatal("PopFront on empty list should return nil")
	}
}

func TestSpanListErase(t *testing.T) {
	var l SpanList
	a, b, c := &Span{PageID: 1}, &Span{PageID: 2}, &Span{PageID: 3}
	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c)

	l.Erase(b)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	var ids []PageID
	l.ForEach(func(s *Span) bool {
		ids = append(ids, s.PageID)
		return true
	})
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Fatalf("unexpected order after erase: %v", ids)
	}
}

func TestSpanListForEachStopsEarly(t *testing.T) {
	var l SpanList
	l.PushFront(&Span{PageID: 1})
	l.PushFront(&Span{PageID: 2})
	l.PushFront(&Span{PageID: 3})

	visited := 0
	l.ForEach(func(s *Span) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Fatalf("visited = %d, want 1", visited)
	}
}
