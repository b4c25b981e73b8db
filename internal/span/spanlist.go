package span

import "sync"

// SpanList is a circular doubly linked list of spans behind its own
// mutex, the same shape as runtime/mheap.go's mSpanList: a sentinel node
// that is never itself a real span, so push/pop/erase never special-case
// an empty list. The methods below say "Caller must hold Mu"; PageCache is
// the exception: it guards its free-span lists with its own global lock
// and never takes their Mu.
type SpanList struct {
	Mu       sync.Mutex
	sentinel Span
	init     bool
}

func (l *SpanList) ensureInit() {
	if !l.init {
		l.sentinel.prev = &l.sentinel
		l.sentinel.next = &l.sentinel
		l.init = true
	}
}

// Empty reports whether the list holds no spans. Caller must hold Mu.
func (l *SpanList) Empty() bool {
	l.ensureInit()
	return l.sentinel.next == &l.sentinel
}

// Len counts the spans in the list. Caller must hold Mu. O(n); used only
// by tests and diagnostics, never on a fast path.
func (l *SpanList) Len() int {
	l.ensureInit()
	n := 0
	for s := l.sentinel.next; s != &l.sentinel; s = s.next {
		n++
	}
	return n
}

// PushFront links s in as the new head of the list. Caller must hold Mu.
func (l *SpanList) PushFront(s *Span) {
	l.ensureInit()
	s.next = l.sentinel.next
	s.prev = &l.sentinel
	l.sentinel.next.prev = s
	l.sentinel.next = s
}

// PopFront unlinks and returns the current head, or nil if the list is
// empty. Caller must hold Mu.
func (l *SpanList) PopFront() *Span {
	l.ensureInit()
	if l.Empty() {
		return nil
	}
	s := l.sentinel.next
	l.Erase(s)
	return s
}

// Erase unlinks s from wherever it sits in the list. s must currently be
// a member of this list. Caller must hold Mu.
func (l *SpanList) Erase(s *Span) {
	s.prev.next = s.next
	s.next.prev = s.prev
	s.prev, s.next = nil, nil
}

// Front returns the current head without unlinking it, or nil if empty.
// Caller must hold Mu.
func (l *SpanList) Front() *Span {
	l.ensureInit()
	if l.Empty() {
		return nil
	}
	return l.sentinel.next
}

// ForEach walks the list from head to tail, calling fn on each span.
// fn must not mutate the list. Caller must hold Mu.
func (l *SpanList) ForEach(fn func(*Span) bool) {
	l.ensureInit()
	for s := l.sentinel.next; s != &l.sentinel; s = s.next {
		if !fn(s) {
			return
		}
	}
}

// Find returns the first span for which pred reports true, or nil if none
// match. Caller must hold Mu.
func (l *SpanList) Find(pred func(*Span) bool) *Span {
	l.ensureInit()
	for s := l.sentinel.next; s != &l.sentinel; s = s.next {
		if pred(s) {
			return s
		}
	}
	return nil
}
