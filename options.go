package cmempool

import (
	"github.com/rs/zerolog"

	"github.com/myc13381/ConcurrentMemoryPool/internal/pagecache"
)

// config collects the knobs New accepts. It is never exported directly;
// callers build one via Option functions, the same functional-options
// shape spec §6 calls for in place of a config struct with exported
// fields (there being nothing a caller should tune besides these three
// collaborators).
type config struct {
	pageShift uint
	provider  pagecache.PageProvider
	logger    zerolog.Logger
}

// Option configures an Allocator built with New.
type Option func(*config)

// WithPageProvider overrides the source of OS pages. Tests use this to
// supply an in-memory provider instead of real mmap/VirtualAlloc; a host
// embedding the allocator in a constrained environment could supply one
// backed by a pre-reserved arena.
func WithPageProvider(p pagecache.PageProvider) Option {
	return func(c *config) { c.provider = p }
}

// WithLogger sets the structured diagnostic logger used for PageCache and
// CentralCache slow-path events (span split/coalesce, OS reservations).
// The fast paths (ThreadCache allocate/deallocate) never log.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithPageShift overrides the page size exponent (default
// sizeclass.PageShift, i.e. 4KiB pages). Exists mainly for tests that want
// a tiny page size to exercise span-splitting behaviour with small
// fixtures.
func WithPageShift(shift uint) Option {
	return func(c *config) { c.pageShift = shift }
}
