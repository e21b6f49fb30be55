package engine

import (
	"sync/atomic"

	"github.com/radvisor/radvisor/internal/collector"
)

// activeSet is the atomically-swapped immutable snapshot the poll thread
// publishes and the collection thread reads. Per spec.md §5: the poll
// thread is the sole writer; the collection thread takes one consistent
// snapshot per tick and never holds a lock across sample I/O.
type activeSet struct {
	ptr atomic.Pointer[map[string]*collector.Collector]
}

func newActiveSet() *activeSet {
	s := &activeSet{}
	empty := make(map[string]*collector.Collector)
	s.ptr.Store(&empty)
	return s
}

func (s *activeSet) snapshot() map[string]*collector.Collector {
	return *s.ptr.Load()
}

// publish replaces the active set with next in one atomic store. The
// caller (poll thread only) must treat the map as immutable from this
// point: in-place mutation would race with concurrent readers.
func (s *activeSet) publish(next map[string]*collector.Collector) {
	s.ptr.Store(&next)
}
