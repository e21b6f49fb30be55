package engine

import (
	"context"
	"time"

	"github.com/radvisor/radvisor/internal/collector"
)

// collectLoop runs on its own goroutine at the fast cadence: take one
// snapshot of the active set per tick, sample every collector in it, and
// check for shutdown between each collector — never mid-sample. Blocks on
// file I/O (cgroup reads, buffer flush on write); this is the hot path
// spec.md's zero-allocation and non-blocking-flush-emission contracts
// apply to.
func (e *Engine) collectLoop(ctx context.Context) {
	defer e.wg.Done()

	t := newAlignedTicker(e.cfg.SampleInterval)
	defer t.stop()

	for {
		select {
		case <-ctx.Done():
			e.drain()
			return
		case <-t.timer.C:
		}

		e.collectOnce(ctx)
		t.advance()

		if ctx.Err() != nil {
			e.drain()
			return
		}
	}
}

func (e *Engine) collectOnce(ctx context.Context) {
	start := time.Now()
	snapshot := e.active.snapshot()

	for id, c := range snapshot {
		if ctx.Err() != nil {
			return
		}
		if err := c.Sample(time.Now()); err != nil {
			e.logger.Debug("sample failed", "target_id", id, "error", err)
		}
	}

	if e.metrics != nil {
		e.metrics.SampleLoopSeconds.Set(time.Since(start).Seconds())
	}
}

// drain flushes and closes every collector currently in the active set.
// Called exactly once, after the collection loop observes shutdown. No
// target deletion happens during shutdown — spec.md §5's "dropping
// collectors in bulk is sufficient."
func (e *Engine) drain() {
	snapshot := e.active.snapshot()
	for id, c := range snapshot {
		if err := c.Close(); err != nil {
			e.logger.Warn("drain: close collector failed", "target_id", id, "error", err)
		}
	}
	e.active.publish(make(map[string]*collector.Collector))
}
