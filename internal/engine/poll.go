package engine

import (
	"context"
	"time"

	"github.com/radvisor/radvisor/internal/cgroup"
	"github.com/radvisor/radvisor/internal/collector"
	"github.com/radvisor/radvisor/internal/csvy"
	"github.com/radvisor/radvisor/internal/target"
)

// pollLoop runs on its own goroutine at the slow cadence: fetch the
// provider's current target list, reconcile it against the active set
// (create collectors for new ids, destroy collectors for vanished ids),
// and publish the reconciled snapshot. Blocks on provider network I/O and
// on sleep; touches a collector's writer only to close it (flushing its
// buffer) after the collector has been removed from the published set.
func (e *Engine) pollLoop(ctx context.Context) {
	defer e.wg.Done()

	t := newAlignedTicker(e.cfg.PollInterval)
	defer t.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.timer.C:
		}

		e.pollOnce(ctx)
		t.advance()

		if ctx.Err() != nil {
			return
		}
	}
}

func (e *Engine) pollOnce(ctx context.Context) {
	start := time.Now()
	if e.metrics != nil {
		defer func() {
			e.metrics.PollSeconds.Set(time.Since(start).Seconds())
		}()
	}

	targets, err := e.provider.Fetch(ctx)
	if err != nil {
		e.logger.Warn("poll: fetch failed", "error", err)
		if e.metrics != nil {
			e.metrics.FetchErrors.Inc()
		}
		return
	}

	current := e.active.snapshot()
	next := make(map[string]*collector.Collector, len(targets))

	for _, tg := range targets {
		if tg.CgroupDriver == "" {
			tg.CgroupDriver = cgroup.DetectDriver(e.layout)
		}
		if existing, ok := current[tg.ID]; ok {
			// Retained: keep the open collector untouched, per spec.md
			// §5's scenario 5 ("B is retained with its open handles
			// unchanged").
			next[tg.ID] = existing
			continue
		}
		c, err := e.newCollector(tg)
		if err != nil {
			e.logger.Warn("poll: create collector failed", "target_id", tg.ID, "error", err)
			continue
		}
		next[tg.ID] = c
		e.logger.Info("target discovered", "target_id", tg.ID, "kind", tg.Kind)
	}

	e.active.publish(next)

	for id, c := range current {
		if _, stillPresent := next[id]; stillPresent {
			continue
		}
		if err := c.Close(); err != nil {
			e.logger.Warn("poll: close collector failed", "target_id", id, "error", err)
		}
		e.logger.Info("target gone", "target_id", id)
	}

	if e.metrics != nil {
		e.metrics.ActiveCollectors.Set(float64(len(next)))
	}
}

func (e *Engine) newCollector(tg target.Target) (*collector.Collector, error) {
	// Avoid wrapping a nil *metrics.Metrics in a non-nil FlushCounter
	// interface value, which would make csvy.Writer's nil check pass and
	// then panic on the first flush.
	var mc csvy.FlushCounter
	if e.metrics != nil {
		mc = e.metrics
	}
	return collector.New(tg, e.layout, e.sys, collector.Config{
		Directory: e.cfg.Directory,
		BufferCap: e.cfg.BufferBytes,
		FlushLog:  e.flushLog,
		Metrics:   mc,
	})
}

