// Package engine drives the two-rate collection pipeline: a slow poll
// thread reconciling the active target set against a provider, and a fast
// collection thread sampling every active collector.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/radvisor/radvisor/internal/cgroup"
	"github.com/radvisor/radvisor/internal/csvy"
	"github.com/radvisor/radvisor/internal/metrics"
	"github.com/radvisor/radvisor/internal/provider"
	"github.com/radvisor/radvisor/internal/sysinfo"
)

// Config holds the run-time parameters assembled once from CLI flags.
type Config struct {
	Directory      string
	SampleInterval time.Duration
	PollInterval   time.Duration
	BufferBytes    int
}

// Engine owns the active set and the two goroutines that drive it for the
// lifetime of one run.
type Engine struct {
	cfg      Config
	provider provider.Provider
	layout   cgroup.Layout
	sys      sysinfo.Info
	logger   *slog.Logger
	metrics  *metrics.Metrics
	flushLog *csvy.FlushLog

	active *activeSet
	wg     sync.WaitGroup
}

// New constructs an Engine. The caller is responsible for having already
// called provider.Initialize.
func New(cfg Config, p provider.Provider, layout cgroup.Layout, sys sysinfo.Info, logger *slog.Logger, m *metrics.Metrics, flushLog *csvy.FlushLog) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:      cfg,
		provider: p,
		layout:   layout,
		sys:      sys,
		logger:   logger,
		metrics:  m,
		flushLog: flushLog,
		active:   newActiveSet(),
	}
}

// Run blocks until ctx is canceled, then finishes the in-flight sample,
// flushes and closes every active collector, and returns. It never returns
// a non-nil error on ordinary shutdown — errors mid-run are logged, not
// propagated, per spec.md §7's "no exception propagation crosses the hot
// path."
func (e *Engine) Run(ctx context.Context) error {
	e.pollOnce(ctx) // populate the active set before the first sample tick

	e.wg.Add(2)
	go e.pollLoop(ctx)
	go e.collectLoop(ctx)
	e.wg.Wait()

	if e.flushLog != nil {
		_ = e.flushLog.Close()
	}
	return nil
}

// ActiveCount reports the current size of the active set, for tests and
// the health endpoint.
func (e *Engine) ActiveCount() int {
	return len(e.active.snapshot())
}
