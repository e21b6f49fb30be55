// Package collector owns the live sampling state for one monitored target:
// its cgroup file handles, its CSVY writer, and the reusable scratch buffer
// used to avoid per-sample allocation.
package collector

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/radvisor/radvisor/internal/cgroup"
	"github.com/radvisor/radvisor/internal/csvy"
	"github.com/radvisor/radvisor/internal/sysinfo"
	"github.com/radvisor/radvisor/internal/target"
)

// Collector is the live, open-file, buffered-writer state associated with
// one target for its monitored lifetime. The poll thread owns a Collector
// before publication into the active set and after its removal; the
// collection thread exclusively drives Sample in between. See spec.md §5.
type Collector struct {
	Target target.Target

	handles cgroup.Handles
	writer  *csvy.Writer
	scratch []string
}

// Config carries the parameters shared by every collector created for a
// run: the log directory, buffer size, flush log, and metrics handle.
type Config struct {
	Directory string
	BufferCap int
	FlushLog  *csvy.FlushLog
	Metrics   csvy.FlushCounter
}

// New resolves the target's cgroup path, opens its accounting file handles
// and CSVY log file, and returns a ready Collector. The cgroup variant
// (v1/v2) is fixed for this Collector's entire lifetime at this call.
func New(t target.Target, layout cgroup.Layout, sys sysinfo.Info, cfg Config) (*Collector, error) {
	relPath, err := cgroup.PathFor(t)
	if err != nil {
		return nil, fmt.Errorf("collector: resolve cgroup path: %w", err)
	}
	t.CgroupPath = relPath

	handles, err := cgroup.NewHandles(layout, relPath)
	if err != nil {
		return nil, fmt.Errorf("collector: open cgroup handles: %w", err)
	}

	initializedAt := time.Now()
	logPath := filepath.Join(cfg.Directory, fmt.Sprintf("%s_%d.log", sanitizeID(t.ID), initializedAt.Unix()))

	header := buildHeader(t, layout, sys, initializedAt)
	writer, err := csvy.Open(logPath, t.ID, header, handles.Columns(), cfg.BufferCap, cfg.FlushLog, cfg.Metrics)
	if err != nil {
		_ = handles.Close()
		return nil, fmt.Errorf("collector: open writer: %w", err)
	}

	return &Collector{
		Target:  t,
		handles: handles,
		writer:  writer,
		scratch: make([]string, 0, len(handles.Columns())),
	}, nil
}

// Sample reads every accounting file exactly once and appends one record
// to the writer's buffer. The scratch slice and its backing array are
// reused across every call; the file reads and the parsers still allocate
// their string copies and result maps on each call.
func (c *Collector) Sample(readAt time.Time) error {
	c.scratch = c.handles.Sample(c.scratch[:0])
	return c.writer.WriteRecord(readAt.UnixNano(), c.scratch)
}

// Close flushes the writer and releases the cgroup file handles. Called
// once: by the poll thread, after the collection thread has stopped
// touching this Collector, or by the collection thread itself during its
// shutdown drain.
func (c *Collector) Close() error {
	werr := c.writer.Close()
	herr := c.handles.Close()
	if werr != nil {
		return werr
	}
	return herr
}

func sanitizeID(id string) string {
	// Container/pod identifiers are already filesystem-safe hex/UUID
	// strings in practice; this guards against the unexpected separator
	// without pulling in a full path-sanitization dependency.
	out := make([]byte, 0, len(id))
	for i := 0; i < len(id); i++ {
		b := id[i]
		if b == '/' || b == filepath.Separator {
			out = append(out, '_')
			continue
		}
		out = append(out, b)
	}
	return string(out)
}
