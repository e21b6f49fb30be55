package csvy

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Event is one observed buffer flush, correlating flush-induced I/O spikes
// out of a run's samples.
type Event struct {
	TargetID  string
	FlushedAtNs int64
	ByteCount int
	Outcome   string
}

// FlushLog is the single-consumer sink for flush events: a bounded channel
// with a drop-on-full policy, drained by one writer goroutine. Every
// Writer shares the same FlushLog instance, so events arrive both from the
// collection goroutine (inline and shutdown-drain flushes) and from the
// poll goroutine (teardown flushes of vanished targets); emission never
// blocks either.
type FlushLog struct {
	events chan Event
	done   chan struct{}
	log    *slog.Logger
}

// OpenFlushLog creates the flush-event CSV file, writes its header row, and
// starts the dedicated consumer goroutine. capacity bounds the channel;
// once full, Emit drops events rather than blocking the caller.
func OpenFlushLog(path string, capacity int, log *slog.Logger) (*FlushLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csvy: create flush log %s: %w", path, err)
	}
	if _, err := f.WriteString("target_id,flushed_at_ns,byte_count,outcome\n"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csvy: write flush log header: %w", err)
	}

	if capacity <= 0 {
		capacity = 1024
	}
	fl := &FlushLog{
		events: make(chan Event, capacity),
		done:   make(chan struct{}),
		log:    log,
	}
	go fl.run(f)
	return fl, nil
}

func (fl *FlushLog) run(f *os.File) {
	defer close(fl.done)
	defer func() { _ = f.Close() }()

	buf := make([]byte, 0, 128)
	for e := range fl.events {
		buf = buf[:0]
		buf = append(buf, e.TargetID...)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, e.FlushedAtNs, 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(e.ByteCount), 10)
		buf = append(buf, ',')
		buf = append(buf, e.Outcome...)
		buf = append(buf, '\n')
		if _, err := f.Write(buf); err != nil && fl.log != nil {
			fl.log.Warn("flush log write failed", "error", err)
		}
	}
}

// Emit enqueues e without blocking. If the channel is full the event is
// dropped — the hot path must never wait on the flush log.
func (fl *FlushLog) Emit(e Event) {
	select {
	case fl.events <- e:
	default:
		if fl.log != nil {
			fl.log.Debug("flush event dropped, channel full", "target_id", e.TargetID)
		}
	}
}

// Close stops accepting events and waits for the consumer goroutine to
// drain and close the file.
func (fl *FlushLog) Close() error {
	close(fl.events)
	<-fl.done
	return nil
}
