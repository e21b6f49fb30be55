package csvy

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// FlushCounter is the narrow capability Writer needs from the engine's
// metrics handle, mirroring internal/health's ActiveCounter pattern so this
// package never imports internal/metrics directly.
type FlushCounter interface {
	IncFlushCount()
	IncFlushFailures()
}

// Writer owns one target's CSVY log file for the collector's entire
// lifetime. It accumulates records in a fixed-size in-memory buffer and
// flushes inline, on the caller's goroutine — spec.md §4.2 is explicit that
// pushing flushes to another thread would add cross-thread synchronization
// to the hot path.
type Writer struct {
	targetID string
	f        *os.File
	buf      []byte
	cap      int
	flushes  *FlushLog
	counter  FlushCounter
}

// Open creates the log file at path, writes the YAML front matter and CSV
// header row, and returns a Writer ready to accept records. bufCap is the
// buffer size in bytes; a record that brings the buffer to 90% of bufCap
// or more triggers an inline flush. counter
// may be nil, in which case flush counts simply aren't recorded.
func Open(path, targetID string, header Header, columns []string, bufCap int, flushes *FlushLog, counter FlushCounter) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csvy: create %s: %w", path, err)
	}

	front, err := header.Marshal()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Write(front); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csvy: write header: %w", err)
	}

	headerRow := joinCSV(append([]string{"read"}, columns...))
	if _, err := f.WriteString(headerRow + "\n"); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csvy: write column row: %w", err)
	}

	if bufCap <= 0 {
		bufCap = 64 * 1024
	}

	w := &Writer{
		targetID: targetID,
		f:        f,
		buf:      make([]byte, 0, bufCap),
		cap:      bufCap,
		flushes:  flushes,
		counter:  counter,
	}
	return w, nil
}

// WriteRecord appends one formatted sample row (timestamp plus the
// per-variant fields) to the buffer, flushing inline if the buffer has
// grown past its near-full threshold.
func (w *Writer) WriteRecord(readNs int64, fields []string) error {
	w.buf = strconv.AppendInt(w.buf, readNs, 10)
	for _, f := range fields {
		w.buf = append(w.buf, ',')
		w.buf = append(w.buf, f...)
	}
	w.buf = append(w.buf, '\n')

	if len(w.buf) >= w.cap*9/10 {
		return w.Flush("buffer-full")
	}
	return nil
}

// Flush writes the buffer's current contents to disk and resets it. Only
// the written prefix is ever emitted — there is no padding of a
// partially-filled buffer, preserving the NUL-safety invariant spec.md
// §4.2 calls out as a historic bug class to avoid.
func (w *Writer) Flush(reason string) error {
	n := len(w.buf)
	if n == 0 {
		return nil
	}
	_, err := w.f.Write(w.buf)
	w.buf = w.buf[:0]

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if w.flushes != nil {
		w.flushes.Emit(Event{
			TargetID:    w.targetID,
			FlushedAtNs: time.Now().UnixNano(),
			ByteCount:   n,
			Outcome:     outcome,
		})
	}
	if w.counter != nil {
		if err != nil {
			w.counter.IncFlushFailures()
		} else {
			w.counter.IncFlushCount()
		}
	}
	if err != nil {
		return fmt.Errorf("csvy: flush %s: %w", reason, err)
	}
	return nil
}

// Close flushes any remaining buffered bytes and closes the file. Called
// exactly once, when the poll thread observes this target's collector has
// disappeared, or during shutdown drain.
func (w *Writer) Close() error {
	ferr := w.Flush("teardown")
	cerr := w.f.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}

func joinCSV(fields []string) string {
	out := make([]byte, 0, 64)
	for i, f := range fields {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, f...)
	}
	return string(out)
}
