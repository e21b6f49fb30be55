//go:build linux

package cgroup

import (
	"io"
	"os"
)

// Handles is a cgroup accounting-file reader bound to one target's cgroup,
// with its variant (v1 or v2) fixed at construction time. Sample never
// branches on variant again: spec.md §9's "pick a collector implementation
// at creation time and invoke it blindly per sample" contract.
type Handles interface {
	// Sample reads every accounting file and appends one formatted string
	// per column (in the variant's normative order) to dst, returning the
	// extended slice. A file that is missing or unreadable at sample time
	// contributes an empty string rather than aborting the sample: spec.md
	// §4.1, "Any read error or missing file yields an empty field."
	Sample(dst []string) []string

	// Columns is the normative column order this Handles emits.
	Columns() []string

	// Close releases every open file handle.
	Close() error
}

// handle wraps one accounting file with a reusable read buffer, so the read
// buffer itself does not regrow after the first read warms its capacity.
// Each read still returns a freshly allocated string copy of the content.
type handle struct {
	f     *os.File
	buf   []byte
	chunk []byte
}

// openHandle opens path once; a missing file is not an error here — it
// simply yields empty reads for the lifetime of the collector, which is
// possible on kernels where an optional accounting file (e.g. a bfq-only
// blkio file) doesn't exist.
func openHandle(path string) *handle {
	f, err := os.Open(path)
	if err != nil {
		return &handle{}
	}
	return &handle{f: f, buf: make([]byte, 0, 512), chunk: make([]byte, 4096)}
}

// read rereads the file from the start. Pseudo-files under /sys/fs/cgroup
// report a zero or stale size, so content is read to EOF rather than sized
// off Stat.
func (h *handle) read() (string, error) {
	if h.f == nil {
		return "", os.ErrNotExist
	}
	if _, err := h.f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	h.buf = h.buf[:0]
	for {
		n, err := h.f.Read(h.chunk)
		if n > 0 {
			h.buf = append(h.buf, h.chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if n == 0 {
			break
		}
	}
	return string(h.buf), nil
}

func (h *handle) close() error {
	if h.f == nil {
		return nil
	}
	return h.f.Close()
}

// NewHandles opens the accounting files for the given absolute cgroup
// directory (layout.V1Roots[subsystem]+"/"+relPath for v1, layout.V2Root+
// "/"+relPath for v2) and returns a Handles bound to the variant the
// process-wide Layout resolved at startup.
func NewHandles(layout Layout, relPath string) (Handles, error) {
	switch layout.Mode {
	case V1:
		return newV1Handles(layout, relPath)
	case V2:
		return newV2Handles(layout, relPath)
	default:
		return nil, ErrUnsupportedMode
	}
}
