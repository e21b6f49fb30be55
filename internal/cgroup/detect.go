//go:build linux

// Package cgroup resolves a target's cgroup to filesystem paths and converts
// the accounting files found there into scalar fields. It is the only
// package that knows the v1/v2 layout and driver (cgroupfs/systemd) naming
// conventions.
package cgroup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Mode is the cgroup layout detected on this host, decided once at startup
// and cached process-wide.
type Mode int

const (
	// Unsupported means neither a v1 nor a v2 mount could be found; the
	// engine must fail fast at startup in this case.
	Unsupported Mode = iota
	// V1 means the legacy per-subsystem hierarchy is in effect. This is
	// also the decision for hybrid hosts: if any of the subsystems this
	// reader needs (pids, cpuacct/cpu, memory, blkio) is mounted as v1,
	// v1 wins for the whole process per spec.md §4.1 ("in mixed hybrid
	// mode v1 is preferred for any subsystem that appears as a v1
	// mount"). See DESIGN.md for why this collapses to a single
	// process-wide Mode rather than a per-subsystem choice.
	V1
	// V2 means the unified hierarchy is in effect and no v1 subsystem
	// mounts relevant to this reader were found.
	V2
)

func (m Mode) String() string {
	switch m {
	case V1:
		return "cgroup v1"
	case V2:
		return "cgroup v2"
	default:
		return "unsupported"
	}
}

// subsystems this reader needs from a v1 hierarchy.
var relevantV1Subsystems = []string{"pids", "cpuacct", "cpu", "memory", "blkio"}

// Layout is the cached result of probing the host's cgroup mounts.
type Layout struct {
	Mode Mode

	// V1Roots maps subsystem name (pids, cpuacct, cpu, memory, blkio) to
	// its absolute mount point, for hosts with a v1 or hybrid layout.
	V1Roots map[string]string

	// V2Root is the single unified mount point, for hosts with a v2 or
	// hybrid layout.
	V2Root string

	// Detail is a human-readable description of what was found, suitable
	// for a startup log line.
	Detail string
}

// Detect probes /proc/self/mountinfo for cgroup v1 and v2 filesystems and
// decides the process-wide Mode. It fails fast (non-nil error) if neither
// layout is usable, per spec.md §4.1.
func Detect() (Layout, error) {
	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return Layout{}, fmt.Errorf("cgroup: open mountinfo: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parseMountinfo(f)
}

// parseMountinfo is the testable core of Detect, decoupled from
// /proc/self/mountinfo so fixtures can be fed in directly.
func parseMountinfo(r io.Reader) (Layout, error) {
	v1Roots := make(map[string]string)
	var v2Root string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		// mountinfo format: <fields> - <fstype> <source> <superopts>
		const sep = " - "
		i := strings.LastIndex(line, sep)
		if i < 0 {
			continue
		}
		tail := strings.Fields(line[i+len(sep):])
		if len(tail) < 1 {
			continue
		}
		fstype := tail[0]

		pre := strings.Fields(line[:i])
		if len(pre) < 5 {
			continue
		}
		mountPoint := pre[4]

		switch fstype {
		case "cgroup2":
			v2Root = mountPoint
		case "cgroup":
			var superopts string
			if len(tail) >= 3 {
				superopts = tail[2]
			}
			for _, sub := range relevantV1Subsystems {
				if hasOpt(superopts, sub) {
					if _, exists := v1Roots[sub]; !exists {
						v1Roots[sub] = mountPoint
					}
				}
			}
			// cpu and cpuacct are frequently co-mounted at one path;
			// normalize so a caller asking for either finds it.
			if _, ok := v1Roots["cpuacct"]; !ok {
				if root, ok := v1Roots["cpu"]; ok && hasOpt(superoptsOf(tail), "cpu") {
					v1Roots["cpuacct"] = root
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Layout{}, fmt.Errorf("cgroup: scan mountinfo: %w", err)
	}

	layout := Layout{V1Roots: v1Roots, V2Root: v2Root}
	switch {
	case len(v1Roots) > 0 && v2Root != "":
		layout.Mode = V1
		layout.Detail = fmt.Sprintf("hybrid: v1 subsystems %v on mixed roots, v2 unified root %s (v1 preferred)", keys(v1Roots), v2Root)
	case len(v1Roots) > 0:
		layout.Mode = V1
		layout.Detail = fmt.Sprintf("cgroup v1: subsystems %v", keys(v1Roots))
	case v2Root != "":
		layout.Mode = V2
		layout.Detail = fmt.Sprintf("cgroup v2: unified root %s", v2Root)
	default:
		layout.Mode = Unsupported
		layout.Detail = "no usable cgroup mounts found"
		return layout, fmt.Errorf("cgroup: %s", layout.Detail)
	}
	return layout, nil
}

func hasOpt(superopts, name string) bool {
	for _, o := range strings.Split(superopts, ",") {
		if o == name {
			return true
		}
	}
	return false
}

// superoptsOf is a helper retained only for the cpu/cpuacct co-mount
// normalization above, so the superopts field doesn't need to be threaded
// through an extra parameter.
func superoptsOf(tail []string) string {
	if len(tail) >= 3 {
		return tail[2]
	}
	return ""
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
