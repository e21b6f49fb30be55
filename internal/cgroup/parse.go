//go:build linux

package cgroup

import (
	"strconv"
	"strings"
)

// parseScalar trims a single-value file's contents (e.g. pids.current). The
// literal "max" is preserved as-is per spec.md §4.1.
func parseScalar(raw string) string {
	return strings.TrimSpace(raw)
}

// parseKV parses a newline-separated "key value" file (e.g. memory.stat,
// cgroup-v2 cpu.stat) into whitelisted output fields, keyed by the output
// column name the whitelist maps each key to. Keys absent from whitelist
// are ignored; keys in whitelist absent from the file are simply missing
// from the result map, which the caller treats as an empty field.
func parseKV(raw string, whitelist map[string]string) map[string]string {
	out := make(map[string]string, len(whitelist))
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		col, ok := whitelist[fields[0]]
		if !ok {
			continue
		}
		out[col] = fields[1]
	}
	return out
}

// parseVector returns a space-separated vector file's contents (e.g.
// cpuacct.usage_percpu) as a single field, preserving original spacing
// apart from the trailing newline.
func parseVector(raw string) string {
	return strings.TrimRight(raw, "\n")
}

// parseBlkioRecursive sums a v1 blkio "<major:minor> <op> <value>" file
// (e.g. blkio.io_service_bytes_recursive, blkio.io_serviced_recursive) across
// devices per operation, discarding the "Total" rows entirely, and returns
// the per-op sums keyed by operation name. The map has no order; callers
// read it out in blkioOps order. An operation with no row is absent.
func parseBlkioRecursive(raw string) map[string]uint64 {
	sums := make(map[string]uint64, len(blkioOps))
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		op, valStr := fields[1], fields[2]
		if op == "Total" {
			continue
		}
		v, err := strconv.ParseUint(valStr, 10, 64)
		if err != nil {
			continue
		}
		sums[op] += v
	}
	return sums
}

// parseBlkioScalar sums a v1 blkio file that carries a single value per
// device with no per-operation breakdown (e.g. blkio.time, blkio.sectors):
// "<major:minor> <value>" lines, summed across devices.
func parseBlkioScalar(raw string) uint64 {
	var total uint64
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total
}

// parseIOStat sums a v2 io.stat file ("<major:minor> rbytes=… wbytes=…
// rios=… wios=… dbytes=… dios=…" lines) across devices, returning the sums
// keyed by stat name. The map has no order; callers read it out in
// ioStatKeys order.
func parseIOStat(raw string) map[string]uint64 {
	sums := make(map[string]uint64, len(ioStatKeys))
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		for _, kv := range fields[1:] {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) != 2 {
				continue
			}
			v, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				continue
			}
			sums[parts[0]] += v
		}
	}
	return sums
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
