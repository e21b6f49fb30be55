//go:build linux

package cgroup

import "path/filepath"

// v2Handles reads the unified cgroup v2 accounting files.
type v2Handles struct {
	pidsCurrent, pidsMax *handle
	cpuStat              *handle
	memCurrent, memHigh, memMax *handle
	memStat              *handle
	ioStat               *handle
}

func newV2Handles(layout Layout, relPath string) (Handles, error) {
	dir := filepath.Join(layout.V2Root, relPath)
	return &v2Handles{
		pidsCurrent: openHandle(filepath.Join(dir, "pids.current")),
		pidsMax:     openHandle(filepath.Join(dir, "pids.max")),
		cpuStat:     openHandle(filepath.Join(dir, "cpu.stat")),
		memCurrent:  openHandle(filepath.Join(dir, "memory.current")),
		memHigh:     openHandle(filepath.Join(dir, "memory.high")),
		memMax:      openHandle(filepath.Join(dir, "memory.max")),
		memStat:     openHandle(filepath.Join(dir, "memory.stat")),
		ioStat:      openHandle(filepath.Join(dir, "io.stat")),
	}, nil
}

func (v *v2Handles) Columns() []string { return V2Columns }

func (v *v2Handles) Sample(dst []string) []string {
	readScalar := func(h *handle) string {
		raw, err := h.read()
		if err != nil {
			return ""
		}
		return parseScalar(raw)
	}

	dst = append(dst, readScalar(v.pidsCurrent), readScalar(v.pidsMax))

	cpuStat := map[string]string{}
	if raw, err := v.cpuStat.read(); err == nil {
		cpuStat = parseKV(raw, cpuStatV2Whitelist)
	}
	dst = append(dst,
		cpuStat["cpu.stat.usage_usec"], cpuStat["cpu.stat.system_usec"], cpuStat["cpu.stat.user_usec"],
		cpuStat["cpu.stat.nr_periods"], cpuStat["cpu.stat.nr_throttled"], cpuStat["cpu.stat.throttled_usec"],
	)

	dst = append(dst, readScalar(v.memCurrent), readScalar(v.memHigh), readScalar(v.memMax))

	memStat := map[string]string{}
	if raw, err := v.memStat.read(); err == nil {
		memStat = parseKV(raw, memoryStatV2Whitelist)
	}
	dst = append(dst,
		memStat["memory.stat.anon"], memStat["memory.stat.file"],
		memStat["memory.stat.kernel_stack"], memStat["memory.stat.pagetables"],
		memStat["memory.stat.percpu"], memStat["memory.stat.sock"], memStat["memory.stat.shmem"],
		memStat["memory.stat.file_mapped"], memStat["memory.stat.file_dirty"], memStat["memory.stat.file_writeback"],
		memStat["memory.stat.swapcached"],
		memStat["memory.stat.inactive_anon"], memStat["memory.stat.active_anon"],
		memStat["memory.stat.inactive_file"], memStat["memory.stat.active_file"],
		memStat["memory.stat.unevictable"],
		memStat["memory.stat.pgfault"], memStat["memory.stat.pgmajfault"],
	)

	ioSums := map[string]uint64{}
	if raw, err := v.ioStat.read(); err == nil {
		ioSums = parseIOStat(raw)
	}
	for _, k := range ioStatKeys {
		if v, ok := ioSums[k]; ok {
			dst = append(dst, formatUint(v))
		} else {
			dst = append(dst, "")
		}
	}

	return dst
}

func (v *v2Handles) Close() error {
	for _, h := range []*handle{
		v.pidsCurrent, v.pidsMax, v.cpuStat,
		v.memCurrent, v.memHigh, v.memMax, v.memStat, v.ioStat,
	} {
		_ = h.close()
	}
	return nil
}
