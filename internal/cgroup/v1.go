//go:build linux

package cgroup

import "path/filepath"

// v1Handles reads the legacy per-subsystem cgroup v1 accounting files. One
// *handle is opened per file at construction; Sample only seeks and
// rereads, never reopens.
type v1Handles struct {
	pidsCurrent, pidsMax *handle

	cpuacctUsage, cpuacctUsageSys, cpuacctUsageUser, cpuacctUsagePercpu *handle
	cpuStat                                                             *handle
	cpuCfsStat                                                          *handle // cpu.stat: nr_periods, nr_throttled, throttled_time

	memUsage, memMaxUsage, memLimit, memSoftLimit, memFailcnt, memStat *handle

	blkioTime, blkioSectors                       *handle
	blkioServiceBytes, blkioServiceIOs             *handle
	blkioServiceTime, blkioQueued                  *handle
	blkioWait, blkioMerged                         *handle
	blkioThrottleServiceBytes, blkioThrottleServiceIOs *handle
	blkioBfqServiceBytes, blkioBfqServiceIOs       *handle
}

func newV1Handles(layout Layout, relPath string) (Handles, error) {
	pidsRoot, ok := layout.V1Roots["pids"]
	if !ok {
		return nil, ErrMissingSubsystem
	}
	cpuacctRoot, ok := layout.V1Roots["cpuacct"]
	if !ok {
		return nil, ErrMissingSubsystem
	}
	memRoot, ok := layout.V1Roots["memory"]
	if !ok {
		return nil, ErrMissingSubsystem
	}
	blkioRoot, ok := layout.V1Roots["blkio"]
	if !ok {
		return nil, ErrMissingSubsystem
	}

	pids := filepath.Join(pidsRoot, relPath)
	cpuacct := filepath.Join(cpuacctRoot, relPath)
	mem := filepath.Join(memRoot, relPath)
	blkio := filepath.Join(blkioRoot, relPath)

	return &v1Handles{
		pidsCurrent: openHandle(filepath.Join(pids, "pids.current")),
		pidsMax:     openHandle(filepath.Join(pids, "pids.max")),

		cpuacctUsage:       openHandle(filepath.Join(cpuacct, "cpuacct.usage")),
		cpuacctUsageSys:    openHandle(filepath.Join(cpuacct, "cpuacct.usage_sys")),
		cpuacctUsageUser:   openHandle(filepath.Join(cpuacct, "cpuacct.usage_user")),
		cpuacctUsagePercpu: openHandle(filepath.Join(cpuacct, "cpuacct.usage_percpu")),
		cpuStat:            openHandle(filepath.Join(cpuacct, "cpuacct.stat")),
		cpuCfsStat:         openHandle(filepath.Join(cpuacct, "cpu.stat")),

		memUsage:     openHandle(filepath.Join(mem, "memory.usage_in_bytes")),
		memMaxUsage:  openHandle(filepath.Join(mem, "memory.max_usage_in_bytes")),
		memLimit:     openHandle(filepath.Join(mem, "memory.limit_in_bytes")),
		memSoftLimit: openHandle(filepath.Join(mem, "memory.soft_limit_in_bytes")),
		memFailcnt:   openHandle(filepath.Join(mem, "memory.failcnt")),
		memStat:      openHandle(filepath.Join(mem, "memory.stat")),

		blkioTime:                 openHandle(filepath.Join(blkio, "blkio.time_recursive")),
		blkioSectors:              openHandle(filepath.Join(blkio, "blkio.sectors_recursive")),
		blkioServiceBytes:         openHandle(filepath.Join(blkio, "blkio.io_service_bytes_recursive")),
		blkioServiceIOs:           openHandle(filepath.Join(blkio, "blkio.io_serviced_recursive")),
		blkioServiceTime:          openHandle(filepath.Join(blkio, "blkio.io_service_time_recursive")),
		blkioQueued:               openHandle(filepath.Join(blkio, "blkio.io_queued_recursive")),
		blkioWait:                 openHandle(filepath.Join(blkio, "blkio.io_wait_time_recursive")),
		blkioMerged:               openHandle(filepath.Join(blkio, "blkio.io_merged_recursive")),
		blkioThrottleServiceBytes: openHandle(filepath.Join(blkio, "blkio.throttle.io_service_bytes_recursive")),
		blkioThrottleServiceIOs:   openHandle(filepath.Join(blkio, "blkio.throttle.io_serviced_recursive")),
		blkioBfqServiceBytes:      openHandle(filepath.Join(blkio, "blkio.bfq.io_service_bytes_recursive")),
		blkioBfqServiceIOs:        openHandle(filepath.Join(blkio, "blkio.bfq.io_serviced_recursive")),
	}, nil
}

func (v *v1Handles) Columns() []string { return V1Columns }

func (v *v1Handles) Sample(dst []string) []string {
	readScalar := func(h *handle) string {
		raw, err := h.read()
		if err != nil {
			return ""
		}
		return parseScalar(raw)
	}
	readVector := func(h *handle) string {
		raw, err := h.read()
		if err != nil {
			return ""
		}
		return parseVector(raw)
	}
	readBlkioOps := func(h *handle) [4]string {
		var out [4]string
		raw, err := h.read()
		if err != nil {
			return out
		}
		sums := parseBlkioRecursive(raw)
		for i, op := range blkioOps {
			if v, ok := sums[op]; ok {
				out[i] = formatUint(v)
			}
		}
		return out
	}
	readBlkioScalar := func(h *handle) string {
		raw, err := h.read()
		if err != nil {
			return ""
		}
		return formatUint(parseBlkioScalar(raw))
	}

	dst = append(dst, readScalar(v.pidsCurrent), readScalar(v.pidsMax))

	dst = append(dst,
		readScalar(v.cpuacctUsage),
		readScalar(v.cpuacctUsageSys),
		readScalar(v.cpuacctUsageUser),
		readVector(v.cpuacctUsagePercpu),
	)

	cpuStat := map[string]string{}
	if raw, err := v.cpuStat.read(); err == nil {
		cpuStat = parseKV(raw, cpuStatV1Whitelist)
	}
	dst = append(dst, cpuStat["cpu.stat.user"], cpuStat["cpu.stat.system"])

	cfsStat := map[string]string{}
	if raw, err := v.cpuCfsStat.read(); err == nil {
		cfsStat = parseKV(raw, map[string]string{
			"nr_periods":     "periods",
			"nr_throttled":   "throttled_count",
			"throttled_time": "throttled_time",
		})
	}
	dst = append(dst, cfsStat["periods"], cfsStat["throttled_count"], cfsStat["throttled_time"])

	dst = append(dst,
		readScalar(v.memUsage), readScalar(v.memMaxUsage),
		readScalar(v.memLimit), readScalar(v.memSoftLimit),
		readScalar(v.memFailcnt),
	)

	memStat := map[string]string{}
	if raw, err := v.memStat.read(); err == nil {
		memStat = parseKV(raw, memoryStatWhitelist)
	}
	dst = append(dst,
		memStat["memory.hierarchical_limit.memory"], memStat["memory.hierarchical_limit.memoryswap"],
		memStat["memory.cache"], memStat["memory.rss.all"], memStat["memory.rss.huge"],
		memStat["memory.mapped"], memStat["memory.swap"],
		memStat["memory.paged.in"], memStat["memory.paged.out"],
		memStat["memory.fault.total"], memStat["memory.fault.major"],
		memStat["memory.anon.inactive"], memStat["memory.anon.active"],
		memStat["memory.file.inactive"], memStat["memory.file.active"],
		memStat["memory.unevictable"],
	)

	dst = append(dst, readBlkioScalar(v.blkioTime), readBlkioScalar(v.blkioSectors))

	for _, h := range []*handle{
		v.blkioServiceBytes, v.blkioServiceIOs, v.blkioServiceTime,
		v.blkioQueued, v.blkioWait, v.blkioMerged,
		v.blkioThrottleServiceBytes, v.blkioThrottleServiceIOs,
		v.blkioBfqServiceBytes, v.blkioBfqServiceIOs,
	} {
		ops := readBlkioOps(h)
		dst = append(dst, ops[0], ops[1], ops[2], ops[3])
	}

	return dst
}

func (v *v1Handles) Close() error {
	for _, h := range []*handle{
		v.pidsCurrent, v.pidsMax,
		v.cpuacctUsage, v.cpuacctUsageSys, v.cpuacctUsageUser, v.cpuacctUsagePercpu, v.cpuStat, v.cpuCfsStat,
		v.memUsage, v.memMaxUsage, v.memLimit, v.memSoftLimit, v.memFailcnt, v.memStat,
		v.blkioTime, v.blkioSectors, v.blkioServiceBytes, v.blkioServiceIOs,
		v.blkioServiceTime, v.blkioQueued, v.blkioWait, v.blkioMerged,
		v.blkioThrottleServiceBytes, v.blkioThrottleServiceIOs,
		v.blkioBfqServiceBytes, v.blkioBfqServiceIOs,
	} {
		_ = h.close()
	}
	return nil
}
