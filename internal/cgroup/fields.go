//go:build linux

package cgroup

// V1Columns is the normative column order for cgroup v1 sample records.
// Every v1 collector emits exactly these columns, in this order, for every
// sample: a value that cannot be read yields an empty field rather than
// shifting the remaining columns.
var V1Columns = []string{
	"pids.current", "pids.max",
	"cpu.usage.total", "cpu.usage.system", "cpu.usage.user", "cpu.usage.percpu",
	"cpu.stat.user", "cpu.stat.system",
	"cpu.throttling.periods", "cpu.throttling.throttled.count", "cpu.throttling.throttled.time",
	"memory.usage.current", "memory.usage.max",
	"memory.limit.hard", "memory.limit.soft",
	"memory.failcnt",
	"memory.hierarchical_limit.memory", "memory.hierarchical_limit.memoryswap",
	"memory.cache", "memory.rss.all", "memory.rss.huge", "memory.mapped", "memory.swap",
	"memory.paged.in", "memory.paged.out",
	"memory.fault.total", "memory.fault.major",
	"memory.anon.inactive", "memory.anon.active",
	"memory.file.inactive", "memory.file.active",
	"memory.unevictable",
	"blkio.time", "blkio.sectors",
	"blkio.service.bytes.read", "blkio.service.bytes.write", "blkio.service.bytes.sync", "blkio.service.bytes.async",
	"blkio.service.ios.read", "blkio.service.ios.write", "blkio.service.ios.sync", "blkio.service.ios.async",
	"blkio.service.time.read", "blkio.service.time.write", "blkio.service.time.sync", "blkio.service.time.async",
	"blkio.queued.read", "blkio.queued.write", "blkio.queued.sync", "blkio.queued.async",
	"blkio.wait.read", "blkio.wait.write", "blkio.wait.sync", "blkio.wait.async",
	"blkio.merged.read", "blkio.merged.write", "blkio.merged.sync", "blkio.merged.async",
	"blkio.throttle.service.bytes.read", "blkio.throttle.service.bytes.write", "blkio.throttle.service.bytes.sync", "blkio.throttle.service.bytes.async",
	"blkio.throttle.service.ios.read", "blkio.throttle.service.ios.write", "blkio.throttle.service.ios.sync", "blkio.throttle.service.ios.async",
	"blkio.bfq.service.bytes.read", "blkio.bfq.service.bytes.write", "blkio.bfq.service.bytes.sync", "blkio.bfq.service.bytes.async",
	"blkio.bfq.service.ios.read", "blkio.bfq.service.ios.write", "blkio.bfq.service.ios.sync", "blkio.bfq.service.ios.async",
}

// V2Columns is the normative column order for cgroup v2 sample records.
var V2Columns = []string{
	"pids.current", "pids.max",
	"cpu.stat.usage_usec", "cpu.stat.system_usec", "cpu.stat.user_usec",
	"cpu.stat.nr_periods", "cpu.stat.nr_throttled", "cpu.stat.throttled_usec",
	"memory.current", "memory.high", "memory.max",
	"memory.stat.anon", "memory.stat.file", "memory.stat.kernel_stack", "memory.stat.pagetables",
	"memory.stat.percpu", "memory.stat.sock", "memory.stat.shmem",
	"memory.stat.file_mapped", "memory.stat.file_dirty", "memory.stat.file_writeback",
	"memory.stat.swapcached",
	"memory.stat.inactive_anon", "memory.stat.active_anon",
	"memory.stat.inactive_file", "memory.stat.active_file",
	"memory.stat.unevictable",
	"memory.stat.pgfault", "memory.stat.pgmajfault",
	"io.stat.rbytes", "io.stat.wbytes", "io.stat.rios", "io.stat.wios", "io.stat.dbytes", "io.stat.dios",
}

// blkioOps is the fixed emission order for the four per-operation blkio
// aggregates (spec.md §4.1: "Read, Write, Sync, Async... the Total row is
// discarded").
var blkioOps = []string{"Read", "Write", "Sync", "Async"}

// ioStatKeys is the fixed key order read out of each v2 io.stat device line.
var ioStatKeys = []string{"rbytes", "wbytes", "rios", "wios", "dbytes", "dios"}

// memoryStatWhitelist is the set of cgroup v1 memory.stat keys this reader
// extracts; every other key in the file is ignored per spec.md §4.1.
var memoryStatWhitelist = map[string]string{
	"cache":           "memory.cache",
	"rss":             "memory.rss.all",
	"rss_huge":        "memory.rss.huge",
	"mapped_file":     "memory.mapped",
	"swap":            "memory.swap",
	"pgpgin":          "memory.paged.in",
	"pgpgout":         "memory.paged.out",
	"pgfault":         "memory.fault.total",
	"pgmajfault":      "memory.fault.major",
	"inactive_anon":   "memory.anon.inactive",
	"active_anon":     "memory.anon.active",
	"inactive_file":   "memory.file.inactive",
	"active_file":     "memory.file.active",
	"unevictable":     "memory.unevictable",
	"hierarchical_memory_limit":      "memory.hierarchical_limit.memory",
	"hierarchical_memsw_limit":       "memory.hierarchical_limit.memoryswap",
}

// cpuStatV1Whitelist is the set of v1 cpu.stat keys this reader extracts.
var cpuStatV1Whitelist = map[string]string{
	"user":   "cpu.stat.user",
	"system": "cpu.stat.system",
}

// cpuStatV2Whitelist is the set of v2 cpu.stat keys this reader extracts.
var cpuStatV2Whitelist = map[string]string{
	"usage_usec":     "cpu.stat.usage_usec",
	"system_usec":    "cpu.stat.system_usec",
	"user_usec":      "cpu.stat.user_usec",
	"nr_periods":     "cpu.stat.nr_periods",
	"nr_throttled":   "cpu.stat.nr_throttled",
	"throttled_usec": "cpu.stat.throttled_usec",
}

// memoryStatV2Whitelist is the set of v2 memory.stat keys this reader
// extracts.
var memoryStatV2Whitelist = map[string]string{
	"anon":           "memory.stat.anon",
	"file":           "memory.stat.file",
	"kernel_stack":   "memory.stat.kernel_stack",
	"pagetables":     "memory.stat.pagetables",
	"percpu":         "memory.stat.percpu",
	"sock":           "memory.stat.sock",
	"shmem":          "memory.stat.shmem",
	"file_mapped":    "memory.stat.file_mapped",
	"file_dirty":     "memory.stat.file_dirty",
	"file_writeback": "memory.stat.file_writeback",
	"swapcached":     "memory.stat.swapcached",
	"inactive_anon":  "memory.stat.inactive_anon",
	"active_anon":    "memory.stat.active_anon",
	"inactive_file":  "memory.stat.inactive_file",
	"active_file":    "memory.stat.active_file",
	"unevictable":    "memory.stat.unevictable",
	"pgfault":        "memory.stat.pgfault",
	"pgmajfault":     "memory.stat.pgmajfault",
}
