package collector

import (
	"time"

	"github.com/radvisor/radvisor/internal/cgroup"
	"github.com/radvisor/radvisor/internal/csvy"
	"github.com/radvisor/radvisor/internal/sysinfo"
	"github.com/radvisor/radvisor/internal/target"
)

func buildHeader(t target.Target, layout cgroup.Layout, sys sysinfo.Info, initializedAt time.Time) csvy.Header {
	metadata := map[string]any{"id": t.ID}
	var perfTable map[string]csvy.ColumnHint

	switch t.Kind {
	case target.KindDocker:
		if d := t.Docker; d != nil {
			metadata["image"] = d.Image
			metadata["command"] = d.Command
			metadata["names"] = d.Names
			metadata["labels"] = d.Labels
			metadata["ports"] = d.Ports
			metadata["status"] = d.Status
			metadata["size_rw"] = d.SizeRw
			metadata["created"] = d.Created.UnixNano()
		}
	case target.KindKubernetes:
		if k := t.Kubernetes; k != nil {
			metadata["name"] = k.Name
			metadata["namespace"] = k.Namespace
			metadata["node"] = k.Node
			metadata["uid"] = k.UID
			metadata["qos_class"] = k.QoSClass
			metadata["phase"] = k.Phase
			metadata["labels"] = k.Labels
			metadata["annotations"] = k.Annotations
			metadata["created"] = k.Created.UnixNano()
		}
	}

	if layout.Mode == cgroup.V1 {
		perfTable = map[string]csvy.ColumnHint{
			"cpu.usage.percpu": {Type: "vector", Count: sys.CPUCount},
		}
	}

	return csvy.Header{
		Version:       "1",
		Provider:      string(t.Kind),
		Metadata:      metadata,
		PerfTable:     perfTable,
		System: csvy.SystemInfo{
			OSType:       sys.OSType,
			OSRelease:    sys.OSRelease,
			Distribution: sys.Distribution,
			MemoryBytes:  sys.MemoryBytes,
			SwapBytes:    sys.SwapBytes,
			Hostname:     sys.Hostname,
			CPUCount:     sys.CPUCount,
			CPUOnline:    sys.CPUOnline,
			CPUMHz:       sys.CPUMHz,
		},
		Cgroup:        t.CgroupPath,
		CgroupDriver:  string(t.CgroupDriver),
		PolledAt:      t.PolledAt.UnixNano(),
		InitializedAt: initializedAt.UnixNano(),
	}
}
