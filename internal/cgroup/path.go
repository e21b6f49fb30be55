//go:build linux

package cgroup

import (
	"fmt"
	"os"
	"strings"

	"github.com/radvisor/radvisor/internal/target"
)

// PathFor resolves a target's cgroup path (relative to a hierarchy root)
// from its kind, ID, and driver, following the naming conventions each
// container runtime / kubelet uses when writing cgroups. QoS class is only
// meaningful for Kubernetes targets.
//
// Grounded on the systemd/cgroupfs slice-naming patterns enumerated in
// ENSIAS-3A-Projects-Projet-Federateur's pkg/agent/cgroup/reader.go
// (findPodCgroupPath), generalized from "try every candidate" into "compute
// the one path the discovered driver implies" since radvisor's provider
// already knows which driver is in effect for a given target.
func PathFor(t target.Target) (string, error) {
	switch t.Kind {
	case target.KindDocker:
		return dockerPath(t)
	case target.KindKubernetes:
		return kubernetesPath(t)
	default:
		return "", fmt.Errorf("cgroup: unknown target kind %q", t.Kind)
	}
}

func dockerPath(t target.Target) (string, error) {
	switch t.CgroupDriver {
	case target.DriverSystemd:
		return fmt.Sprintf("system.slice/docker-%s.scope", t.ID), nil
	case target.DriverCgroupfs, "":
		return fmt.Sprintf("docker/%s", t.ID), nil
	default:
		return "", fmt.Errorf("cgroup: unknown docker cgroup driver %q", t.CgroupDriver)
	}
}

func kubernetesPath(t target.Target) (string, error) {
	if t.Kubernetes == nil {
		return "", fmt.Errorf("cgroup: kubernetes target %s missing pod metadata", t.ID)
	}
	uid := t.Kubernetes.UID
	qos := strings.ToLower(t.Kubernetes.QoSClass)
	if qos == "" {
		qos = "besteffort"
	}

	switch t.CgroupDriver {
	case target.DriverSystemd:
		sanitized := strings.ReplaceAll(uid, "-", "_")
		if qos == "guaranteed" {
			return fmt.Sprintf("kubepods.slice/kubepods-pod%s.slice", sanitized), nil
		}
		return fmt.Sprintf(
			"kubepods.slice/kubepods-%s.slice/kubepods-%s-pod%s.slice",
			qos, qos, sanitized,
		), nil
	case target.DriverCgroupfs, "":
		if qos == "guaranteed" {
			return fmt.Sprintf("kubepods/pod%s", uid), nil
		}
		return fmt.Sprintf("kubepods/%s/pod%s", qos, uid), nil
	default:
		return "", fmt.Errorf("cgroup: unknown kubernetes cgroup driver %q", t.CgroupDriver)
	}
}

// DetectDriver probes the host's hierarchy root for the systemd slice
// convention and falls back to the raw cgroupfs convention (the driver is a
// host-level property of the container runtime, not something that changes
// per target). Grounded on reader.go's findPodCgroupPath: instead of
// globbing every candidate path per pod, it checks whether a
// "kubepods.slice" or "system.slice" top-level directory exists under the
// detected hierarchy root. The result is not cached; every call probes the
// filesystem again.
func DetectDriver(layout Layout) target.Driver {
	root := layout.V2Root
	if layout.Mode == V1 {
		if r, ok := layout.V1Roots["cpuacct"]; ok {
			root = r
		}
	}
	if root == "" {
		return target.DriverCgroupfs
	}
	if info, err := os.Stat(root + "/kubepods.slice"); err == nil && info.IsDir() {
		return target.DriverSystemd
	}
	if info, err := os.Stat(root + "/system.slice"); err == nil && info.IsDir() {
		return target.DriverSystemd
	}
	return target.DriverCgroupfs
}
