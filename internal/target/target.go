// Package target defines the discovered-unit type shared by every provider
// and consumed by the poll/collection threads.
package target

import "time"

// Kind identifies which provider produced a Target.
type Kind string

const (
	// KindDocker marks a target discovered from the Docker daemon.
	KindDocker Kind = "docker"
	// KindKubernetes marks a target discovered from the Kubernetes API.
	KindKubernetes Kind = "kubernetes"
)

// Driver identifies the cgroup path convention in effect for a Target.
type Driver string

const (
	// DriverCgroupfs is the raw, non-systemd cgroup path convention.
	DriverCgroupfs Driver = "cgroupfs"
	// DriverSystemd is the slice/scope cgroup path convention.
	DriverSystemd Driver = "systemd"
)

// Target is a discovered unit to be monitored: a running container or pod.
// Targets are value-equal by ID; everything else is metadata carried
// verbatim into the CSVY log header.
type Target struct {
	// ID is the stable identifier: container ID or pod UID.
	ID string

	// Kind says which provider produced this Target.
	Kind Kind

	// CgroupPath is the path of this target's cgroup, relative to
	// /sys/fs/cgroup (e.g. "docker/<id>" or
	// "kubepods.slice/kubepods-burstable.slice/kubepods-burstable-pod<uid>.slice").
	CgroupPath string

	// CgroupDriver is the naming convention that produced CgroupPath.
	CgroupDriver Driver

	// PolledAt is when the provider returned this target, used verbatim in
	// the CSVY header's PolledAt field.
	PolledAt time.Time

	// Docker carries Docker-specific metadata; nil for Kubernetes targets.
	Docker *DockerMetadata

	// Kubernetes carries pod-specific metadata; nil for Docker targets.
	Kubernetes *KubernetesMetadata
}

// DockerMetadata holds the container attributes preserved verbatim for the
// log header, mirroring the fields the Docker provider has on hand after
// listing containers.
type DockerMetadata struct {
	Image   string
	Command string
	Names   []string
	Labels  map[string]string
	Ports   []string
	Status  string
	SizeRw  int64
	Created time.Time
}

// KubernetesMetadata holds pod attributes preserved verbatim for the log
// header.
type KubernetesMetadata struct {
	Name        string
	Namespace   string
	Node        string
	UID         string
	QoSClass    string
	Phase       string
	Labels      map[string]string
	Annotations map[string]string
	Created     time.Time
}

// Equal reports whether two targets refer to the same monitored unit.
// Targets are value-equal by ID alone.
func Equal(a, b Target) bool { return a.ID == b.ID }
