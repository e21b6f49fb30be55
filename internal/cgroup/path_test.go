//go:build linux

package cgroup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/radvisor/radvisor/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PathFor_dockerCgroupfs(t *testing.T) {
	p, err := PathFor(target.Target{
		Kind: target.KindDocker, ID: "abc123", CgroupDriver: target.DriverCgroupfs,
	})
	require.NoError(t, err)
	assert.Equal(t, "docker/abc123", p)
}

func Test_PathFor_dockerSystemd(t *testing.T) {
	p, err := PathFor(target.Target{
		Kind: target.KindDocker, ID: "abc123", CgroupDriver: target.DriverSystemd,
	})
	require.NoError(t, err)
	assert.Equal(t, "system.slice/docker-abc123.scope", p)
}

func Test_PathFor_kubernetesSystemdBurstable(t *testing.T) {
	p, err := PathFor(target.Target{
		Kind: target.KindKubernetes, ID: "pod-1", CgroupDriver: target.DriverSystemd,
		Kubernetes: &target.KubernetesMetadata{UID: "abc-123-def", QoSClass: "Burstable"},
	})
	require.NoError(t, err)
	assert.Equal(t, "kubepods.slice/kubepods-burstable.slice/kubepods-burstable-podabc_123_def.slice", p)
}

func Test_PathFor_kubernetesCgroupfsGuaranteed(t *testing.T) {
	p, err := PathFor(target.Target{
		Kind: target.KindKubernetes, ID: "pod-1", CgroupDriver: target.DriverCgroupfs,
		Kubernetes: &target.KubernetesMetadata{UID: "abc-123-def", QoSClass: "Guaranteed"},
	})
	require.NoError(t, err)
	assert.Equal(t, "kubepods/podabc-123-def", p)
}

func Test_PathFor_kubernetesMissingMetadata(t *testing.T) {
	_, err := PathFor(target.Target{Kind: target.KindKubernetes, ID: "pod-1"})
	assert.Error(t, err)
}

func Test_DetectDriver_systemd(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "kubepods.slice"), 0o755))

	got := DetectDriver(Layout{Mode: V2, V2Root: root})
	assert.Equal(t, target.DriverSystemd, got)
}

func Test_DetectDriver_cgroupfsFallback(t *testing.T) {
	root := t.TempDir()

	got := DetectDriver(Layout{Mode: V2, V2Root: root})
	assert.Equal(t, target.DriverCgroupfs, got)
}
