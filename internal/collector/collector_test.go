//go:build linux

package collector

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/radvisor/radvisor/internal/cgroup"
	"github.com/radvisor/radvisor/internal/sysinfo"
	"github.com/radvisor/radvisor/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func Test_Collector_sampleRoundTrip_v2(t *testing.T) {
	cgroupRoot := t.TempDir()
	logDir := t.TempDir()

	containerDir := filepath.Join(cgroupRoot, "docker", "abc123")
	writeFile(t, filepath.Join(containerDir, "pids.current"), "4\n")
	writeFile(t, filepath.Join(containerDir, "pids.max"), "max\n")
	writeFile(t, filepath.Join(containerDir, "cpu.stat"), "usage_usec 1000\nuser_usec 700\nsystem_usec 300\nnr_periods 0\nnr_throttled 0\nthrottled_usec 0\n")
	writeFile(t, filepath.Join(containerDir, "memory.current"), "1048576\n")
	writeFile(t, filepath.Join(containerDir, "memory.high"), "max\n")
	writeFile(t, filepath.Join(containerDir, "memory.max"), "max\n")
	writeFile(t, filepath.Join(containerDir, "memory.stat"), "anon 100\nfile 200\n")
	writeFile(t, filepath.Join(containerDir, "io.stat"), "8:0 rbytes=10 wbytes=20 rios=1 wios=2 dbytes=0 dios=0\n")

	layout := cgroup.Layout{Mode: cgroup.V2, V2Root: cgroupRoot}

	tgt := target.Target{
		ID:           "abc123",
		Kind:         target.KindDocker,
		CgroupDriver: target.DriverCgroupfs,
		PolledAt:     time.Unix(1000, 0),
		Docker:       &target.DockerMetadata{Image: "nginx:latest"},
	}

	c, err := New(tgt, layout, sysinfo.Info{OSType: "linux", CPUCount: 2}, Config{Directory: logDir, BufferCap: 4096})
	require.NoError(t, err)

	require.NoError(t, c.Sample(time.Unix(0, 5000)))
	require.NoError(t, c.Close())

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "Provider: docker")
	assert.Contains(t, text, "read,"+joinColumns(cgroup.V2Columns))
	assert.Contains(t, text, "5000,4,max,1000,300,700,0,0,0,1048576,max,max,100,200,")
}

func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return out
}
