package csvy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader() Header {
	return Header{
		Version:  "1",
		Provider: "docker",
		Metadata: map[string]any{"id": "abc123"},
		System:   SystemInfo{OSType: "linux", Hostname: "test-host", CPUCount: 4},
		Cgroup:   "docker/abc123",
		CgroupDriver: "cgroupfs",
	}
}

func Test_Open_writesFrontMatterAndColumnRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123_1000.log")

	w, err := Open(path, "abc123", testHeader(), []string{"pids.current", "pids.max"}, 4096, nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, text, "Provider: docker")
	assert.Equal(t, 2, strings.Count(text, "---\n"))
	assert.Contains(t, text, "read,pids.current,pids.max\n")
}

func Test_WriteRecord_roundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123_1000.log")

	w, err := Open(path, "abc123", testHeader(), []string{"pids.current", "pids.max"}, 4096, nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.WriteRecord(1234, []string{"2", "max"}))
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "1234,2,max\n")
}

func Test_WriteRecord_flushesWhenNearlyFull(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123_1000.log")

	w, err := Open(path, "abc123", testHeader(), []string{"field"}, 32, nil, nil)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, w.WriteRecord(int64(i), []string{"xxxxxxxxxx"}))
	}
	assert.Less(t, len(w.buf), 32)
	require.NoError(t, w.Close())
}

type countingFlushCounter struct {
	count, failures int
}

func (c *countingFlushCounter) IncFlushCount()    { c.count++ }
func (c *countingFlushCounter) IncFlushFailures() { c.failures++ }

func Test_Flush_incrementsFlushCounter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123_1000.log")

	counter := &countingFlushCounter{}
	w, err := Open(path, "abc123", testHeader(), []string{"field"}, 4096, nil, counter)
	require.NoError(t, err)
	require.NoError(t, w.WriteRecord(1, []string{"a"}))
	require.NoError(t, w.Flush("manual"))
	require.NoError(t, w.Close())

	assert.Equal(t, 1, counter.count)
	assert.Equal(t, 0, counter.failures)
}

func Test_Flush_noPaddingOnPartialBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123_1000.log")

	w, err := Open(path, "abc123", testHeader(), []string{"field"}, 4096, nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.WriteRecord(1, []string{"a"}))
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "\x00")
}
