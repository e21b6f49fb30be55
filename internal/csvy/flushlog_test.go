package csvy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FlushLog_writesEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flush.log")

	fl, err := OpenFlushLog(path, 8, nil)
	require.NoError(t, err)

	fl.Emit(Event{TargetID: "abc123", FlushedAtNs: 42, ByteCount: 100, Outcome: "ok"})
	require.NoError(t, fl.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.HasPrefix(text, "target_id,flushed_at_ns,byte_count,outcome\n"))
	assert.Contains(t, text, "abc123,42,100,ok\n")
}

func Test_FlushLog_dropsOnFullWithoutBlocking(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flush.log")

	fl, err := OpenFlushLog(path, 1, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			fl.Emit(Event{TargetID: "abc123", ByteCount: i, Outcome: "ok"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked under channel pressure")
	}

	require.NoError(t, fl.Close())
}
