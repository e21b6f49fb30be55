package humanlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ResolveColor_explicitModes(t *testing.T) {
	assert.True(t, ResolveColor("always", nil))
	assert.False(t, ResolveColor("never", nil))
}

func Test_Banner_suppressedWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := New(true, false, false)
	l.out = &buf
	l.Banner("hello %s", "world")
	assert.Empty(t, buf.String())
}

func Test_Banner_printsWhenNotQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := New(false, false, false)
	l.out = &buf
	l.Banner("hello %s", "world")
	assert.Equal(t, "hello world", buf.String())
}

func Test_Fatal_colorsWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(false, false, true)
	l.errOut = &buf
	l.Fatal("boom")
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), colorRed)
}
