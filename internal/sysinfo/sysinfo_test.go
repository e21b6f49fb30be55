//go:build linux

package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_countCPURange(t *testing.T) {
	assert.Equal(t, 4, countCPURange("0-3"))
	assert.Equal(t, 5, countCPURange("0-3,6"))
	assert.Equal(t, 6, countCPURange("0-1,3-5,9"))
	assert.Equal(t, 0, countCPURange(""))
}

func Test_Collect_populatesHostFields(t *testing.T) {
	info := Collect()
	assert.Equal(t, "linux", info.OSType)
	assert.Greater(t, info.CPUCount, 0)
}
