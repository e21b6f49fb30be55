//go:build linux

package cgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseScalar(t *testing.T) {
	assert.Equal(t, "2", parseScalar("2\n"))
	assert.Equal(t, "max", parseScalar("max\n"))
}

func Test_parseKV_whitelist(t *testing.T) {
	raw := "cache 10\nrss 20\nunknown_key 99\n"
	got := parseKV(raw, map[string]string{"cache": "memory.cache", "rss": "memory.rss.all"})
	assert.Equal(t, "10", got["memory.cache"])
	assert.Equal(t, "20", got["memory.rss.all"])
	assert.Len(t, got, 2)
}

func Test_parseVector_preservesSpacing(t *testing.T) {
	raw := "100 200 300\n"
	assert.Equal(t, "100 200 300", parseVector(raw))
}

func Test_parseBlkioRecursive_sumsPerOpDiscardsTotal(t *testing.T) {
	raw := `8:0 Read 34000000
8:0 Write 74000000
8:0 Sync 37000000
8:0 Async 71000000
8:0 Total 145000000
8:16 Read 787328
8:16 Write 403840
8:16 Sync 494784
8:16 Async 696384
8:16 Total 1296384
Total 146296384
`
	sums := parseBlkioRecursive(raw)
	assert.EqualValues(t, 34787328, sums["Read"])
	assert.EqualValues(t, 74403840, sums["Write"])
	assert.EqualValues(t, 37494784, sums["Sync"])
	assert.EqualValues(t, 71696384, sums["Async"])
	_, hasTotal := sums["Total"]
	assert.False(t, hasTotal)
}

func Test_parseBlkioScalar_sumsAcrossDevices(t *testing.T) {
	raw := "8:0 120\n8:16 30\n"
	assert.EqualValues(t, 150, parseBlkioScalar(raw))
}

func Test_parseIOStat_sumsAcrossDevices(t *testing.T) {
	raw := "8:0 rbytes=100 wbytes=200 rios=1 wios=2 dbytes=0 dios=0\n8:16 rbytes=50 wbytes=0 rios=1 wios=0 dbytes=0 dios=0\n"
	sums := parseIOStat(raw)
	assert.EqualValues(t, 150, sums["rbytes"])
	assert.EqualValues(t, 200, sums["wbytes"])
	assert.EqualValues(t, 2, sums["rios"])
	assert.EqualValues(t, 2, sums["wios"])
}

func Test_cpuStatV2_example(t *testing.T) {
	raw := "usage_usec 1000\nuser_usec 700\nsystem_usec 300\nnr_periods 0\nnr_throttled 0\nthrottled_usec 0\n"
	got := parseKV(raw, cpuStatV2Whitelist)
	assert.Equal(t, "1000", got["cpu.stat.usage_usec"])
	assert.Equal(t, "300", got["cpu.stat.system_usec"])
	assert.Equal(t, "700", got["cpu.stat.user_usec"])
	assert.Equal(t, "0", got["cpu.stat.nr_periods"])
}
