package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New_registersAllMetricsWithoutPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	m.ActiveCollectors.Set(3)
	m.FlushCount.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func Test_IncFlushCount_and_IncFlushFailures_satisfyFlushCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncFlushCount()
	m.IncFlushFailures()

	assert.Equal(t, float64(1), testutilGather(t, reg, "radvisor_flush_total"))
	assert.Equal(t, float64(1), testutilGather(t, reg, "radvisor_flush_failures_total"))
}

func testutilGather(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() == name {
			return fam.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
