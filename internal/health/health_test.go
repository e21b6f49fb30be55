package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActive struct{ n int }

func (f fakeActive) ActiveCount() int { return f.n }

func Test_serveHealthz_reportsActiveCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New("127.0.0.1:0", fakeActive{n: 3}, reg)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.serveHealthz(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var st Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	assert.Equal(t, 3, st.ActiveTargets)
	assert.True(t, st.Healthy)
}

func Test_status_reportsStartTime(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New("127.0.0.1:0", fakeActive{n: 0}, reg)
	assert.False(t, s.status().StartTime.IsZero())
}
