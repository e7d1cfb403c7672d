package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metricLoop:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metricLoop
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSkippedEvents(2)
	c.RecordSkippedEvents(1)
	c.RecordDroppedSessions(4)
	c.RecordNegativeSessions(1)
	c.RecordEventStored("login")
	c.RecordEventStored("login")
	c.RecordEventStored("logout")

	assert.Equal(t, 3.0, counterValue(t, reg, "hris_attendance_skipped_events_total", nil))
	assert.Equal(t, 4.0, counterValue(t, reg, "hris_attendance_dropped_sessions_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "hris_attendance_negative_sessions_total", nil))
	assert.Equal(t, 2.0, counterValue(t, reg, "hris_attendance_events_stored_total", map[string]string{"action": "login"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "hris_attendance_events_stored_total", map[string]string{"action": "logout"}))
}

func TestCollector_ReconcileHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordReconcile("summary", 3*time.Millisecond)
	c.RecordReconcile("summary", 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "hris_attendance_reconcile_duration_seconds" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(2), h.GetSampleCount())
		assert.InDelta(t, 0.008, h.GetSampleSum(), 1e-9)
		found = true
	}
	assert.True(t, found)
}

func TestCollector_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordEventStored("break_started")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `hris_attendance_events_stored_total{action="break_started"} 1`)
}

func TestNop_SatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordReconcile("history", time.Second)
	r.RecordSkippedEvents(1)
	r.RecordDroppedSessions(1)
	r.RecordNegativeSessions(1)
	r.RecordEventStored("login")
}
