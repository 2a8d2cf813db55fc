package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveHTTP("GET", "GET /students/{enrollment_number}", 200, 10*time.Millisecond)
	m.ObserveHTTP("GET", "GET /students/{enrollment_number}", 200, 20*time.Millisecond)
	m.ObserveHTTP("GET", "GET /students/{enrollment_number}", 404, time.Millisecond)
	m.RecordLogin(OutcomeSuccess)
	m.RecordLogin(OutcomeInvalidCredentials)
	m.RecordLogin(OutcomeInvalidCredentials)
	m.RecordVerification(OutcomeRejected)
	m.SetStoreUp(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "GET /students/{enrollment_number}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "GET /students/{enrollment_number}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authAttempts.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.authAttempts.WithLabelValues("login", OutcomeInvalidCredentials)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authAttempts.WithLabelValues("token", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeUp))

	m.SetStoreUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.storeUp))

	count, err := testutil.GatherAndCount(reg, "studentinfo_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", 200, time.Second)
		m.RecordLogin(OutcomeSuccess)
		m.RecordVerification(OutcomeError)
		m.SetStoreUp(true)
	})
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
