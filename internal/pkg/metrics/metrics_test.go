package metrics_test

import (
	"errors"
	"testing"
	"time"

	"logistics/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	require.NotNil(t, m)

	m.IncTransition("requested", "accepted")
	m.IncTransition("requested", "accepted")
	m.IncNotification(metrics.OutcomeDelivered)
	m.IncNotification("")
	m.ObserveJob("audit", 10*time.Millisecond, nil)
	m.ObserveJob("audit", 10*time.Millisecond, errors.New("boom"))
	m.SetAvailabilityDrift(3)

	count, err := testutil.GatherAndCount(reg, "parcel_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(reg, "notifications_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "job_success_total", "job_failure_total", "driver_availability_drift")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.IncTransition("a", "b")
		m.IncNotification(metrics.OutcomeFailed)
		m.ObserveJob("audit", time.Second, nil)
		m.SetAvailabilityDrift(1)
	})
	assert.Nil(t, metrics.New(nil))
}
