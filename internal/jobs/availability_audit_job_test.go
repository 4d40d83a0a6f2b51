package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/jobs"
	"logistics/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriftFinder struct {
	mock.Mock
}

func (m *MockDriftFinder) Handle(
	ctx context.Context,
	query queries.FindAvailabilityDriftQuery,
) ([]queries.AvailabilityDriftResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.AvailabilityDriftResponse), args.Error(1)
}

func TestAvailabilityAuditJob_RunLogsDrift(t *testing.T) {
	stale := "PMS-00AA11BB"
	finder := new(MockDriftFinder)
	finder.On("Handle", mock.Anything, mock.Anything).Return([]queries.AvailabilityDriftResponse{
		{DriverID: 3, Available: false, ActiveParcel: &stale},
		{DriverID: 9, Available: false, ActiveParcel: &stale},
	}, nil).Once()

	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	job := jobs.NewAvailabilityAuditJob(finder, "", metrics.New(reg), slog.New(slog.NewJSONHandler(&logs, nil)))

	job.Run()

	finder.AssertExpectations(t)
	assert.Contains(t, logs.String(), `"driver_id":3`)
	assert.Contains(t, logs.String(), `"driver_id":9`)
	expected := `
		# HELP driver_availability_drift Drivers whose availability flag disagrees with their in-flight parcels.
		# TYPE driver_availability_drift gauge
		driver_availability_drift 2
	`
	require.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(expected), "driver_availability_drift"))
}

func TestAvailabilityAuditJob_RunLogsFailure(t *testing.T) {
	finder := new(MockDriftFinder)
	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	var logs bytes.Buffer
	job := jobs.NewAvailabilityAuditJob(finder, "", nil, slog.New(slog.NewJSONHandler(&logs, nil)))

	job.Run()

	assert.Contains(t, logs.String(), "Availability audit failed")
}

func TestJobManager_RejectsBadSchedule(t *testing.T) {
	manager := jobs.NewJobManager(new(MockDriftFinder), "not a schedule", nil, slog.New(slog.DiscardHandler))

	require.Error(t, manager.StartAll())
}
