package jobs

import (
	"fmt"
	"log/slog"

	"logistics/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	availabilityAuditJob *AvailabilityAuditJob
}

func NewJobManager(
	driftHandler driftFinder,
	auditSchedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		availabilityAuditJob: NewAvailabilityAuditJob(driftHandler, auditSchedule, m, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.availabilityAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start availability audit job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.availabilityAuditJob.Stop()
}
