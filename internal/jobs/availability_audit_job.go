package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	availabilityAuditJobName = "availability_audit"

	DefaultAuditSchedule = "0 * * * * *"

	auditTimeout = 30 * time.Second
)

type driftFinder interface {
	Handle(ctx context.Context, query queries.FindAvailabilityDriftQuery) ([]queries.AvailabilityDriftResponse, error)
}

// AvailabilityAuditJob reports drivers whose availability disagrees with
// their in-flight parcels.
type AvailabilityAuditJob struct {
	handler  driftFinder
	schedule string
	cron     *cron.Cron
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewAvailabilityAuditJob uses DefaultAuditSchedule when schedule is empty.
func NewAvailabilityAuditJob(
	handler driftFinder,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AvailabilityAuditJob {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	return &AvailabilityAuditJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		metrics:  m,
		logger:   logger.With("component", "availability_audit_job"),
	}
}

func (j *AvailabilityAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Availability audit job started", "schedule", j.schedule)
	return nil
}

// Run performs one audit.
func (j *AvailabilityAuditJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	started := time.Now()
	drift, err := j.handler.Handle(ctx, queries.NewFindAvailabilityDriftQuery())
	j.metrics.ObserveJob(availabilityAuditJobName, time.Since(started), err)
	if err != nil {
		j.logger.ErrorContext(ctx, "Availability audit failed", "error", err)
		return
	}

	j.metrics.SetAvailabilityDrift(len(drift))
	for _, d := range drift {
		j.logger.WarnContext(ctx, "Driver availability drift",
			"driver_id", d.DriverID,
			"available", d.Available,
			"active_parcel", stringOrEmpty(d.ActiveParcel),
			"in_flight_parcel", stringOrEmpty(d.InFlightParcel),
		)
	}
}

func (j *AvailabilityAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Availability audit job stopped")
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
