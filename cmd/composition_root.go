package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "logistics/internal/adapters/in/http"
	queuein "logistics/internal/adapters/in/queue"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/notificationrepo"
	queueout "logistics/internal/adapters/out/queue"
	"logistics/internal/adapters/out/redisstore"
	"logistics/internal/core/application/notifications"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"
	"logistics/internal/pkg/metrics"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	gormDB *gorm.DB

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	pricing     services.PricingEngine
	coordinator services.AssignmentCoordinator

	dispatcher *notifications.Dispatcher
	uowFactory *postgres.GormUnitOfWorkFactory

	redisClient *redis.Client
	idempotency *redisstore.IdempotencyStore
	asynqClient *asynq.Client
	worker      *queuein.Worker
	jobManager  *jobs.JobManager
}

// NewCompositionRoot wires the application. Redis and the task queue are only
// connected when configured.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		cfg:         cfg,
		logger:      logger,
		gormDB:      gormDB,
		registry:    registry,
		metrics:     metrics.New(registry),
		pricing:     services.NewPricingEngine(),
		coordinator: services.NewAssignmentCoordinator(),
	}

	if cfg.RedisEnabled() {
		client, err := redisstore.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		c.redisClient = client
		c.idempotency = redisstore.NewIdempotencyStore(client)
	}

	inbox := notificationrepo.NewInbox(gormDB)
	var sink ports.NotificationSink = inbox
	if cfg.QueueEnabled {
		opt := queueout.RedisOpt(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		c.asynqClient = asynq.NewClient(opt)
		sink = queueout.NewAsynqSink(c.asynqClient, queueout.DefaultQueue, 0)
		c.worker = queuein.NewWorker(opt, cfg.QueueConcurrency, queuein.NewNotificationTaskHandler(inbox, logger), logger)
	}

	c.dispatcher = notifications.NewDispatcher(sink, notifications.Config{
		Workers:     cfg.NotifyWorkers,
		Buffer:      cfg.NotifyBuffer,
		MaxAttempts: cfg.NotifyMaxAttempts,
	}, logger, c.metrics)
	publisher := notifications.NewEventPublisher(c.dispatcher, logger, c.metrics)
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher)

	c.jobManager = jobs.NewJobManager(c.CreateFindAvailabilityDriftQueryHandler(), cfg.AuditSchedule, c.metrics, logger)

	return c, nil
}

// Start launches the background parts: dispatcher workers, queue worker and jobs.
func (c *CompositionRoot) Start() error {
	c.dispatcher.Start()
	if c.worker != nil {
		if err := c.worker.Start(); err != nil {
			return fmt.Errorf("start queue worker: %w", err)
		}
	}
	return c.jobManager.StartAll()
}

// Shutdown stops jobs first, then drains the dispatcher so that committed
// notifications are still delivered, then closes connections.
func (c *CompositionRoot) Shutdown(ctx context.Context) error {
	c.jobManager.StopAll()

	var errs []error
	if err := c.dispatcher.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop dispatcher: %w", err))
	}
	if c.worker != nil {
		c.worker.Stop()
	}
	if c.asynqClient != nil {
		if err := c.asynqClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close asynq client: %w", err))
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewRouter builds the HTTP API around the use cases.
func (c *CompositionRoot) NewRouter(spec *httpin.Spec) (*echo.Echo, error) {
	auth, err := httpin.NewTokenAuthenticator(c.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	checks := map[string]httpin.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var idempotency httpin.IdempotencyStore
	if c.idempotency != nil {
		idempotency = c.idempotency
		checks["redis"] = c.idempotency.Ping
	}

	return httpin.NewRouter(httpin.NewServer(c.Handlers()), httpin.RouterConfig{
		Logger:         c.logger,
		Spec:           spec,
		Auth:           auth,
		Idempotency:    idempotency,
		Gatherer:       c.registry,
		RequestTimeout: c.cfg.RequestTimeout,
		HealthChecks:   checks,
	}), nil
}

func (c *CompositionRoot) Handlers() httpin.Handlers {
	return httpin.Handlers{
		CreateParcel:             c.CreateCreateParcelCommandHandler(),
		AcceptParcel:             c.CreateAcceptParcelCommandHandler(),
		RejectParcel:             c.CreateRejectParcelCommandHandler(),
		AdvanceParcelStatus:      c.CreateAdvanceParcelStatusCommandHandler(),
		AssignDriver:             c.CreateAssignDriverCommandHandler(),
		UnassignDriver:           c.CreateUnassignDriverCommandHandler(),
		CreateDriver:             c.CreateCreateDriverCommandHandler(),
		UpdateDriver:             c.CreateUpdateDriverCommandHandler(),
		DeleteDriver:             c.CreateDeleteDriverCommandHandler(),
		ReportDriverLocation:     c.CreateReportDriverLocationCommandHandler(),
		MarkNotificationRead:     c.CreateMarkNotificationReadCommandHandler(),
		MarkAllNotificationsRead: c.CreateMarkAllNotificationsReadCommandHandler(),

		GetParcel:         c.CreateGetParcelQueryHandler(),
		ListParcels:       c.CreateListParcelsQueryHandler(),
		SuggestDriver:     c.CreateSuggestDriverQueryHandler(),
		ListDrivers:       c.CreateListDriversQueryHandler(),
		QuotePrice:        c.CreateQuotePriceQueryHandler(),
		ListNotifications: c.CreateListNotificationsQueryHandler(),
		GetDriverContact:  c.CreateGetDriverContactQueryHandler(),
		ParcelStats:       c.CreateParcelStatsQueryHandler(),
		ListLiveDrivers:   c.CreateListLiveDriversQueryHandler(),
	}
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() *commands.CreateParcelCommandHandler {
	h := commands.NewCreateParcelCommandHandler(c.parcelUoWFactory(), c.pricing)
	return &h
}

func (c *CompositionRoot) CreateAcceptParcelCommandHandler() *commands.AcceptParcelCommandHandler {
	h := commands.NewAcceptParcelCommandHandler(c.parcelUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRejectParcelCommandHandler() *commands.RejectParcelCommandHandler {
	h := commands.NewRejectParcelCommandHandler(c.parcelUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAdvanceParcelStatusCommandHandler() *commands.AdvanceParcelStatusCommandHandler {
	h := commands.NewAdvanceParcelStatusCommandHandler(c.assignmentUoWFactory(), c.coordinator)
	return &h
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() *commands.AssignDriverCommandHandler {
	h := commands.NewAssignDriverCommandHandler(c.assignmentUoWFactory(), c.coordinator)
	return &h
}

func (c *CompositionRoot) CreateUnassignDriverCommandHandler() *commands.UnassignDriverCommandHandler {
	h := commands.NewUnassignDriverCommandHandler(c.assignmentUoWFactory(), c.coordinator)
	return &h
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() *commands.CreateDriverCommandHandler {
	h := commands.NewCreateDriverCommandHandler(c.driverUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateDriverCommandHandler() *commands.UpdateDriverCommandHandler {
	h := commands.NewUpdateDriverCommandHandler(c.driverUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDeleteDriverCommandHandler() *commands.DeleteDriverCommandHandler {
	h := commands.NewDeleteDriverCommandHandler(c.driverUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateReportDriverLocationCommandHandler() *commands.ReportDriverLocationCommandHandler {
	h := commands.NewReportDriverLocationCommandHandler(c.driverUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() *commands.MarkNotificationReadCommandHandler {
	h := commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() *commands.MarkAllNotificationsReadCommandHandler {
	h := commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDriversQueryHandler() queries.ListDriversQueryHandler {
	return queries.NewListDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverContactQueryHandler() queries.GetDriverContactQueryHandler {
	return queries.NewGetDriverContactQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateParcelStatsQueryHandler() queries.ParcelStatsQueryHandler {
	return queries.NewParcelStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListLiveDriversQueryHandler() queries.ListLiveDriversQueryHandler {
	return queries.NewListLiveDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindAvailabilityDriftQueryHandler() queries.FindAvailabilityDriftQueryHandler {
	return queries.NewFindAvailabilityDriftQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateQuotePriceQueryHandler() queries.QuotePriceQueryHandler {
	return queries.NewQuotePriceQueryHandler(c.pricing)
}

// CreateSuggestDriverQueryHandler reads through repositories of a unit of work
// that is never begun, so every read goes straight to the pool and nothing is tracked.
func (c *CompositionRoot) CreateSuggestDriverQueryHandler() queries.SuggestDriverQueryHandler {
	reads := c.uowFactory.Create()
	return queries.NewSuggestDriverQueryHandler(reads.ParcelRepository(), reads.DriverRepository(), c.coordinator)
}

// ShutdownTimeout bounds graceful shutdown of the HTTP server and the dispatcher.
const ShutdownTimeout = 15 * time.Second

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
