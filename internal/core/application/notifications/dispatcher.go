// Package notifications delivers notifications produced by committed parcel
// status changes. Delivery runs on worker goroutines and never feeds back into
// the operation that caused it.
package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/metrics"
)

var ErrDispatcherStopped = errors.New("notification dispatcher is stopped")

const (
	defaultWorkers        = 4
	defaultBuffer         = 256
	defaultMaxAttempts    = 5
	defaultBaseBackoff    = 200 * time.Millisecond
	defaultMaxBackoff     = 10 * time.Second
	defaultDeliverTimeout = 5 * time.Second
)

// Config tunes the dispatcher. Zero fields take defaults.
type Config struct {
	Workers        int
	Buffer         int
	MaxAttempts    int
	BaseBackoff    time.Duration
	MaxBackoff     time.Duration
	DeliverTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.Buffer <= 0 {
		c.Buffer = defaultBuffer
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = defaultBaseBackoff
	}
	if c.MaxBackoff < c.BaseBackoff {
		c.MaxBackoff = max(defaultMaxBackoff, c.BaseBackoff)
	}
	if c.DeliverTimeout <= 0 {
		c.DeliverTimeout = defaultDeliverTimeout
	}
	return c
}

// Dispatcher queues notifications in a bounded buffer and delivers them to a
// sink with exponential-backoff retries. Delivery is at-least-once up to
// MaxAttempts; sinks deduplicate by notification id.
//
// Example:
//
//	d := NewDispatcher(sink, Config{Workers: 2}, logger, m)
//	d.Start()
//	defer d.Stop(ctx)
//	d.Dispatch(ctx, n)
type Dispatcher struct {
	sink    ports.NotificationSink
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	queue  chan notification.Notification
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	started bool
	stopped bool
}

func NewDispatcher(sink ports.NotificationSink, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		sink:    sink,
		cfg:     cfg,
		logger:  logger.With("component", "notification_dispatcher"),
		metrics: m,
		queue:   make(chan notification.Notification, cfg.Buffer),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers. Calling it again does nothing.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true

	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	d.logger.Info("Notification dispatcher started", "workers", d.cfg.Workers, "buffer", d.cfg.Buffer)
}

// Dispatch enqueues n without blocking. When the buffer is full, or the
// dispatcher has stopped, n is dropped and logged.
func (d *Dispatcher) Dispatch(ctx context.Context, n notification.Notification) {
	if err := n.Validate(); err != nil {
		d.logger.ErrorContext(ctx, "Refusing invalid notification", "error", err)
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(ctx, n, ErrDispatcherStopped)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.drop(ctx, n, errors.New("notification buffer is full"))
	}
}

// Stop refuses new notifications and waits for queued ones to be delivered.
// When ctx ends first, pending retries are abandoned and ctx.Err is returned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.InfoContext(ctx, "Notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n notification.Notification) {
	logger := d.logger.With(
		"notification_id", n.ID().String(),
		"recipient_role", n.Recipient().Role.String(),
		"recipient_id", n.Recipient().ID,
	)

	var err error
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(d.ctx, d.cfg.DeliverTimeout)
		err = d.sink.Deliver(ctx, n)
		cancel()
		if err == nil {
			d.metrics.IncNotification(metrics.OutcomeDelivered)
			return
		}
		if attempt == d.cfg.MaxAttempts {
			break
		}

		d.metrics.IncNotification(metrics.OutcomeRetried)
		logger.Warn("Notification delivery failed, retrying", "attempt", attempt, "error", err)

		timer := time.NewTimer(d.backoff(attempt))
		select {
		case <-timer.C:
		case <-d.ctx.Done():
			timer.Stop()
			err = errors.Join(err, d.ctx.Err())
			d.metrics.IncNotification(metrics.OutcomeFailed)
			logger.Error("Notification delivery abandoned", "attempt", attempt, "error", err)
			return
		}
	}

	d.metrics.IncNotification(metrics.OutcomeFailed)
	logger.Error("Notification delivery failed", "attempts", d.cfg.MaxAttempts, "error", err)
}

// backoff returns BaseBackoff doubled per failed attempt, capped at MaxBackoff.
func (d *Dispatcher) backoff(attempt int) time.Duration {
	wait := d.cfg.BaseBackoff
	for i := 1; i < attempt; i++ {
		wait *= 2
		if wait >= d.cfg.MaxBackoff {
			return d.cfg.MaxBackoff
		}
	}
	return wait
}

func (d *Dispatcher) drop(ctx context.Context, n notification.Notification, reason error) {
	d.metrics.IncNotification(metrics.OutcomeDropped)
	d.logger.ErrorContext(ctx, "Notification dropped",
		"notification_id", n.ID().String(),
		"recipient_role", n.Recipient().Role.String(),
		"recipient_id", n.Recipient().ID,
		"error", reason,
	)
}
