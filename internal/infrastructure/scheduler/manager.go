// Package scheduler runs the periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// BatchJob processes one batch and returns the number of items handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// BatchJobFunc adapts a function to BatchJob.
type BatchJobFunc func(ctx context.Context) (int, error)

func (f BatchJobFunc) Execute(ctx context.Context) (int, error) { return f(ctx) }

type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler in the business time zone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// jobSpec describes one periodic ticket job.
type jobSpec struct {
	name    string
	tags    []string
	timeout time.Duration
}

var (
	overdueScanSpec = jobSpec{name: "overdue-scan", tags: []string{"tickets", "overdue"}, timeout: 5 * time.Minute}
	gaugeSpec       = jobSpec{name: "open-ticket-gauge", tags: []string{"tickets", "metrics"}}
)

// RegisterOverdueScanJob flags recurring tickets whose scheduled date has
// passed while they are still Open.
func (m *SchedulerManager) RegisterOverdueScanJob(job BatchJob, interval time.Duration) error {
	return m.register(overdueScanSpec, job, interval)
}

// RegisterGaugeRefreshJob recomputes the open-ticket gauges. A run never
// outlives its interval.
func (m *SchedulerManager) RegisterGaugeRefreshJob(job BatchJob, interval time.Duration) error {
	spec := gaugeSpec
	spec.timeout = interval
	return m.register(spec, job, interval)
}

func (m *SchedulerManager) register(spec jobSpec, job BatchJob, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", spec.name, interval)
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), spec.timeout)
			defer cancel()
			m.run(ctx, spec.name, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(spec.name),
		gocron.WithTags(spec.tags...),
	)
	if err != nil {
		return fmt.Errorf("job %s: %w", spec.name, err)
	}

	m.logger.Infow("registered ticket job", "name", spec.name, "interval", interval.String())
	return nil
}

func (m *SchedulerManager) run(ctx context.Context, name string, job BatchJob) {
	started := time.Now()
	count, err := job.Execute(ctx)
	elapsed := time.Since(started)

	switch {
	case err != nil:
		m.logger.Errorw("ticket job failed", "name", name, "error", err, "duration", elapsed)
	case count > 0:
		m.logger.Infow("ticket job done", "name", name, "tickets", count, "duration", elapsed)
	default:
		m.logger.Debugw("ticket job idle", "name", name, "duration", elapsed)
	}
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}
