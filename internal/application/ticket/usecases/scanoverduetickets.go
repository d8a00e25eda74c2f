package usecases

import (
	"context"
	"time"

	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// ScanOverdueTicketsUseCase finds Open recurring tickets scheduled before
// today, publishes one overdue event per ticket and updates the overdue
// gauges. It runs as a scheduler batch job.
type ScanOverdueTicketsUseCase struct {
	repos     TicketRepositories
	publisher events.EventPublisher
	metrics   MetricsRecorder
	logger    logger.Interface
	now       func() time.Time
}

func NewScanOverdueTicketsUseCase(
	repos TicketRepositories,
	publisher events.EventPublisher,
	metrics MetricsRecorder,
	logger logger.Interface,
) *ScanOverdueTicketsUseCase {
	return &ScanOverdueTicketsUseCase{
		repos:     repos,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

// Execute returns the number of overdue tickets found.
func (uc *ScanOverdueTicketsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.now()
	cutoff := biztime.StartOfDayUTC(now).Add(-time.Nanosecond)
	open := vo.StatusOpen
	filter := ticket.Filter{Status: &open, ScheduledTo: &cutoff}

	ps, _, err := uc.repos.Preventives.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	cs, _, err := uc.repos.Calibrations.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	overdue := make([]events.DomainEvent, 0, len(ps)+len(cs))
	for _, p := range ps {
		overdue = append(overdue, overdueEvent(p, vo.KindPreventive, p.ScheduledDate(), now))
	}
	for _, c := range cs {
		overdue = append(overdue, overdueEvent(c, vo.KindCalibration, c.ScheduledDate(), now))
	}

	uc.metrics.SetOverdueTickets(vo.KindPreventive.String(), len(ps))
	uc.metrics.SetOverdueTickets(vo.KindCalibration.String(), len(cs))
	publish(uc.publisher, uc.logger, overdue...)

	if len(overdue) > 0 {
		uc.logger.Infow("overdue tickets found", "preventive", len(ps), "calibration", len(cs))
	}
	return len(overdue), nil
}

func overdueEvent(t ticket.Ticket, kind vo.Kind, scheduled, now time.Time) ticket.TicketOverdueEvent {
	return ticket.TicketOverdueEvent{
		BaseEvent:     events.NewBaseEvent(t.ID(), ticket.EventTicketOverdue, now),
		Kind:          kind.String(),
		Title:         t.Title(),
		ScheduledDate: scheduled,
	}
}
