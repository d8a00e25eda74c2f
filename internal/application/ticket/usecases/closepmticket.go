package usecases

import (
	"context"
	"time"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// CloseRecurringTicketCommand closes a PM or calibration ticket at Now
// (the current time when zero).
type CloseRecurringTicketCommand struct {
	TicketID string
	ClosedBy string
	Now      time.Time
}

type ClosePMTicketUseCase struct {
	ticketRepo ticket.PreventiveRepository
	locker     TicketLocker
	publisher  events.EventPublisher
	metrics    MetricsRecorder
	logger     logger.Interface
}

func NewClosePMTicketUseCase(
	ticketRepo ticket.PreventiveRepository,
	locker TicketLocker,
	publisher events.EventPublisher,
	metrics MetricsRecorder,
	logger logger.Interface,
) *ClosePMTicketUseCase {
	return &ClosePMTicketUseCase{
		ticketRepo: ticketRepo,
		locker:     locker,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *ClosePMTicketUseCase) Execute(ctx context.Context, cmd CloseRecurringTicketCommand) (*dto.CloseResultDTO, error) {
	uc.logger.Infow("executing close pm ticket use case", "ticket_id", cmd.TicketID)

	if cmd.TicketID == "" {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	kind := vo.KindPreventive.String()
	unlock, err := uc.locker.Lock(ctx, lockKey(kind, cmd.TicketID))
	if err != nil {
		uc.logger.Warnw("failed to acquire ticket lock", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewConflictError("ticket is being closed by another request")
	}
	defer unlock()

	current, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, uc.reject(kind, cmd.TicketID, err)
	}

	successorID, err := id.NewPreventiveID()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate ticket ID")
	}

	closedAt := nowOr(cmd.Now)
	closed, successor, err := current.CloseAndReschedule(closedAt, successorID)
	if err != nil {
		return nil, uc.reject(kind, cmd.TicketID, err)
	}

	if err := uc.ticketRepo.CloseAndAppend(ctx, closed, successor); err != nil {
		return nil, uc.reject(kind, cmd.TicketID, err)
	}

	uc.metrics.TicketClosed(kind)
	uc.metrics.TicketsCreated(kind, 1)
	publish(uc.publisher, uc.logger, ticket.TicketRescheduledEvent{
		BaseEvent:         events.NewBaseEvent(closed.ID(), ticket.EventTicketRescheduled, closedAt),
		Kind:              kind,
		Title:             closed.Title(),
		ClosedDate:        closedAt,
		SuccessorID:       successor.ID(),
		NextScheduledDate: successor.ScheduledDate(),
	})

	uc.logger.Infow("pm ticket closed",
		"ticket_id", closed.ID(),
		"successor_id", successor.ID(),
		"next_scheduled_date", successor.ScheduledDate(),
		"closed_by", cmd.ClosedBy,
	)
	return &dto.CloseResultDTO{
		Closed:    dto.FromPreventive(closed),
		Successor: dto.FromPreventive(successor),
	}, nil
}

func (uc *ClosePMTicketUseCase) reject(kind, ticketID string, err error) error {
	appErr, reason := closeError(err)
	uc.metrics.CloseRejected(kind, reason)
	if reason == "error" {
		uc.logger.Errorw("failed to close pm ticket", "ticket_id", ticketID, "error", err)
	}
	return appErr
}
