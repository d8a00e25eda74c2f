package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type CloseCalibrationTicketUseCase struct {
	ticketRepo ticket.CalibrationRepository
	locker     TicketLocker
	publisher  events.EventPublisher
	metrics    MetricsRecorder
	logger     logger.Interface
}

func NewCloseCalibrationTicketUseCase(
	ticketRepo ticket.CalibrationRepository,
	locker TicketLocker,
	publisher events.EventPublisher,
	metrics MetricsRecorder,
	logger logger.Interface,
) *CloseCalibrationTicketUseCase {
	return &CloseCalibrationTicketUseCase{
		ticketRepo: ticketRepo,
		locker:     locker,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

func (uc *CloseCalibrationTicketUseCase) Execute(ctx context.Context, cmd CloseRecurringTicketCommand) (*dto.CloseResultDTO, error) {
	uc.logger.Infow("executing close calibration ticket use case", "ticket_id", cmd.TicketID)

	if cmd.TicketID == "" {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	kind := vo.KindCalibration.String()
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

	successorID, err := id.NewCalibrationID()
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

	uc.logger.Infow("calibration ticket closed",
		"ticket_id", closed.ID(),
		"successor_id", successor.ID(),
		"next_scheduled_date", successor.ScheduledDate(),
		"closed_by", cmd.ClosedBy,
	)
	return &dto.CloseResultDTO{
		Closed:    dto.FromCalibration(closed),
		Successor: dto.FromCalibration(successor),
	}, nil
}

func (uc *CloseCalibrationTicketUseCase) reject(kind, ticketID string, err error) error {
	appErr, reason := closeError(err)
	uc.metrics.CloseRejected(kind, reason)
	if reason == "error" {
		uc.logger.Errorw("failed to close calibration ticket", "ticket_id", ticketID, "error", err)
	}
	return appErr
}
