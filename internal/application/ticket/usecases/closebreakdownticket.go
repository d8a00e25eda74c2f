package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// CloseBreakdownTicketCommand records the outcome of a breakdown. The
// machine and downtime fields may correct what was reported.
type CloseBreakdownTicketCommand struct {
	TicketID         string
	WorkType         string
	MachineID        string
	Shift            string
	DateOfWork       *time.Time
	DowntimeFrom     *time.Time
	DowntimeTo       *time.Time
	ProblemObserved  string
	CorrectiveAction string
	MaterialRequired string
	MaterialReplaced string
	Remark           string
	ClosedBy         string
	Now              time.Time
}

type CloseBreakdownTicketUseCase struct {
	ticketRepo  ticket.BreakdownRepository
	machineRepo machine.Repository
	locker      TicketLocker
	publisher   events.EventPublisher
	metrics     MetricsRecorder
	logger      logger.Interface
}

func NewCloseBreakdownTicketUseCase(
	ticketRepo ticket.BreakdownRepository,
	machineRepo machine.Repository,
	locker TicketLocker,
	publisher events.EventPublisher,
	metrics MetricsRecorder,
	logger logger.Interface,
) *CloseBreakdownTicketUseCase {
	return &CloseBreakdownTicketUseCase{
		ticketRepo:  ticketRepo,
		machineRepo: machineRepo,
		locker:      locker,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

func (uc *CloseBreakdownTicketUseCase) Execute(ctx context.Context, cmd CloseBreakdownTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing close breakdown ticket use case", "ticket_id", cmd.TicketID)

	if cmd.TicketID == "" {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	closure, err := uc.buildClosure(ctx, cmd)
	if err != nil {
		return nil, err
	}

	kind := vo.KindBreakdown.String()
	unlock, err := uc.locker.Lock(ctx, lockKey(kind, cmd.TicketID))
	if err != nil {
		uc.logger.Warnw("failed to acquire ticket lock", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewConflictError("ticket is being closed by another request")
	}
	defer unlock()

	current, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		appErr, reason := closeError(err)
		uc.metrics.CloseRejected(kind, reason)
		return nil, appErr
	}

	closedAt := nowOr(cmd.Now)
	closed, err := current.Close(closure, closedAt)
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketClosed) {
			uc.metrics.CloseRejected(kind, "already_closed")
			return nil, errors.NewConflictError("ticket is already closed")
		}
		uc.metrics.CloseRejected(kind, "validation")
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Close(ctx, closed); err != nil {
		appErr, reason := closeError(err)
		uc.metrics.CloseRejected(kind, reason)
		if reason == "error" {
			uc.logger.Errorw("failed to close breakdown ticket", "ticket_id", cmd.TicketID, "error", err)
		}
		return nil, appErr
	}

	uc.metrics.TicketClosed(kind)
	publish(uc.publisher, uc.logger, ticket.NewBreakdownClosedEvent(closed, closedAt))

	uc.logger.Infow("breakdown ticket closed", "ticket_id", closed.ID(), "closed_by", cmd.ClosedBy)
	return dto.FromBreakdown(closed), nil
}

// buildClosure checks the command and resolves the machine reference.
func (uc *CloseBreakdownTicketUseCase) buildClosure(ctx context.Context, cmd CloseBreakdownTicketCommand) (ticket.BreakdownClosure, error) {
	var closure ticket.BreakdownClosure

	shift, err := vo.NewShift(cmd.Shift)
	if err != nil {
		return closure, errors.NewValidationError("shift is required", err.Error())
	}
	var workType vo.WorkType
	if cmd.WorkType != "" {
		if workType, err = vo.NewWorkType(cmd.WorkType); err != nil {
			return closure, errors.NewValidationError("invalid work type", err.Error())
		}
	}
	if cmd.DowntimeFrom == nil {
		return closure, errors.NewValidationError("downtime from is required")
	}
	if cmd.DowntimeTo == nil {
		return closure, errors.NewValidationError("downtime to is required")
	}
	if cmd.MachineID == "" {
		return closure, errors.NewValidationError("machine is required")
	}

	m, err := uc.machineRepo.GetByID(ctx, cmd.MachineID)
	if err != nil {
		if stderrors.Is(err, machine.ErrMachineNotFound) {
			return closure, errors.NewValidationError("machine does not exist", cmd.MachineID)
		}
		uc.logger.Errorw("failed to get machine", "machine_id", cmd.MachineID, "error", err)
		return closure, errors.NewInternalError("failed to get machine")
	}

	closure = ticket.BreakdownClosure{
		WorkType:        workType,
		MachineID:       m.ID(),
		MachineName:     m.MachineName(),
		Location:        m.Area(),
		Shift:           shift,
		DowntimeFrom:    *cmd.DowntimeFrom,
		DowntimeTo:      cmd.DowntimeTo,
		ProblemObserved: cmd.ProblemObserved,
		AttendedBy:      cmd.ClosedBy,
		Completion: ticket.Completion{
			CorrectiveAction: cmd.CorrectiveAction,
			MaterialRequired: cmd.MaterialRequired,
			MaterialReplaced: cmd.MaterialReplaced,
			Remark:           cmd.Remark,
		},
	}
	if cmd.DateOfWork != nil {
		closure.DateOfWork = *cmd.DateOfWork
	}
	return closure, nil
}
