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
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/constants"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// CreateBreakdownTicketCommand reports a breakdown. ReportedBy is empty for
// anonymous reports.
type CreateBreakdownTicketCommand struct {
	WorkType        string
	MachineID       string
	Shift           string
	DateOfWork      *time.Time
	DowntimeFrom    *time.Time
	DowntimeTo      *time.Time
	ProblemObserved string
	ReportedBy      string
}

type CreateBreakdownTicketUseCase struct {
	ticketRepo  ticket.BreakdownRepository
	machineRepo machine.Repository
	publisher   events.EventPublisher
	metrics     MetricsRecorder
	logger      logger.Interface
}

func NewCreateBreakdownTicketUseCase(
	ticketRepo ticket.BreakdownRepository,
	machineRepo machine.Repository,
	publisher events.EventPublisher,
	metrics MetricsRecorder,
	logger logger.Interface,
) *CreateBreakdownTicketUseCase {
	return &CreateBreakdownTicketUseCase{
		ticketRepo:  ticketRepo,
		machineRepo: machineRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

func (uc *CreateBreakdownTicketUseCase) Execute(ctx context.Context, cmd CreateBreakdownTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create breakdown ticket use case", "machine_id", cmd.MachineID)

	shift, err := vo.NewShift(cmd.Shift)
	if err != nil {
		return nil, errors.NewValidationError("shift is required", err.Error())
	}
	var workType vo.WorkType
	if cmd.WorkType != "" {
		if workType, err = vo.NewWorkType(cmd.WorkType); err != nil {
			return nil, errors.NewValidationError("invalid work type", err.Error())
		}
	}
	if cmd.DowntimeFrom == nil || cmd.DowntimeFrom.IsZero() {
		return nil, errors.NewValidationError("downtime from is required")
	}
	if cmd.MachineID == "" {
		return nil, errors.NewValidationError("machine is required")
	}

	m, err := uc.machineRepo.GetByID(ctx, cmd.MachineID)
	if err != nil {
		if stderrors.Is(err, machine.ErrMachineNotFound) {
			return nil, errors.NewValidationError("machine does not exist", cmd.MachineID)
		}
		uc.logger.Errorw("failed to get machine", "machine_id", cmd.MachineID, "error", err)
		return nil, errors.NewInternalError("failed to get machine")
	}

	ticketID, err := id.NewBreakdownID()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate ticket ID")
	}

	attendedBy := cmd.ReportedBy
	if attendedBy == "" {
		attendedBy = constants.AnonymousReporter
	}
	report := ticket.BreakdownReport{
		ID:              ticketID,
		WorkType:        workType,
		MachineID:       m.ID(),
		MachineName:     m.MachineName(),
		Location:        m.Area(),
		Shift:           shift,
		DowntimeFrom:    *cmd.DowntimeFrom,
		DowntimeTo:      cmd.DowntimeTo,
		ProblemObserved: cmd.ProblemObserved,
		AttendedBy:      attendedBy,
	}
	if cmd.DateOfWork != nil {
		report.DateOfWork = *cmd.DateOfWork
	}

	b, err := ticket.NewBreakdown(report, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Create(ctx, b); err != nil {
		uc.logger.Errorw("failed to create breakdown ticket", "error", err)
		return nil, errors.NewInternalError("failed to create breakdown ticket")
	}

	uc.metrics.TicketsCreated(vo.KindBreakdown.String(), 1)
	publish(uc.publisher, uc.logger, ticket.NewBreakdownReportedEvent(b))

	uc.logger.Infow("breakdown ticket created", "ticket_id", b.ID(), "attended_by", attendedBy)
	return dto.FromBreakdown(b), nil
}
