package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// ScheduleCalibrationTicketsCommand opens one calibration ticket per
// instrument, scheduled on StartDate.
type ScheduleCalibrationTicketsCommand struct {
	Area          string
	InstrumentIDs []string
	SelectAll     bool
	StartDate     *time.Time
	Frequency     string
}

type ScheduleCalibrationTicketsUseCase struct {
	ticketRepo     ticket.CalibrationRepository
	instrumentRepo instrument.Repository
	publisher      events.EventPublisher
	metrics        MetricsRecorder
	logger         logger.Interface
}

func NewScheduleCalibrationTicketsUseCase(
	ticketRepo ticket.CalibrationRepository,
	instrumentRepo instrument.Repository,
	publisher events.EventPublisher,
	metrics MetricsRecorder,
	logger logger.Interface,
) *ScheduleCalibrationTicketsUseCase {
	return &ScheduleCalibrationTicketsUseCase{
		ticketRepo:     ticketRepo,
		instrumentRepo: instrumentRepo,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
	}
}

func (uc *ScheduleCalibrationTicketsUseCase) Execute(ctx context.Context, cmd ScheduleCalibrationTicketsCommand) ([]*dto.TicketDTO, error) {
	uc.logger.Infow("executing schedule calibration tickets use case",
		"area", cmd.Area,
		"instruments", len(cmd.InstrumentIDs),
		"select_all", cmd.SelectAll,
	)

	area := strings.TrimSpace(cmd.Area)
	if area == "" {
		return nil, errors.NewValidationError("area is required")
	}
	if !cmd.SelectAll && len(cmd.InstrumentIDs) == 0 {
		return nil, errors.NewValidationError("select at least one instrument")
	}
	if cmd.StartDate == nil || cmd.StartDate.IsZero() {
		return nil, errors.NewValidationError("start date is required")
	}
	frequency, err := vo.ParseFrequencyFor(vo.KindCalibration, cmd.Frequency)
	if err != nil {
		return nil, errors.NewValidationError("invalid frequency", err.Error())
	}

	instruments, err := uc.resolveInstruments(ctx, area, cmd)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	tickets := make([]*ticket.Calibration, 0, len(instruments))
	for _, inst := range instruments {
		ticketID, err := id.NewCalibrationID()
		if err != nil {
			return nil, errors.NewInternalError("failed to generate ticket ID")
		}
		c, err := ticket.NewCalibration(ticketID, inst.ID(), inst.InstrumentNumber(), inst.InstrumentName(),
			inst.Area(), *cmd.StartDate, frequency, now)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		tickets = append(tickets, c)
	}

	if err := uc.ticketRepo.CreateBatch(ctx, tickets); err != nil {
		uc.logger.Errorw("failed to create calibration tickets", "error", err)
		return nil, errors.NewInternalError("failed to schedule calibration tickets")
	}

	ids := make([]string, 0, len(tickets))
	for _, c := range tickets {
		ids = append(ids, c.ID())
	}
	uc.metrics.TicketsCreated(vo.KindCalibration.String(), len(tickets))
	publish(uc.publisher, uc.logger, ticket.TicketsScheduledEvent{
		BaseEvent:     events.NewBaseEvent(ids[0], ticket.EventTicketsScheduled, now),
		Kind:          vo.KindCalibration.String(),
		Area:          area,
		TicketIDs:     ids,
		ScheduledDate: *cmd.StartDate,
		Frequency:     frequency.String(),
	})

	uc.logger.Infow("calibration tickets scheduled", "area", area, "count", len(tickets))
	return dto.FromCalibrations(tickets), nil
}

func (uc *ScheduleCalibrationTicketsUseCase) resolveInstruments(ctx context.Context, area string, cmd ScheduleCalibrationTicketsCommand) ([]*instrument.Instrument, error) {
	if cmd.SelectAll {
		instruments, _, err := uc.instrumentRepo.List(ctx, instrument.ListFilter{Area: area})
		if err != nil {
			uc.logger.Errorw("failed to list instruments", "area", area, "error", err)
			return nil, errors.NewInternalError("failed to list instruments")
		}
		if len(instruments) == 0 {
			return nil, errors.NewValidationError("no instruments in area", area)
		}
		return instruments, nil
	}

	ids := dedupe(cmd.InstrumentIDs)
	if len(ids) == 0 {
		return nil, errors.NewValidationError("select at least one instrument")
	}
	instruments, err := uc.instrumentRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to get instruments", "error", err)
		return nil, errors.NewInternalError("failed to get instruments")
	}
	if len(instruments) != len(ids) {
		return nil, errors.NewValidationError("unknown instrument selected",
			strings.Join(missing(ids, instruments, (*instrument.Instrument).ID), ", "))
	}
	for _, inst := range instruments {
		if !inst.InArea(area) {
			return nil, errors.NewValidationError(
				fmt.Sprintf("instrument %s is not in %s", inst.InstrumentNumber(), area))
		}
	}
	return instruments, nil
}
