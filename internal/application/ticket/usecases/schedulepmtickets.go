package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/domain/shared/events"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// SchedulePMTicketsCommand opens one PM ticket per machine, scheduled on
// StartDate. SelectAll picks every machine in Location.
type SchedulePMTicketsCommand struct {
	Location   string
	MachineIDs []string
	SelectAll  bool
	StartDate  *time.Time
	EndDate    *time.Time
	Frequency  string
}

type SchedulePMTicketsUseCase struct {
	ticketRepo  ticket.PreventiveRepository
	machineRepo machine.Repository
	publisher   events.EventPublisher
	metrics     MetricsRecorder
	logger      logger.Interface
}

func NewSchedulePMTicketsUseCase(
	ticketRepo ticket.PreventiveRepository,
	machineRepo machine.Repository,
	publisher events.EventPublisher,
	metrics MetricsRecorder,
	logger logger.Interface,
) *SchedulePMTicketsUseCase {
	return &SchedulePMTicketsUseCase{
		ticketRepo:  ticketRepo,
		machineRepo: machineRepo,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

func (uc *SchedulePMTicketsUseCase) Execute(ctx context.Context, cmd SchedulePMTicketsCommand) ([]*dto.TicketDTO, error) {
	uc.logger.Infow("executing schedule pm tickets use case",
		"location", cmd.Location,
		"machines", len(cmd.MachineIDs),
		"select_all", cmd.SelectAll,
	)

	frequency, err := uc.validate(cmd)
	if err != nil {
		return nil, err
	}
	location := strings.TrimSpace(cmd.Location)

	machines, err := uc.resolveMachines(ctx, location, cmd)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	tickets := make([]*ticket.Preventive, 0, len(machines))
	for _, m := range machines {
		ticketID, err := id.NewPreventiveID()
		if err != nil {
			return nil, errors.NewInternalError("failed to generate ticket ID")
		}
		p, err := ticket.NewPreventive(ticketID, m.ID(), m.AssetNumber(), m.Area(), *cmd.StartDate, frequency, now)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		tickets = append(tickets, p)
	}

	if err := uc.ticketRepo.CreateBatch(ctx, tickets); err != nil {
		uc.logger.Errorw("failed to create pm tickets", "error", err)
		return nil, errors.NewInternalError("failed to schedule pm tickets")
	}

	ids := make([]string, 0, len(tickets))
	for _, p := range tickets {
		ids = append(ids, p.ID())
	}
	uc.metrics.TicketsCreated(vo.KindPreventive.String(), len(tickets))
	publish(uc.publisher, uc.logger, ticket.TicketsScheduledEvent{
		BaseEvent:     events.NewBaseEvent(ids[0], ticket.EventTicketsScheduled, now),
		Kind:          vo.KindPreventive.String(),
		Area:          location,
		TicketIDs:     ids,
		ScheduledDate: *cmd.StartDate,
		Frequency:     frequency.String(),
	})

	uc.logger.Infow("pm tickets scheduled", "location", location, "count", len(tickets))
	return dto.FromPreventives(tickets), nil
}

func (uc *SchedulePMTicketsUseCase) validate(cmd SchedulePMTicketsCommand) (vo.Frequency, error) {
	if strings.TrimSpace(cmd.Location) == "" {
		return "", errors.NewValidationError("location is required")
	}
	if !cmd.SelectAll && len(cmd.MachineIDs) == 0 {
		return "", errors.NewValidationError("select at least one machine")
	}
	if cmd.StartDate == nil || cmd.StartDate.IsZero() {
		return "", errors.NewValidationError("start date is required")
	}
	if cmd.EndDate == nil || cmd.EndDate.IsZero() {
		return "", errors.NewValidationError("end date is required")
	}
	if cmd.EndDate.Before(*cmd.StartDate) {
		return "", errors.NewValidationError("end date must not be before start date")
	}
	frequency, err := vo.ParseFrequencyFor(vo.KindPreventive, cmd.Frequency)
	if err != nil {
		return "", errors.NewValidationError("invalid frequency", err.Error())
	}
	return frequency, nil
}

// resolveMachines loads the selected machines and checks they all exist
// and belong to location.
func (uc *SchedulePMTicketsUseCase) resolveMachines(ctx context.Context, location string, cmd SchedulePMTicketsCommand) ([]*machine.Machine, error) {
	if cmd.SelectAll {
		machines, _, err := uc.machineRepo.List(ctx, machine.ListFilter{Area: location})
		if err != nil {
			uc.logger.Errorw("failed to list machines", "location", location, "error", err)
			return nil, errors.NewInternalError("failed to list machines")
		}
		if len(machines) == 0 {
			return nil, errors.NewValidationError("no machines in location", location)
		}
		return machines, nil
	}

	ids := dedupe(cmd.MachineIDs)
	if len(ids) == 0 {
		return nil, errors.NewValidationError("select at least one machine")
	}
	machines, err := uc.machineRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to get machines", "error", err)
		return nil, errors.NewInternalError("failed to get machines")
	}
	if len(machines) != len(ids) {
		return nil, errors.NewValidationError("unknown machine selected",
			strings.Join(missing(ids, machines, (*machine.Machine).ID), ", "))
	}
	for _, m := range machines {
		if !m.InArea(location) {
			return nil, errors.NewValidationError(
				fmt.Sprintf("machine %s is not in %s", m.AssetNumber(), location))
		}
	}
	return machines, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, s := range ids {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func missing[T any](ids []string, found []T, key func(T) string) []string {
	have := make(map[string]struct{}, len(found))
	for _, f := range found {
		have[key(f)] = struct{}{}
	}
	var out []string
	for _, s := range ids {
		if _, ok := have[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
