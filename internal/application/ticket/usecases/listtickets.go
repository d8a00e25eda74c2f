package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type ListTicketsQuery struct {
	Kind     string
	Status   string
	Area     string
	Page     int
	PageSize int
}

// TicketRepositories groups the per-kind stores for read-side use cases.
type TicketRepositories struct {
	Breakdowns   ticket.BreakdownRepository
	Preventives  ticket.PreventiveRepository
	Calibrations ticket.CalibrationRepository
}

type ListTicketsUseCase struct {
	repos  TicketRepositories
	logger logger.Interface
}

func NewListTicketsUseCase(repos TicketRepositories, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{repos: repos, logger: logger}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListDTO, error) {
	kind, err := vo.ParseKind(query.Kind)
	if err != nil {
		return nil, errors.NewValidationError("invalid ticket kind", err.Error())
	}

	p := utils.ValidatePagination(query.Page, query.PageSize)
	filter := ticket.Filter{Area: query.Area, Page: p.Page, PageSize: p.PageSize}
	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status", err.Error())
		}
		filter.Status = &status
	}

	var (
		items []*dto.TicketDTO
		total int64
	)
	switch kind {
	case vo.KindBreakdown:
		var bs []*ticket.Breakdown
		bs, total, err = uc.repos.Breakdowns.List(ctx, filter)
		items = dto.FromBreakdowns(bs)
	case vo.KindPreventive:
		var ps []*ticket.Preventive
		ps, total, err = uc.repos.Preventives.List(ctx, filter)
		items = dto.FromPreventives(ps)
	case vo.KindCalibration:
		var cs []*ticket.Calibration
		cs, total, err = uc.repos.Calibrations.List(ctx, filter)
		items = dto.FromCalibrations(cs)
	}
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "kind", kind, "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}
	if items == nil {
		items = []*dto.TicketDTO{}
	}

	return &dto.TicketListDTO{
		Items:    items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
