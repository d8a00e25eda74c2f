package usecases

import (
	"context"
	stderrors "errors"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type GetTicketQuery struct {
	Kind string
	ID   string
}

type GetTicketUseCase struct {
	repos  TicketRepositories
	logger logger.Interface
}

func NewGetTicketUseCase(repos TicketRepositories, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{repos: repos, logger: logger}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	kind, err := vo.ParseKind(query.Kind)
	if err != nil {
		return nil, errors.NewValidationError("invalid ticket kind", err.Error())
	}

	var result *dto.TicketDTO
	switch kind {
	case vo.KindBreakdown:
		var b *ticket.Breakdown
		if b, err = uc.repos.Breakdowns.GetByID(ctx, query.ID); err == nil {
			result = dto.FromBreakdown(b)
		}
	case vo.KindPreventive:
		var p *ticket.Preventive
		if p, err = uc.repos.Preventives.GetByID(ctx, query.ID); err == nil {
			result = dto.FromPreventive(p)
		}
	case vo.KindCalibration:
		var c *ticket.Calibration
		if c, err = uc.repos.Calibrations.GetByID(ctx, query.ID); err == nil {
			result = dto.FromCalibration(c)
		}
	}
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError("ticket not found", query.ID)
		}
		uc.logger.Errorw("failed to get ticket", "kind", kind, "ticket_id", query.ID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	return result, nil
}
