package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// RefreshOpenTicketGaugesUseCase publishes the number of Open tickets per
// kind to the metrics recorder.
type RefreshOpenTicketGaugesUseCase struct {
	repos   TicketRepositories
	metrics MetricsRecorder
	logger  logger.Interface
}

func NewRefreshOpenTicketGaugesUseCase(repos TicketRepositories, metrics MetricsRecorder, logger logger.Interface) *RefreshOpenTicketGaugesUseCase {
	return &RefreshOpenTicketGaugesUseCase{repos: repos, metrics: metrics, logger: logger}
}

// Execute returns the total number of Open tickets.
func (uc *RefreshOpenTicketGaugesUseCase) Execute(ctx context.Context) (int, error) {
	open := vo.StatusOpen
	_, breakdowns, err := uc.repos.Breakdowns.List(ctx, ticket.Filter{Status: &open, Page: 1, PageSize: 1})
	if err != nil {
		return 0, err
	}
	preventives, err := uc.repos.Preventives.CountOpen(ctx)
	if err != nil {
		return 0, err
	}
	calibrations, err := uc.repos.Calibrations.CountOpen(ctx)
	if err != nil {
		return 0, err
	}

	uc.metrics.SetOpenTickets(vo.KindBreakdown.String(), breakdowns)
	uc.metrics.SetOpenTickets(vo.KindPreventive.String(), preventives)
	uc.metrics.SetOpenTickets(vo.KindCalibration.String(), calibrations)

	uc.logger.Debugw("open ticket gauges refreshed",
		"breakdown", breakdowns,
		"preventive", preventives,
		"calibration", calibrations,
	)
	return int(breakdowns + preventives + calibrations), nil
}
