package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/instrument/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type GetInstrumentUseCase struct {
	instrumentRepo instrument.Repository
	logger         logger.Interface
}

func NewGetInstrumentUseCase(instrumentRepo instrument.Repository, logger logger.Interface) *GetInstrumentUseCase {
	return &GetInstrumentUseCase{
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

func (uc *GetInstrumentUseCase) ExecuteByID(ctx context.Context, instrumentID string) (*dto.InstrumentResponse, error) {
	i, err := uc.instrumentRepo.GetByID(ctx, instrumentID)
	if err != nil {
		return nil, lookupError(uc.logger, instrumentID, err)
	}
	return dto.FromInstrument(i), nil
}

func (uc *GetInstrumentUseCase) ExecuteList(ctx context.Context, request dto.ListInstrumentsRequest) (*dto.ListInstrumentsResponse, error) {
	p := utils.ValidatePagination(request.Page, request.PageSize)

	instruments, total, err := uc.instrumentRepo.List(ctx, instrument.ListFilter{
		Area:     request.Area,
		Status:   request.Status,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list instruments", "area", request.Area, "error", err)
		return nil, errors.NewInternalError("failed to list instruments")
	}

	items := dto.FromInstruments(instruments)
	if items == nil {
		items = []*dto.InstrumentResponse{}
	}
	return &dto.ListInstrumentsResponse{
		Instruments: items,
		Total:       total,
		Page:        p.Page,
		PageSize:    p.PageSize,
	}, nil
}

// ExecuteAreas lists the distinct areas that have at least one instrument.
func (uc *GetInstrumentUseCase) ExecuteAreas(ctx context.Context) ([]string, error) {
	areas, err := uc.instrumentRepo.ListAreas(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list instrument areas", "error", err)
		return nil, errors.NewInternalError("failed to list areas")
	}
	if areas == nil {
		areas = []string{}
	}
	return areas, nil
}
