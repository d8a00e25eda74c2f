package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/instrument/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type CreateInstrumentUseCase struct {
	instrumentRepo instrument.Repository
	logger         logger.Interface
}

func NewCreateInstrumentUseCase(instrumentRepo instrument.Repository, logger logger.Interface) *CreateInstrumentUseCase {
	return &CreateInstrumentUseCase{
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

func (uc *CreateInstrumentUseCase) Execute(ctx context.Context, request dto.CreateInstrumentRequest) (*dto.InstrumentResponse, error) {
	uc.logger.Infow("executing create instrument use case", "instrument_number", request.InstrumentNumber)

	details, err := toDetails(request)
	if err != nil {
		return nil, err
	}

	instrumentID, err := id.NewInstrumentID()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate instrument ID")
	}

	i, err := instrument.NewInstrument(instrumentID, details, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.instrumentRepo.Create(ctx, i); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("instrument already exists", i.ID())
		}
		uc.logger.Errorw("failed to create instrument", "error", err)
		return nil, errors.NewInternalError("failed to create instrument")
	}

	uc.logger.Infow("instrument created successfully", "instrument_id", i.ID(), "instrument_number", i.InstrumentNumber())
	return dto.FromInstrument(i), nil
}
