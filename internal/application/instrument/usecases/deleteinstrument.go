package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// DeleteInstrumentUseCase removes an instrument. Calibration tickets that
// reference it keep their denormalized instrument fields.
type DeleteInstrumentUseCase struct {
	instrumentRepo instrument.Repository
	logger         logger.Interface
}

func NewDeleteInstrumentUseCase(instrumentRepo instrument.Repository, logger logger.Interface) *DeleteInstrumentUseCase {
	return &DeleteInstrumentUseCase{
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

func (uc *DeleteInstrumentUseCase) Execute(ctx context.Context, instrumentID string) error {
	if err := uc.instrumentRepo.Delete(ctx, instrumentID); err != nil {
		return lookupError(uc.logger, instrumentID, err)
	}
	uc.logger.Infow("instrument deleted", "instrument_id", instrumentID)
	return nil
}
