package usecases

import (
	"context"
	stderrors "errors"

	"github.com/upkeep-inc/upkeep/internal/application/instrument/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type UpdateInstrumentUseCase struct {
	instrumentRepo instrument.Repository
	logger         logger.Interface
}

func NewUpdateInstrumentUseCase(instrumentRepo instrument.Repository, logger logger.Interface) *UpdateInstrumentUseCase {
	return &UpdateInstrumentUseCase{
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

// Execute replaces the instrument's fields. An omitted status or frequency
// keeps the current value.
func (uc *UpdateInstrumentUseCase) Execute(ctx context.Context, instrumentID string, request dto.UpdateInstrumentRequest) (*dto.InstrumentResponse, error) {
	i, err := uc.instrumentRepo.GetByID(ctx, instrumentID)
	if err != nil {
		return nil, lookupError(uc.logger, instrumentID, err)
	}

	details, err := toDetails(request)
	if err != nil {
		return nil, err
	}
	if request.Frequency == "" {
		details.Frequency = i.Frequency()
	}

	if err := i.Update(details, biztime.NowUTC()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.instrumentRepo.Update(ctx, i); err != nil {
		uc.logger.Errorw("failed to update instrument", "instrument_id", instrumentID, "error", err)
		return nil, errors.NewInternalError("failed to update instrument")
	}

	uc.logger.Infow("instrument updated", "instrument_id", instrumentID)
	return dto.FromInstrument(i), nil
}

// toDetails parses the enumerated fields of a request. Empty values are
// left for the entity to default.
func toDetails(request dto.CreateInstrumentRequest) (instrument.Details, error) {
	d := instrument.Details{
		InstrumentNumber:    request.InstrumentNumber,
		InstrumentName:      request.InstrumentName,
		Area:                request.Area,
		Description:         request.Description,
		LastCalibrationDone: request.LastCalibrationDone,
	}
	if request.Status != "" {
		status, err := shared.NewActiveStatus(request.Status)
		if err != nil {
			return d, errors.NewValidationError("invalid status", err.Error())
		}
		d.Status = status
	}
	if request.Frequency != "" {
		f, err := vo.ParseFrequencyFor(vo.KindCalibration, request.Frequency)
		if err != nil {
			return d, errors.NewValidationError("invalid frequency", err.Error())
		}
		d.Frequency = f
	}
	return d, nil
}

func lookupError(log logger.Interface, instrumentID string, err error) error {
	if stderrors.Is(err, instrument.ErrInstrumentNotFound) {
		return errors.NewNotFoundError("instrument not found", instrumentID)
	}
	log.Errorw("failed to get instrument", "instrument_id", instrumentID, "error", err)
	return errors.NewInternalError("failed to get instrument")
}
