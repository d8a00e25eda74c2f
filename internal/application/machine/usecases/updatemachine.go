package usecases

import (
	"context"
	stderrors "errors"

	"github.com/upkeep-inc/upkeep/internal/application/machine/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type UpdateMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewUpdateMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *UpdateMachineUseCase {
	return &UpdateMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *UpdateMachineUseCase) Execute(ctx context.Context, machineID string, request dto.UpdateMachineRequest) (*dto.MachineResponse, error) {
	m, err := uc.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return nil, lookupError(uc.logger, machineID, err)
	}

	var status shared.ActiveStatus
	if request.Status != "" {
		if status, err = shared.NewActiveStatus(request.Status); err != nil {
			return nil, errors.NewValidationError("invalid status", err.Error())
		}
	}

	if err := m.Update(machine.Details{
		AssetNumber: request.AssetNumber,
		MachineName: request.MachineName,
		Area:        request.Area,
		Status:      status,
		Description: request.Description,
	}, biztime.NowUTC()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.machineRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update machine", "machine_id", machineID, "error", err)
		return nil, errors.NewInternalError("failed to update machine")
	}

	uc.logger.Infow("machine updated", "machine_id", machineID)
	return dto.FromMachine(m), nil
}

// lookupError maps a repository lookup failure to an AppError.
func lookupError(log logger.Interface, machineID string, err error) error {
	if stderrors.Is(err, machine.ErrMachineNotFound) {
		return errors.NewNotFoundError("machine not found", machineID)
	}
	log.Errorw("failed to get machine", "machine_id", machineID, "error", err)
	return errors.NewInternalError("failed to get machine")
}
