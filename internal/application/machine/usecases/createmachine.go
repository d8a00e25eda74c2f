package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/machine/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type CreateMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewCreateMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *CreateMachineUseCase {
	return &CreateMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *CreateMachineUseCase) Execute(ctx context.Context, request dto.CreateMachineRequest) (*dto.MachineResponse, error) {
	uc.logger.Infow("executing create machine use case", "asset_number", request.AssetNumber)

	status, err := shared.NewActiveStatus(request.Status)
	if err != nil {
		return nil, errors.NewValidationError("invalid status", err.Error())
	}

	machineID, err := id.NewMachineID()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate machine ID")
	}

	m, err := machine.NewMachine(machineID, machine.Details{
		AssetNumber: request.AssetNumber,
		MachineName: request.MachineName,
		Area:        request.Area,
		Status:      status,
		Description: request.Description,
	}, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.machineRepo.Create(ctx, m); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("machine already exists", m.ID())
		}
		uc.logger.Errorw("failed to create machine", "error", err)
		return nil, errors.NewInternalError("failed to create machine")
	}

	uc.logger.Infow("machine created successfully", "machine_id", m.ID(), "asset_number", m.AssetNumber())
	return dto.FromMachine(m), nil
}
