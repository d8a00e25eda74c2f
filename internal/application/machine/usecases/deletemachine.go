package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// DeleteMachineUseCase removes a machine. Tickets that reference it keep
// their denormalized machine fields.
type DeleteMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewDeleteMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *DeleteMachineUseCase {
	return &DeleteMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *DeleteMachineUseCase) Execute(ctx context.Context, machineID string) error {
	if err := uc.machineRepo.Delete(ctx, machineID); err != nil {
		return lookupError(uc.logger, machineID, err)
	}
	uc.logger.Infow("machine deleted", "machine_id", machineID)
	return nil
}
