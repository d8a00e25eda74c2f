package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/machine/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type GetMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewGetMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *GetMachineUseCase {
	return &GetMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *GetMachineUseCase) ExecuteByID(ctx context.Context, machineID string) (*dto.MachineResponse, error) {
	m, err := uc.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return nil, lookupError(uc.logger, machineID, err)
	}
	return dto.FromMachine(m), nil
}

func (uc *GetMachineUseCase) ExecuteList(ctx context.Context, request dto.ListMachinesRequest) (*dto.ListMachinesResponse, error) {
	p := utils.ValidatePagination(request.Page, request.PageSize)

	machines, total, err := uc.machineRepo.List(ctx, machine.ListFilter{
		Area:     request.Area,
		Status:   request.Status,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list machines", "area", request.Area, "error", err)
		return nil, errors.NewInternalError("failed to list machines")
	}

	items := dto.FromMachines(machines)
	if items == nil {
		items = []*dto.MachineResponse{}
	}
	return &dto.ListMachinesResponse{
		Machines: items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

// ExecuteAreas lists the distinct areas that have at least one machine.
func (uc *GetMachineUseCase) ExecuteAreas(ctx context.Context) ([]string, error) {
	areas, err := uc.machineRepo.ListAreas(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list machine areas", "error", err)
		return nil, errors.NewInternalError("failed to list areas")
	}
	if areas == nil {
		areas = []string{}
	}
	return areas, nil
}
