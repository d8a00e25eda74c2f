package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/machine/dto"
)

type CreateMachineExecutor interface {
	Execute(ctx context.Context, request dto.CreateMachineRequest) (*dto.MachineResponse, error)
}

type UpdateMachineExecutor interface {
	Execute(ctx context.Context, machineID string, request dto.UpdateMachineRequest) (*dto.MachineResponse, error)
}

type DeleteMachineExecutor interface {
	Execute(ctx context.Context, machineID string) error
}

type GetMachineExecutor interface {
	ExecuteByID(ctx context.Context, machineID string) (*dto.MachineResponse, error)
	ExecuteList(ctx context.Context, request dto.ListMachinesRequest) (*dto.ListMachinesResponse, error)
	ExecuteAreas(ctx context.Context) ([]string, error)
}
