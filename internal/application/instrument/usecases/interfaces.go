package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/instrument/dto"
)

type CreateInstrumentExecutor interface {
	Execute(ctx context.Context, request dto.CreateInstrumentRequest) (*dto.InstrumentResponse, error)
}

type UpdateInstrumentExecutor interface {
	Execute(ctx context.Context, instrumentID string, request dto.UpdateInstrumentRequest) (*dto.InstrumentResponse, error)
}

type DeleteInstrumentExecutor interface {
	Execute(ctx context.Context, instrumentID string) error
}

type GetInstrumentExecutor interface {
	ExecuteByID(ctx context.Context, instrumentID string) (*dto.InstrumentResponse, error)
	ExecuteList(ctx context.Context, request dto.ListInstrumentsRequest) (*dto.ListInstrumentsResponse, error)
	ExecuteAreas(ctx context.Context) ([]string, error)
}
