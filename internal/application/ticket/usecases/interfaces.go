package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/ticket/dto"
)

type CreateBreakdownTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateBreakdownTicketCommand) (*dto.TicketDTO, error)
}

type CloseBreakdownTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseBreakdownTicketCommand) (*dto.TicketDTO, error)
}

type SchedulePMTicketsExecutor interface {
	Execute(ctx context.Context, cmd SchedulePMTicketsCommand) ([]*dto.TicketDTO, error)
}

type ScheduleCalibrationTicketsExecutor interface {
	Execute(ctx context.Context, cmd ScheduleCalibrationTicketsCommand) ([]*dto.TicketDTO, error)
}

// CloseRecurringTicketExecutor is implemented by the PM and calibration
// close use cases.
type CloseRecurringTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseRecurringTicketCommand) (*dto.CloseResultDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type GetCalendarMonthExecutor interface {
	Execute(ctx context.Context, query GetCalendarMonthQuery) (*dto.CalendarMonthDTO, error)
}

type GetDaySummaryExecutor interface {
	Execute(ctx context.Context, query GetDaySummaryQuery) (*dto.DaySummaryDTO, error)
}
