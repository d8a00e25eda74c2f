package ticket

import (
	"context"
	"time"

	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
)

// Filter narrows ticket listings. Zero values match everything.
type Filter struct {
	Status        *vo.TicketStatus
	Area          string
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
	Page          int
	PageSize      int
}

type BreakdownRepository interface {
	Create(ctx context.Context, t *Breakdown) error
	GetByID(ctx context.Context, id string) (*Breakdown, error)
	List(ctx context.Context, filter Filter) ([]*Breakdown, int64, error)
	// Close stores closed over its Open predecessor. It fails with
	// ErrTicketClosed when the stored ticket is no longer Open.
	Close(ctx context.Context, closed *Breakdown) error
}

type PreventiveRepository interface {
	CreateBatch(ctx context.Context, tickets []*Preventive) error
	GetByID(ctx context.Context, id string) (*Preventive, error)
	List(ctx context.Context, filter Filter) ([]*Preventive, int64, error)
	// CloseAndAppend atomically replaces the Open ticket with closed and
	// appends successor. It fails with ErrTicketClosed, and changes
	// nothing, when the stored ticket is no longer Open.
	CloseAndAppend(ctx context.Context, closed, successor *Preventive) error
	CountOpen(ctx context.Context) (int64, error)
}

type CalibrationRepository interface {
	CreateBatch(ctx context.Context, tickets []*Calibration) error
	GetByID(ctx context.Context, id string) (*Calibration, error)
	List(ctx context.Context, filter Filter) ([]*Calibration, int64, error)
	CloseAndAppend(ctx context.Context, closed, successor *Calibration) error
	CountOpen(ctx context.Context) (int64, error)
}
