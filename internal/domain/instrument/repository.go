package instrument

import "context"

type ListFilter struct {
	Area     string
	Status   string
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, i *Instrument) error
	Update(ctx context.Context, i *Instrument) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Instrument, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Instrument, error)
	List(ctx context.Context, filter ListFilter) ([]*Instrument, int64, error)
	ListAreas(ctx context.Context) ([]string, error)
}
