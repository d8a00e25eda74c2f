package machine

import "context"

type ListFilter struct {
	Area     string
	Status   string
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, m *Machine) error
	Update(ctx context.Context, m *Machine) error
	// Delete removes the machine. Tickets referring to it are kept.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Machine, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Machine, error)
	List(ctx context.Context, filter ListFilter) ([]*Machine, int64, error)
	ListAreas(ctx context.Context) ([]string, error)
}
