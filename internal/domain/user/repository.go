package user

import "context"

type ListFilter struct {
	Role     string
	Status   string
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
}
