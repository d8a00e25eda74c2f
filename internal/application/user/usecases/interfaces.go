package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/user/dto"
)

type CreateUserExecutor interface {
	Execute(ctx context.Context, request dto.CreateUserRequest) (*dto.UserResponse, error)
}

type UpdateUserExecutor interface {
	Execute(ctx context.Context, userID string, request dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type DeleteUserExecutor interface {
	Execute(ctx context.Context, userID string) error
}

type GetUserExecutor interface {
	ExecuteByID(ctx context.Context, userID string) (*dto.UserResponse, error)
	ExecuteList(ctx context.Context, request dto.ListUsersRequest) (*dto.ListUsersResponse, error)
}

type AuthenticateExecutor interface {
	Execute(ctx context.Context, cmd AuthenticateCommand) (*dto.LoginResponse, error)
}
