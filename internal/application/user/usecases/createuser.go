package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/user/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/id"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type CreateUserUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	logger         logger.Interface
}

func NewCreateUserUseCase(
	userRepo user.Repository,
	passwordHasher user.PasswordHasher,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		logger:         logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, request dto.CreateUserRequest) (*dto.UserResponse, error) {
	uc.logger.Infow("executing create user use case", "username", request.Username)

	profile, err := toProfile(request.Username, request.Password, request.Email, request.Phone, request.Role, request.Status)
	if err != nil {
		return nil, err
	}

	userID, err := id.NewUserID()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate user ID")
	}

	u, err := user.NewUser(userID, profile, uc.passwordHasher, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("username already exists", u.Username())
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "username", u.Username(), "role", u.Role())
	return dto.FromUser(u), nil
}
