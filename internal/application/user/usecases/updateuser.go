package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/user/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type UpdateUserUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	logger         logger.Interface
}

func NewUpdateUserUseCase(
	userRepo user.Repository,
	passwordHasher user.PasswordHasher,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		logger:         logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, userID string, request dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(uc.logger, userID, err)
	}

	profile, err := toProfile(request.Username, request.Password, request.Email, request.Phone, request.Role, request.Status)
	if err != nil {
		return nil, err
	}

	if err := u.Update(profile, uc.passwordHasher, biztime.NowUTC()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("username already exists", u.Username())
		}
		uc.logger.Errorw("failed to update user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to update user")
	}

	uc.logger.Infow("user updated", "user_id", userID, "password_changed", request.Password != "")
	return dto.FromUser(u), nil
}
