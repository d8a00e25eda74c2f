package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/domain/user"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

type DeleteUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo user.Repository, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, userID string) error {
	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return lookupError(uc.logger, userID, err)
	}
	uc.logger.Infow("user deleted", "user_id", userID)
	return nil
}
