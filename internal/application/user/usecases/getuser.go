package usecases

import (
	"context"

	"github.com/upkeep-inc/upkeep/internal/application/user/dto"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetUserUseCase) ExecuteByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupError(uc.logger, userID, err)
	}
	return dto.FromUser(u), nil
}

func (uc *GetUserUseCase) ExecuteList(ctx context.Context, request dto.ListUsersRequest) (*dto.ListUsersResponse, error) {
	p := utils.ValidatePagination(request.Page, request.PageSize)

	users, total, err := uc.userRepo.List(ctx, user.ListFilter{
		Role:     request.Role,
		Status:   request.Status,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}

	items := dto.FromUsers(users)
	if items == nil {
		items = []*dto.UserResponse{}
	}
	return &dto.ListUsersResponse{
		Users:    items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
