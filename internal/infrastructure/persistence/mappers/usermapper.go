package mappers

import (
	shared "github.com/upkeep-inc/upkeep/internal/domain/shared/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/domain/user"
	vo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/models"
	"github.com/upkeep-inc/upkeep/internal/shared/mapper"
)

// UserMapper handles the conversion between user entities and persistence models.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	role, err := vo.NewRole(model.Role)
	if err != nil {
		return nil, err
	}
	status, err := shared.NewActiveStatus(model.Status)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.Password,
		model.Email,
		model.Phone,
		role,
		status,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:        entity.ID(),
		Username:  entity.Username(),
		Password:  entity.Password(),
		Email:     entity.Email(),
		Phone:     entity.Phone(),
		Role:      entity.Role().String(),
		Status:    entity.Status().String(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(ms []*models.UserModel) ([]*user.User, error) {
	return mapper.MapSliceWithError(ms, m.ToEntity)
}
