package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/domain/machine"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/mappers"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/models"
	"github.com/upkeep-inc/upkeep/internal/shared/db"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// MachineRepository implements machine.Repository with GORM.
type MachineRepository struct {
	db     *gorm.DB
	mapper mappers.MachineMapper
	logger logger.Interface
}

func NewMachineRepository(gdb *gorm.DB, logger logger.Interface) machine.Repository {
	return &MachineRepository{
		db:     gdb,
		mapper: mappers.NewMachineMapper(),
		logger: logger,
	}
}

func (r *MachineRepository) Create(ctx context.Context, m *machine.Machine) error {
	model := r.mapper.ToModel(m)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create machine", "id", m.ID(), "error", err)
		return fmt.Errorf("failed to create machine: %w", err)
	}
	return nil
}

func (r *MachineRepository) Update(ctx context.Context, m *machine.Machine) error {
	model := r.mapper.ToModel(m)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.MachineModel{}).
		Where("id = ?", model.ID).
		Select("asset_number", "machine_name", "area", "status", "description", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update machine", "id", m.ID(), "error", result.Error)
		return fmt.Errorf("failed to update machine: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return machine.ErrMachineNotFound
	}
	return nil
}

func (r *MachineRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.MachineModel{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete machine", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete machine: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return machine.ErrMachineNotFound
	}
	return nil
}

func (r *MachineRepository) GetByID(ctx context.Context, id string) (*machine.Machine, error) {
	var model models.MachineModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, machine.ErrMachineNotFound
		}
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *MachineRepository) GetByIDs(ctx context.Context, ids []string) ([]*machine.Machine, error) {
	if len(ids) == 0 {
		return []*machine.Machine{}, nil
	}
	var ms []*models.MachineModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id IN ?", ids).
		Order("asset_number ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to get machines: %w", err)
	}
	return r.mapper.ToEntities(ms)
}

func (r *MachineRepository) List(ctx context.Context, filter machine.ListFilter) ([]*machine.Machine, int64, error) {
	var ms []*models.MachineModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.MachineModel{}).
		Scopes(
			db.WhereIfNotEmpty("area", filter.Area),
			db.WhereIfNotEmpty("status", filter.Status),
		)

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count machines", "error", err)
		return nil, 0, fmt.Errorf("failed to count machines: %w", err)
	}

	if err := query.
		Order("area ASC, asset_number ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list machines", "error", err)
		return nil, 0, fmt.Errorf("failed to list machines: %w", err)
	}

	entities, err := r.mapper.ToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *MachineRepository) ListAreas(ctx context.Context) ([]string, error) {
	var areas []string
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MachineModel{}).
		Distinct("area").
		Order("area ASC").
		Pluck("area", &areas).Error; err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	return areas, nil
}
