package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/domain/instrument"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/mappers"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/models"
	"github.com/upkeep-inc/upkeep/internal/shared/db"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// InstrumentRepository implements instrument.Repository with GORM.
type InstrumentRepository struct {
	db     *gorm.DB
	mapper mappers.InstrumentMapper
	logger logger.Interface
}

func NewInstrumentRepository(gdb *gorm.DB, logger logger.Interface) instrument.Repository {
	return &InstrumentRepository{
		db:     gdb,
		mapper: mappers.NewInstrumentMapper(),
		logger: logger,
	}
}

func (r *InstrumentRepository) Create(ctx context.Context, i *instrument.Instrument) error {
	model := r.mapper.ToModel(i)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create instrument", "id", i.ID(), "error", err)
		return fmt.Errorf("failed to create instrument: %w", err)
	}
	return nil
}

func (r *InstrumentRepository) Update(ctx context.Context, i *instrument.Instrument) error {
	model := r.mapper.ToModel(i)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.InstrumentModel{}).
		Where("id = ?", model.ID).
		Select("instrument_number", "instrument_name", "area", "status", "description", "frequency", "last_calibration_done", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update instrument", "id", i.ID(), "error", result.Error)
		return fmt.Errorf("failed to update instrument: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return instrument.ErrInstrumentNotFound
	}
	return nil
}

func (r *InstrumentRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.InstrumentModel{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete instrument", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete instrument: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return instrument.ErrInstrumentNotFound
	}
	return nil
}

func (r *InstrumentRepository) GetByID(ctx context.Context, id string) (*instrument.Instrument, error) {
	var model models.InstrumentModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, instrument.ErrInstrumentNotFound
		}
		return nil, fmt.Errorf("failed to get instrument: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InstrumentRepository) GetByIDs(ctx context.Context, ids []string) ([]*instrument.Instrument, error) {
	if len(ids) == 0 {
		return []*instrument.Instrument{}, nil
	}
	var ms []*models.InstrumentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id IN ?", ids).
		Order("instrument_number ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to get instruments: %w", err)
	}
	return r.mapper.ToEntities(ms)
}

func (r *InstrumentRepository) List(ctx context.Context, filter instrument.ListFilter) ([]*instrument.Instrument, int64, error) {
	var ms []*models.InstrumentModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.InstrumentModel{}).
		Scopes(
			db.WhereIfNotEmpty("area", filter.Area),
			db.WhereIfNotEmpty("status", filter.Status),
		)

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count instruments", "error", err)
		return nil, 0, fmt.Errorf("failed to count instruments: %w", err)
	}

	if err := query.
		Order("area ASC, instrument_number ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list instruments", "error", err)
		return nil, 0, fmt.Errorf("failed to list instruments: %w", err)
	}

	entities, err := r.mapper.ToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *InstrumentRepository) ListAreas(ctx context.Context) ([]string, error) {
	var areas []string
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.InstrumentModel{}).
		Distinct("area").
		Order("area ASC").
		Pluck("area", &areas).Error; err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	return areas, nil
}
