package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/domain/ticket"
	vo "github.com/upkeep-inc/upkeep/internal/domain/ticket/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/mappers"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/models"
	"github.com/upkeep-inc/upkeep/internal/shared/db"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// filterScope applies a ticket.Filter. areaColumn and dateColumn differ
// between breakdowns and recurring tickets.
func filterScope(filter ticket.Filter, areaColumn, dateColumn string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			q = q.Where("status = ?", filter.Status.String())
		}
		q = db.WhereIfNotEmpty(areaColumn, filter.Area)(q)
		if filter.ScheduledFrom != nil {
			q = q.Where(dateColumn+" >= ?", *filter.ScheduledFrom)
		}
		if filter.ScheduledTo != nil {
			q = q.Where(dateColumn+" <= ?", *filter.ScheduledTo)
		}
		return q
	}
}

// closeOpen flips one Open row to Closed. Zero affected rows means the row
// is missing or was closed concurrently.
func closeOpen(tx *gorm.DB, model interface{}, id string, values interface{}, columns ...interface{}) error {
	q := tx.Model(model).Where("id = ? AND status = ?", id, vo.StatusOpen.String())
	if len(columns) > 0 {
		q = q.Select(columns[0], columns[1:]...)
	}
	result := q.Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ticket.ErrTicketNotFound
		}
		return ticket.ErrTicketClosed
	}
	return nil
}

// BreakdownRepository implements ticket.BreakdownRepository with GORM.
type BreakdownRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewBreakdownRepository(gdb *gorm.DB, logger logger.Interface) ticket.BreakdownRepository {
	return &BreakdownRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *BreakdownRepository) Create(ctx context.Context, t *ticket.Breakdown) error {
	model := r.mapper.BreakdownToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create breakdown ticket", "id", t.ID(), "error", err)
		return fmt.Errorf("failed to create breakdown ticket: %w", err)
	}
	return nil
}

func (r *BreakdownRepository) GetByID(ctx context.Context, id string) (*ticket.Breakdown, error) {
	var model models.BreakdownTicketModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get breakdown ticket: %w", err)
	}
	return r.mapper.BreakdownToEntity(&model)
}

func (r *BreakdownRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Breakdown, int64, error) {
	var ms []*models.BreakdownTicketModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.BreakdownTicketModel{}).
		Scopes(filterScope(filter, "location", "date_of_work"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count breakdown tickets: %w", err)
	}
	if err := query.
		Order("created_at DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list breakdown tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to list breakdown tickets: %w", err)
	}

	entities, err := r.mapper.BreakdownsToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *BreakdownRepository) Close(ctx context.Context, closed *ticket.Breakdown) error {
	model := r.mapper.BreakdownToModel(closed)
	err := closeOpen(db.GetTxFromContext(ctx, r.db), &models.BreakdownTicketModel{}, closed.ID(), model,
		"title", "status", "work_type", "machine_id", "machine_name", "location", "shift",
		"date_of_work", "downtime_from", "downtime_to", "problem_observed", "attended_by",
		"completion", "closed_date", "updated_at")
	if err != nil {
		if errors.Is(err, ticket.ErrTicketClosed) || errors.Is(err, ticket.ErrTicketNotFound) {
			return err
		}
		r.logger.Errorw("failed to close breakdown ticket", "id", closed.ID(), "error", err)
		return fmt.Errorf("failed to close breakdown ticket: %w", err)
	}
	return nil
}

// PreventiveRepository implements ticket.PreventiveRepository with GORM.
type PreventiveRepository struct {
	db     *gorm.DB
	tm     *db.TransactionManager
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewPreventiveRepository(gdb *gorm.DB, logger logger.Interface) ticket.PreventiveRepository {
	return &PreventiveRepository{
		db:     gdb,
		tm:     db.NewTransactionManager(gdb),
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *PreventiveRepository) CreateBatch(ctx context.Context, tickets []*ticket.Preventive) error {
	if len(tickets) == 0 {
		return nil
	}
	ms := make([]*models.PreventiveTicketModel, 0, len(tickets))
	for _, t := range tickets {
		ms = append(ms, r.mapper.PreventiveToModel(t))
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(&ms).Error; err != nil {
		r.logger.Errorw("failed to create preventive tickets", "count", len(ms), "error", err)
		return fmt.Errorf("failed to create preventive tickets: %w", err)
	}
	return nil
}

func (r *PreventiveRepository) GetByID(ctx context.Context, id string) (*ticket.Preventive, error) {
	var model models.PreventiveTicketModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get preventive ticket: %w", err)
	}
	return r.mapper.PreventiveToEntity(&model)
}

func (r *PreventiveRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Preventive, int64, error) {
	var ms []*models.PreventiveTicketModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.PreventiveTicketModel{}).
		Scopes(filterScope(filter, "area", "scheduled_date"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count preventive tickets: %w", err)
	}
	if err := query.
		Order("scheduled_date ASC, id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list preventive tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to list preventive tickets: %w", err)
	}

	entities, err := r.mapper.PreventivesToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *PreventiveRepository) CloseAndAppend(ctx context.Context, closed, successor *ticket.Preventive) error {
	return r.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := db.GetTxFromContext(txCtx, r.db)
		if err := closeOpen(tx, &models.PreventiveTicketModel{}, closed.ID(), map[string]interface{}{
			"status":      closed.Status().String(),
			"closed_date": closed.ClosedDate(),
			"updated_at":  closed.UpdatedAt(),
		}); err != nil {
			return err
		}
		if err := tx.Create(r.mapper.PreventiveToModel(successor)).Error; err != nil {
			r.logger.Errorw("failed to append successor", "id", successor.ID(), "error", err)
			return fmt.Errorf("failed to create successor ticket: %w", err)
		}
		return nil
	})
}

func (r *PreventiveRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PreventiveTicketModel{}).
		Where("status = ?", vo.StatusOpen.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count open preventive tickets: %w", err)
	}
	return count, nil
}

// CalibrationRepository implements ticket.CalibrationRepository with GORM.
type CalibrationRepository struct {
	db     *gorm.DB
	tm     *db.TransactionManager
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewCalibrationRepository(gdb *gorm.DB, logger logger.Interface) ticket.CalibrationRepository {
	return &CalibrationRepository{
		db:     gdb,
		tm:     db.NewTransactionManager(gdb),
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *CalibrationRepository) CreateBatch(ctx context.Context, tickets []*ticket.Calibration) error {
	if len(tickets) == 0 {
		return nil
	}
	ms := make([]*models.CalibrationTicketModel, 0, len(tickets))
	for _, t := range tickets {
		ms = append(ms, r.mapper.CalibrationToModel(t))
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(&ms).Error; err != nil {
		r.logger.Errorw("failed to create calibration tickets", "count", len(ms), "error", err)
		return fmt.Errorf("failed to create calibration tickets: %w", err)
	}
	return nil
}

func (r *CalibrationRepository) GetByID(ctx context.Context, id string) (*ticket.Calibration, error) {
	var model models.CalibrationTicketModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get calibration ticket: %w", err)
	}
	return r.mapper.CalibrationToEntity(&model)
}

func (r *CalibrationRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Calibration, int64, error) {
	var ms []*models.CalibrationTicketModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.CalibrationTicketModel{}).
		Scopes(filterScope(filter, "area", "scheduled_date"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count calibration tickets: %w", err)
	}
	if err := query.
		Order("scheduled_date ASC, id ASC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&ms).Error; err != nil {
		r.logger.Errorw("failed to list calibration tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to list calibration tickets: %w", err)
	}

	entities, err := r.mapper.CalibrationsToEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *CalibrationRepository) CloseAndAppend(ctx context.Context, closed, successor *ticket.Calibration) error {
	return r.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := db.GetTxFromContext(txCtx, r.db)
		if err := closeOpen(tx, &models.CalibrationTicketModel{}, closed.ID(), map[string]interface{}{
			"status":      closed.Status().String(),
			"closed_date": closed.ClosedDate(),
			"updated_at":  closed.UpdatedAt(),
		}); err != nil {
			return err
		}
		if err := tx.Create(r.mapper.CalibrationToModel(successor)).Error; err != nil {
			r.logger.Errorw("failed to append successor", "id", successor.ID(), "error", err)
			return fmt.Errorf("failed to create successor ticket: %w", err)
		}
		return nil
	})
}

func (r *CalibrationRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CalibrationTicketModel{}).
		Where("status = ?", vo.StatusOpen.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count open calibration tickets: %w", err)
	}
	return count, nil
}
