// Package migration keeps the database schema in step with the
// persistence models.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/config"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy named by cfg.Migrator: "goose" (default)
// or "auto".
func NewManager(cfg *config.DatabaseConfig, log logger.Interface) (*Manager, error) {
	var strategy Strategy
	switch cfg.Migrator {
	case "auto":
		strategy = NewGormAutoMigrateStrategy()
	case "", "goose":
		goose, err := NewGooseStrategy(cfg.Driver)
		if err != nil {
			return nil, err
		}
		strategy = goose
	default:
		return nil, fmt.Errorf("unknown migrator: %s", cfg.Migrator)
	}

	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.Named("migration"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Versioned returns the strategy when it supports down, status and reset.
func (m *Manager) Versioned() (VersionedStrategy, error) {
	v, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return nil, fmt.Errorf("strategy %s does not support versioned operations", m.strategy.GetName())
	}
	return v, nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
