// Package bootstrap holds the start-up steps shared by the CLI commands.
package bootstrap

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/config"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/database"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/migration"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

// Init loads configuration and initializes the logger and the business
// time zone.
func Init(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize business timezone for date boundary calculations
	if err := biztime.Init(cfg.BizTime.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// OpenDatabase opens the configured database and, when migrate is set,
// brings its schema up to date.
func OpenDatabase(cfg *config.Config, log logger.Interface, migrate bool) (*gorm.DB, error) {
	gdb, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if !migrate {
		return gdb, nil
	}

	manager, err := migration.NewManager(&cfg.Database, log)
	if err != nil {
		_ = database.Close(gdb)
		return nil, err
	}
	if err := manager.Migrate(gdb); err != nil {
		_ = database.Close(gdb)
		return nil, err
	}
	return gdb, nil
}
