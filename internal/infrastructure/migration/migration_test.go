package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/config"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/persistence/models"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func assertAllTables(t *testing.T, db *gorm.DB, exist bool) {
	t.Helper()
	for _, m := range models.All() {
		assert.Equal(t, exist, db.Migrator().HasTable(m))
	}
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	db := openTestDB(t)
	strategy, err := NewGooseStrategy("sqlite")
	require.NoError(t, err)

	require.NoError(t, strategy.Migrate(db))
	assertAllTables(t, db, true)

	version, err := strategy.GetVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, strategy.MigrateDown(db, 1))
	assertAllTables(t, db, false)
}

func TestGooseStrategy_UnsupportedDriver(t *testing.T) {
	_, err := NewGooseStrategy("postgres")
	assert.Error(t, err)
}

func TestManager_SelectsStrategy(t *testing.T) {
	log := logger.NewLogger()

	m, err := NewManager(&config.DatabaseConfig{Driver: "sqlite", Migrator: "auto"}, log)
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())
	_, err = m.Versioned()
	assert.Error(t, err)

	db := openTestDB(t)
	require.NoError(t, m.Migrate(db))
	assertAllTables(t, db, true)

	m, err = NewManager(&config.DatabaseConfig{Driver: "sqlite"}, log)
	require.NoError(t, err)
	assert.Equal(t, "goose", m.GetStrategy().GetName())
	_, err = m.Versioned()
	assert.NoError(t, err)

	_, err = NewManager(&config.DatabaseConfig{Driver: "sqlite", Migrator: "flyway"}, log)
	assert.Error(t, err)
}
