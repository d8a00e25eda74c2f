package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/config"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/database"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/migration"
	"github.com/upkeep-inc/upkeep/internal/interfaces/cli/bootstrap"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, reset and check status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newResetCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Roll back every migration",
		Long:  `Roll back all applied migrations. Every table and its data is dropped.`,
		RunE:  runReset,
	}
}

// session is an opened database together with its migration manager.
type session struct {
	db      *gorm.DB
	manager *migration.Manager
	log     logger.Interface
}

func (s *session) close() {
	if err := database.Close(s.db); err != nil {
		s.log.Warnw("failed to close database", "error", err)
	}
}

func initEnv() (*session, error) {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return nil, err
	}
	if cfg.Server.Store != "database" {
		return nil, fmt.Errorf("migrations need server.store=database, got %q", cfg.Server.Store)
	}

	gdb, err := bootstrap.OpenDatabase(cfg, log, false)
	if err != nil {
		return nil, err
	}

	manager, err := migration.NewManager(&cfg.Database, log)
	if err != nil {
		_ = database.Close(gdb)
		return nil, err
	}
	return &session{db: gdb, manager: manager, log: log}, nil
}

// versioned opens the database and requires a strategy that supports
// down, status and reset.
func versioned() (*session, migration.VersionedStrategy, error) {
	s, err := initEnv()
	if err != nil {
		return nil, nil, err
	}
	strategy, err := s.manager.Versioned()
	if err != nil {
		s.close()
		return nil, nil, fmt.Errorf("%w (set database.migrator=goose)", err)
	}
	return s, strategy, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	s, err := initEnv()
	if err != nil {
		return err
	}
	defer s.close()

	s.log.Infow("running up migrations", "environment", env)
	return s.manager.Migrate(s.db)
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}

	s, strategy, err := versioned()
	if err != nil {
		return err
	}
	defer s.close()

	s.log.Infow("rolling back migrations", "environment", env, "steps", steps)
	if err := strategy.MigrateDown(s.db, steps); err != nil {
		s.log.Errorw("rollback failed", "error", err)
		return fmt.Errorf("rollback failed: %w", err)
	}

	s.log.Infow("rollback completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, strategy, err := versioned()
	if err != nil {
		return err
	}
	defer s.close()

	version, err := strategy.GetVersion(s.db)
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "current version: %d\n", version)

	return strategy.Status(s.db)
}

func runReset(cmd *cobra.Command, args []string) error {
	s, strategy, err := versioned()
	if err != nil {
		return err
	}
	defer s.close()

	if config.Get().Server.Mode == "release" {
		s.log.Warnw("resetting a release database")
	}

	s.log.Infow("resetting database", "environment", env)
	if err := strategy.Reset(s.db); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	s.log.Infow("database reset completed")
	return nil
}
