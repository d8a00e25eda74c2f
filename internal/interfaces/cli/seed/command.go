package seed

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/database"
	httpRouter "github.com/upkeep-inc/upkeep/internal/interfaces/http"
	"github.com/upkeep-inc/upkeep/internal/interfaces/cli/bootstrap"
)

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load seed data",
		Long:  `Insert the machines, instruments and users of a seed file. Records that already exist are left unchanged.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file (default: seed.file from config)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(env)
	if err != nil {
		return err
	}
	if cfg.Server.Store != "database" {
		return fmt.Errorf("seeding needs server.store=database; the memory store is seeded by the server on start")
	}
	if file == "" {
		file = cfg.Seed.File
	}

	var gdb *gorm.DB
	if gdb, err = bootstrap.OpenDatabase(cfg, log, true); err != nil {
		return err
	}
	defer database.Close(gdb)

	cfg.Scheduler.Enabled = false
	container, err := httpRouter.NewContainer(gdb, nil, cfg, log)
	if err != nil {
		return err
	}

	res, err := container.Seed(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("failed to seed data: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d machines, %d instruments, %d users\n",
		res.Machines, res.Instruments, res.Users)
	return nil
}
