package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/upkeep-inc/upkeep/internal/interfaces/cli/migrate"
	"github.com/upkeep-inc/upkeep/internal/interfaces/cli/seed"
	"github.com/upkeep-inc/upkeep/internal/interfaces/cli/server"
)

// @title Upkeep API
// @version 1.0
// @description Maintenance ticketing for breakdowns, preventive maintenance and calibration.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:          "upkeep",
		Short:        "Upkeep - maintenance ticketing service",
		Long:         `Upkeep tracks machine breakdowns, preventive maintenance and instrument calibration, with a built-in server, migration and seed commands.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
