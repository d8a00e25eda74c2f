package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/config"
	"github.com/upkeep-inc/upkeep/internal/infrastructure/database"
	httpRouter "github.com/upkeep-inc/upkeep/internal/interfaces/http"
	"github.com/upkeep-inc/upkeep/internal/interfaces/cli/bootstrap"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
	skipSeed    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Upkeep HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "Run database migrations on startup")
	cmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "Do not load seed data on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, log, err := bootstrap.Init(mapEnvToGinMode(env))
	if err != nil {
		return err
	}

	log.Infow("starting server",
		"environment", env,
		"store", cfg.Server.Store,
		"auto_migrate", autoMigrate)

	config.Watch(func(updated *config.Config) {
		logger.SetLevel(logger.ParseLevel(updated.Logger.Level))
		log.Infow("configuration reloaded", "log_level", updated.Logger.Level)
	}, func(err error) {
		log.Warnw("ignoring invalid configuration change", "error", err)
	})

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		log.Debugw("route registered", "method", httpMethod, "path", absolutePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var gdb *gorm.DB
	if cfg.Server.Store == "database" {
		gdb, err = bootstrap.OpenDatabase(cfg, log, autoMigrate)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(gdb); err != nil {
				log.Warnw("failed to close database", "error", err)
			}
		}()
	}

	redisClient, err := database.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())
	}

	container, err := httpRouter.NewContainer(gdb, redisClient, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	container.SetupRoutes()

	if cfg.Seed.OnStart && !skipSeed {
		if _, err := container.Seed(ctx, cfg.Seed.File); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to seed data: %w", err)
			}
			log.Warnw("seed file not found, skipping", "file", cfg.Seed.File)
		}
	}

	if err := container.Start(); err != nil {
		return fmt.Errorf("failed to start background services: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		container.Shutdown()
		if err != nil {
			log.Errorw("server forced to shutdown", "error", err)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
