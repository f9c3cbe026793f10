package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/config"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/logger"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/repository"
)

const serviceName = "service-gallery"

func main() {
	root := &cobra.Command{
		Use:           "gallery",
		Short:         "Photo gallery service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newSeedCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gallery: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the service logger.
func bootstrap() (*config.ServiceConfig, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewNamed(cfg.AppEnv, cfg.LogLevel, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

// openStore connects to the photo store and brings its schema up to date.
// Development and sqlite stores are auto-migrated; everything else runs the
// versioned SQL migrations.
func openStore(cfg *config.ServiceConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		return nil, err
	}

	if cfg.DBConfig.IsSQLite() || logger.IsDevelopment(cfg.AppEnv) {
		if err := db.AutoMigrate(&repository.PhotoModel{}); err != nil {
			return nil, fmt.Errorf("failed to run auto-migration: %w", err)
		}
		log.Info("database migration completed (auto-migrate)")
		return db, nil
	}

	if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), log); err != nil {
		return nil, err
	}
	return db, nil
}
