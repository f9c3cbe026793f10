package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/application"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/repository"
)

func newSeedCommand() *cobra.Command {
	var ifEmpty bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the fixed set of gallery photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			m, err := metrics.NewGalleryMetrics(prometheus.NewRegistry())
			if err != nil {
				return err
			}
			seeder := application.NewSeeder(repository.NewGormPhotoRepository(db), m, log)

			var n int
			if ifEmpty {
				n, err = seeder.SeedIfEmpty(cmd.Context())
			} else {
				n, err = seeder.Seed(cmd.Context())
			}
			if err != nil {
				return err
			}
			log.Info("seed finished", zap.Int("inserted", n))
			return nil
		},
	}
	cmd.Flags().BoolVar(&ifEmpty, "if-empty", false, "only seed when the photo store is empty")
	return cmd
}
