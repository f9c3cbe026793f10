package main

import (
	"github.com/spf13/cobra"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply photo store migrations and exit",
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
			return database.Close(db)
		},
	}
}
