package main

import (
	"github.com/spf13/cobra"

	"invoice-dashboard/internal/logger"
	"invoice-dashboard/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("migrate")
		if err := storage.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
