package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"invoice-dashboard/internal/config"
	"invoice-dashboard/internal/db"
	"invoice-dashboard/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Operations CLI for the invoice analytics dashboard",
	Long: `invoicectl manages the invoice dashboard's database: applying schema
migrations, loading document analytics exports, removing duplicate
invoices, and checking row counts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Setup(c.GetLoggerConfig()); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

// cfg is populated by the root command before any subcommand runs.
var cfg *config.Config

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// connect opens the shared connection pool for subcommands that need one.
func connect(ctx context.Context) (*pgxpool.Pool, error) {
	return db.NewPool(ctx, cfg.DatabaseURL)
}
