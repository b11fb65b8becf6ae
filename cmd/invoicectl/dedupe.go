package main

import (
	"github.com/spf13/cobra"

	"invoice-dashboard/internal/core"
	"invoice-dashboard/internal/logger"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Remove duplicate invoice rows",
	Long: `Remove invoice rows that share an invoice number with an earlier row,
keeping the first-inserted row per invoice number. Payment terms and
line items attached to removed rows are deleted with them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("dedupe")

		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		removed, err := core.NewMaintenanceService(pool).RemoveDuplicateInvoices(ctx)
		if err != nil {
			return err
		}
		log.Info().Int64("removed", removed).Msg("duplicate invoices removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dedupeCmd)
}
