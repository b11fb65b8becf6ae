package main

import (
	"github.com/spf13/cobra"

	"invoice-dashboard/internal/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a small demo dataset",
	Long: `Load a small demo dataset for local development. Demo rows use the
DEMO- invoice number prefix and are replaced on every run, so the
command is safe to repeat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("seed")

		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// Previous demo rows go first; payment terms and line items cascade.
		if _, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id LIKE 'DEMO-%'`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM vendors v
			WHERE v.name LIKE 'Demo %'
			  AND NOT EXISTS (SELECT 1 FROM invoices i WHERE i.vendor_id = v.id)`); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			WITH demo_vendors AS (
				INSERT INTO vendors (name)
				VALUES
					('Demo Tech Solutions'),
					('Demo Office Supply Co'),
					('Demo Travel Partners'),
					('Demo Consulting Group')
				RETURNING id, name
			),
			demo_invoices AS (
				INSERT INTO invoices (invoice_id, invoice_date, vendor_id, currency_symbol, invoice_total)
				SELECT x.invoice_id, x.invoice_date::date, v.id, 'EUR', x.total
				FROM (VALUES
					('DEMO-1001', '2025-05-12', 'Demo Tech Solutions',   2450.00),
					('DEMO-1002', '2025-06-03', 'Demo Tech Solutions',   1180.50),
					('DEMO-1003', '2025-06-18', 'Demo Office Supply Co',  342.75),
					('DEMO-1004', '2025-07-02', 'Demo Travel Partners',   890.00),
					('DEMO-1005', '2025-07-21', 'Demo Consulting Group', 5200.00),
					('DEMO-1006', '2025-08-05', 'Demo Office Supply Co',  128.30)
				) AS x(invoice_id, invoice_date, vendor, total)
				JOIN demo_vendors v ON v.name = x.vendor
				RETURNING id, invoice_id
			)
			INSERT INTO payment_terms (invoice_id, due_date, payment_terms, net_days)
			SELECT i.id, x.due_date::date, 'Net 30', 30
			FROM (VALUES
				('DEMO-1001', '2025-06-11'),
				('DEMO-1003', '2025-07-18'),
				('DEMO-1005', '2025-08-20'),
				('DEMO-1006', '2025-09-04')
			) AS x(invoice_id, due_date)
			JOIN demo_invoices i ON i.invoice_id = x.invoice_id`); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
		log.Info().Msg("demo dataset loaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
