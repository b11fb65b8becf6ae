package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"invoice-dashboard/internal/core"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print row counts and sample rows for the dashboard tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		counts, err := core.NewMaintenanceService(pool).TableCounts(ctx)
		if err != nil {
			return err
		}

		tables := make([]string, 0, len(counts))
		for t := range counts {
			tables = append(tables, t)
		}
		sort.Strings(tables)
		for _, t := range tables {
			fmt.Printf("%-15s %d\n", t, counts[t])
		}

		analytics := core.NewAnalyticsService(pool)

		invoices, err := analytics.ListInvoices(ctx, "", 3)
		if err != nil {
			return err
		}
		fmt.Println("\nRecent invoices:")
		for _, inv := range invoices {
			fmt.Printf("  %-15s %-12s %-30s %s\n",
				strOrDash(inv.InvoiceNumber), strOrDash(inv.InvoiceDate),
				strOrDash(inv.Vendor), amountOrDash(inv))
		}

		vendors, err := analytics.GetTopVendors(ctx, 3)
		if err != nil {
			return err
		}
		fmt.Println("\nTop vendors:")
		for _, v := range vendors {
			fmt.Printf("  %-30s %s\n", v.Vendor, v.Spend)
		}
		return nil
	},
}

func strOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func amountOrDash(inv core.InvoiceRow) string {
	if !inv.Amount.Valid {
		return "-"
	}
	return inv.Amount.Decimal.String()
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
