package app

import (
	"context"

	"invoice-dashboard/internal/core"
)

// ApplicationService is the single interface all adapters (Web, CLI) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// GetSummaryStats returns the dashboard headline numbers.
	GetSummaryStats(ctx context.Context) (*core.SummaryStats, error)

	// GetMonthlyTrend returns per-month spend, most recent month first.
	// limit <= 0 falls back to the default window.
	GetMonthlyTrend(ctx context.Context, limit int) ([]core.TrendPoint, error)

	// GetTopVendors returns the highest-spend vendors in descending order.
	// n <= 0 falls back to the default of ten.
	GetTopVendors(ctx context.Context, n int) ([]core.VendorSpend, error)

	// GetCategorySpend returns spend summed per vendor category.
	GetCategorySpend(ctx context.Context) ([]core.CategorySpend, error)

	// GetCashOutflowForecast returns projected outflow per due month,
	// ascending. limit <= 0 falls back to the default window.
	GetCashOutflowForecast(ctx context.Context, limit int) ([]core.OutflowPoint, error)

	// ListInvoices returns the invoice listing, newest first, optionally
	// filtered by a search term. limit <= 0 falls back to the default cap.
	ListInvoices(ctx context.Context, search string, limit int) ([]core.InvoiceRow, error)

	// AnswerChat answers a free-text question about the invoice data.
	// It never returns an error: execution failures are carried in the result.
	AnswerChat(ctx context.Context, question string) *core.ChatResult

	// Health reports whether the backing store is reachable.
	Health(ctx context.Context) error
}
