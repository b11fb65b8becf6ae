package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"invoice-dashboard/internal/core"
)

// Defaults applied when an adapter passes a non-positive limit.
const (
	defaultTrendMonths   = 12
	defaultOutflowMonths = 12
	defaultTopVendors    = 10
	defaultInvoiceLimit  = 100
)

type appService struct {
	pool      *pgxpool.Pool
	analytics core.AnalyticsService
	chat      core.ChatService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	pool *pgxpool.Pool,
	analytics core.AnalyticsService,
	chat core.ChatService,
) ApplicationService {
	return &appService{
		pool:      pool,
		analytics: analytics,
		chat:      chat,
	}
}

func (s *appService) GetSummaryStats(ctx context.Context) (*core.SummaryStats, error) {
	return s.analytics.GetSummaryStats(ctx)
}

func (s *appService) GetMonthlyTrend(ctx context.Context, limit int) ([]core.TrendPoint, error) {
	if limit <= 0 {
		limit = defaultTrendMonths
	}
	return s.analytics.GetMonthlyTrend(ctx, limit)
}

func (s *appService) GetTopVendors(ctx context.Context, n int) ([]core.VendorSpend, error) {
	if n <= 0 {
		n = defaultTopVendors
	}
	return s.analytics.GetTopVendors(ctx, n)
}

func (s *appService) GetCategorySpend(ctx context.Context) ([]core.CategorySpend, error) {
	return s.analytics.GetCategorySpend(ctx)
}

func (s *appService) GetCashOutflowForecast(ctx context.Context, limit int) ([]core.OutflowPoint, error) {
	if limit <= 0 {
		limit = defaultOutflowMonths
	}
	return s.analytics.GetCashOutflowForecast(ctx, limit)
}

func (s *appService) ListInvoices(ctx context.Context, search string, limit int) ([]core.InvoiceRow, error) {
	if limit <= 0 {
		limit = defaultInvoiceLimit
	}
	return s.analytics.ListInvoices(ctx, search, limit)
}

func (s *appService) AnswerChat(ctx context.Context, question string) *core.ChatResult {
	return s.chat.AnswerChat(ctx, question)
}

func (s *appService) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
