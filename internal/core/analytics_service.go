package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ── Interface ─────────────────────────────────────────────────────────────────

// AnalyticsService provides the read-only dashboard aggregations over
// the invoice store. Totals are summed exactly as captured: currencies
// are never normalised before summation, so datasets holding more than
// one currency mix units (a known limitation of the upstream
// extraction, surfaced rather than fixed here).
type AnalyticsService interface {
	// GetSummaryStats returns the distinct invoice count, spend sum and
	// average over rows with a non-null total, plus the document count.
	GetSummaryStats(ctx context.Context) (*SummaryStats, error)

	// GetMonthlyTrend groups invoices with a non-null date and total by
	// calendar month, most recent month first, truncated to limit.
	GetMonthlyTrend(ctx context.Context, limit int) ([]TrendPoint, error)

	// GetTopVendors returns the n highest-spend vendors in descending
	// order. Ties break on vendor insertion order (lowest id first).
	GetTopVendors(ctx context.Context, n int) ([]VendorSpend, error)

	// GetCategorySpend sums totals per vendor category, descending by
	// spend. Every vendor maps to exactly one category.
	GetCategorySpend(ctx context.Context) ([]CategorySpend, error)

	// GetCashOutflowForecast buckets non-null-total invoices by
	// effective due month, ascending, truncated to limit.
	GetCashOutflowForecast(ctx context.Context, limit int) ([]OutflowPoint, error)

	// ListInvoices returns invoices joined to vendor and payment term,
	// newest first, capped at limit. A non-empty search filters
	// case-insensitively on vendor name or invoice number.
	ListInvoices(ctx context.Context, search string, limit int) ([]InvoiceRow, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type analyticsService struct {
	pool *pgxpool.Pool
}

// NewAnalyticsService constructs an AnalyticsService backed by the given pool.
func NewAnalyticsService(pool *pgxpool.Pool) AnalyticsService {
	return &analyticsService{pool: pool}
}

// ── GetSummaryStats ───────────────────────────────────────────────────────────

func (s *analyticsService) GetSummaryStats(ctx context.Context) (*SummaryStats, error) {
	const q = `
		SELECT COUNT(DISTINCT invoice_id),
		       COALESCE(SUM(invoice_total), 0),
		       COALESCE(AVG(invoice_total), 0),
		       (SELECT COUNT(DISTINCT id) FROM documents)
		FROM invoices
		WHERE invoice_total IS NOT NULL`

	stats := &SummaryStats{}
	if err := s.pool.QueryRow(ctx, q).Scan(
		&stats.TotalInvoices, &stats.TotalSpend, &stats.AvgInvoiceValue, &stats.DocumentsUploaded,
	); err != nil {
		return nil, fmt.Errorf("failed to query summary stats: %w", err)
	}
	return stats, nil
}

// ── GetMonthlyTrend ───────────────────────────────────────────────────────────

func (s *analyticsService) GetMonthlyTrend(ctx context.Context, limit int) ([]TrendPoint, error) {
	const q = `
		SELECT to_char(invoice_date, 'YYYY-MM') AS month,
		       SUM(invoice_total) AS value,
		       COUNT(DISTINCT invoice_id) AS count
		FROM invoices
		WHERE invoice_date IS NOT NULL
		  AND invoice_total IS NOT NULL
		GROUP BY to_char(invoice_date, 'YYYY-MM')
		ORDER BY month DESC
		LIMIT $1`

	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trend: %w", err)
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Month, &p.Value, &p.Count); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly trend row iteration error: %w", err)
	}
	return points, nil
}

// ── GetTopVendors ─────────────────────────────────────────────────────────────

func (s *analyticsService) GetTopVendors(ctx context.Context, n int) ([]VendorSpend, error) {
	// Secondary sort on v.id keeps equal-spend vendors in insertion order.
	const q = `
		SELECT v.name, SUM(i.invoice_total) AS spend
		FROM vendors v
		JOIN invoices i ON v.id = i.vendor_id
		WHERE i.invoice_total IS NOT NULL
		GROUP BY v.id, v.name
		ORDER BY spend DESC, v.id ASC
		LIMIT $1`

	rows, err := s.pool.Query(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top vendors: %w", err)
	}
	defer rows.Close()

	var vendors []VendorSpend
	for rows.Next() {
		var v VendorSpend
		if err := rows.Scan(&v.Vendor, &v.Spend); err != nil {
			return nil, fmt.Errorf("failed to scan vendor spend: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top vendors row iteration error: %w", err)
	}
	return vendors, nil
}

// ── GetCategorySpend ──────────────────────────────────────────────────────────

func (s *analyticsService) GetCategorySpend(ctx context.Context) ([]CategorySpend, error) {
	q := fmt.Sprintf(`
		SELECT %s AS category,
		       SUM(i.invoice_total) AS spend
		FROM invoices i
		JOIN vendors v ON i.vendor_id = v.id
		WHERE i.invoice_total IS NOT NULL
		GROUP BY category
		ORDER BY spend DESC`, categoryCaseExpr("v.name"))

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query category spend: %w", err)
	}
	defer rows.Close()

	var categories []CategorySpend
	for rows.Next() {
		var c CategorySpend
		if err := rows.Scan(&c.Category, &c.Spend); err != nil {
			return nil, fmt.Errorf("failed to scan category spend: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category spend row iteration error: %w", err)
	}
	return categories, nil
}

// ── GetCashOutflowForecast ────────────────────────────────────────────────────

// GetCashOutflowForecast resolves each invoice's effective due month in
// Go rather than SQL so the bucketing rule stays a single testable
// function. Rows carrying neither a due date nor an invoice date are
// skipped: they cannot be placed on a timeline.
func (s *analyticsService) GetCashOutflowForecast(ctx context.Context, limit int) ([]OutflowPoint, error) {
	const q = `
		SELECT pt.due_date, i.invoice_date, i.invoice_total
		FROM invoices i
		LEFT JOIN payment_terms pt ON i.id = pt.invoice_id
		WHERE i.invoice_total IS NOT NULL`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash outflow: %w", err)
	}
	defer rows.Close()

	buckets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var dueDate, invoiceDate *time.Time
		var total decimal.Decimal
		if err := rows.Scan(&dueDate, &invoiceDate, &total); err != nil {
			return nil, fmt.Errorf("failed to scan outflow row: %w", err)
		}
		month, ok := effectiveDueMonth(dueDate, invoiceDate)
		if !ok {
			continue
		}
		buckets[month] = buckets[month].Add(total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cash outflow row iteration error: %w", err)
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)
	if limit > 0 && len(months) > limit {
		months = months[:limit]
	}

	points := make([]OutflowPoint, 0, len(months))
	for _, m := range months {
		points = append(points, OutflowPoint{Month: m, Amount: buckets[m]})
	}
	return points, nil
}

// ── ListInvoices ──────────────────────────────────────────────────────────────

func (s *analyticsService) ListInvoices(ctx context.Context, search string, limit int) ([]InvoiceRow, error) {
	q := `
		SELECT DISTINCT i.id, i.invoice_id, i.invoice_date, i.invoice_total,
		       i.currency_symbol, v.name, pt.due_date
		FROM invoices i
		LEFT JOIN vendors v ON i.vendor_id = v.id
		LEFT JOIN payment_terms pt ON i.id = pt.invoice_id`

	var args []any
	if search != "" {
		args = append(args, "%"+search+"%")
		q += fmt.Sprintf(" WHERE (v.name ILIKE $%d OR i.invoice_id ILIKE $%d)", len(args), len(args))
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY i.invoice_date DESC NULLS LAST LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var invoices []InvoiceRow
	for rows.Next() {
		var row InvoiceRow
		var invoiceDate, dueDate *time.Time
		if err := rows.Scan(
			&row.ID, &row.InvoiceNumber, &invoiceDate, &row.Amount,
			&row.Currency, &row.Vendor, &dueDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		if invoiceDate != nil {
			d := invoiceDate.Format("2006-01-02")
			row.InvoiceDate = &d
		}
		row.Status = deriveStatus(dueDate, now)
		if row.Vendor != nil {
			row.Category = ClassifyVendor(*row.Vendor)
		} else {
			row.Category = CategoryOther
		}
		invoices = append(invoices, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoice listing row iteration error: %w", err)
	}
	return invoices, nil
}
