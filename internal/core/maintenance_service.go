package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MaintenanceService owns the data-hygiene operations run from the CLI.
type MaintenanceService interface {
	// RemoveDuplicateInvoices deletes every invoice row sharing an
	// invoice number with an earlier row, keeping the lowest id per
	// invoice_id. Dependent payment terms and line items go with them
	// (ON DELETE CASCADE). Returns the number of rows removed.
	RemoveDuplicateInvoices(ctx context.Context) (int64, error)

	// TableCounts reports row counts for the tables the dashboard reads.
	TableCounts(ctx context.Context) (map[string]int64, error)
}

type maintenanceService struct {
	pool *pgxpool.Pool
}

// NewMaintenanceService constructs a MaintenanceService backed by the given pool.
func NewMaintenanceService(pool *pgxpool.Pool) MaintenanceService {
	return &maintenanceService{pool: pool}
}

func (s *maintenanceService) RemoveDuplicateInvoices(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM invoices
		WHERE id NOT IN (
			SELECT MIN(id)
			FROM invoices
			GROUP BY invoice_id
		)`)
	if err != nil {
		return 0, fmt.Errorf("failed to remove duplicate invoices: %w", err)
	}
	return tag.RowsAffected(), nil
}

// countedTables is a fixed list; names are never taken from input.
var countedTables = []string{"invoices", "vendors", "payment_terms", "documents"}

func (s *maintenanceService) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(countedTables))
	for _, table := range countedTables {
		var n int64
		if err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
