package core

import "time"

// deriveStatus implements the listing status rule: an invoice is
// overdue only when an explicit due date lies strictly before today's
// date; everything else, including invoices with no payment term at
// all, is pending. The chat OVERDUE_INVOICES query uses a stricter
// rule that excludes invoices without payment terms entirely; the two
// consumers are intentionally not unified.
func deriveStatus(dueDate *time.Time, now time.Time) InvoiceStatus {
	if dueDate == nil {
		return StatusPending
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(today) {
		return StatusOverdue
	}
	return StatusPending
}

// effectiveDueMonth resolves the cash-outflow bucket for an invoice:
// the explicit due date when a payment term exists, otherwise the
// invoice date plus 30 days. Rows carrying neither date cannot be
// bucketed and report ok=false.
func effectiveDueMonth(dueDate, invoiceDate *time.Time) (string, bool) {
	switch {
	case dueDate != nil:
		return dueDate.Format("2006-01"), true
	case invoiceDate != nil:
		return invoiceDate.AddDate(0, 0, 30).Format("2006-01"), true
	}
	return "", false
}
