package core

import "github.com/shopspring/decimal"

// Intent identifies which canned analytical query a free-text question
// resolves to. The set is closed: the classifier always lands on one of
// these values.
type Intent string

const (
	IntentTotalSpend      Intent = "TOTAL_SPEND"
	IntentTopVendors      Intent = "TOP_VENDORS"
	IntentOverdueInvoices Intent = "OVERDUE_INVOICES"
	IntentInvoiceCount    Intent = "INVOICE_COUNT"
	IntentRecentInvoices  Intent = "RECENT_INVOICES"
)

// InvoiceStatus is the payment status shown in the invoice listing.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusOverdue InvoiceStatus = "overdue"
	// StatusPaid is part of the status domain but is never derived by
	// ListInvoices — nothing in the dataset records settlement.
	StatusPaid InvoiceStatus = "paid"
)

// SummaryStats is the headline dashboard card data. Invoice count, sum
// and average cover only rows with a non-null total; the document count
// is independent of invoice linkage.
type SummaryStats struct {
	TotalInvoices     int64           `json:"totalInvoices"`
	TotalSpend        decimal.Decimal `json:"totalSpend"`
	AvgInvoiceValue   decimal.Decimal `json:"avgInvoiceValue"`
	DocumentsUploaded int64           `json:"documentsUploaded"`
}

// TrendPoint is one calendar-month bucket of invoice volume.
// Month is formatted YYYY-MM; months absent from the data are omitted,
// not zero-filled.
type TrendPoint struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
	Count int64           `json:"count"`
}

// VendorSpend is one vendor's summed invoice total.
type VendorSpend struct {
	Vendor string          `json:"vendor"`
	Spend  decimal.Decimal `json:"spend"`
}

// CategorySpend is the summed invoice total for one vendor category.
type CategorySpend struct {
	Category string          `json:"category"`
	Spend    decimal.Decimal `json:"spend"`
}

// OutflowPoint is one effective-due-month bucket of forecast cash
// outflow (see effectiveDueMonth for the bucketing rule).
type OutflowPoint struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceRow is one row of the invoice listing. Vendor fields are nil
// for invoices without a matching vendor (left-join semantics). Amounts
// keep the currency symbol captured at extraction time — no conversion
// is applied, so aggregates over mixed currencies mix units.
type InvoiceRow struct {
	ID            int64               `json:"id"`
	InvoiceNumber *string             `json:"invoiceNumber"`
	InvoiceDate   *string             `json:"invoiceDate"`
	Amount        decimal.NullDecimal `json:"amount"`
	Currency      *string             `json:"currency"`
	Vendor        *string             `json:"vendor"`
	Status        InvoiceStatus       `json:"status"`
	Category      string              `json:"category"`
}

// ChatResult is the structured answer to a free-text question: the
// query that was executed and its rows in result order. Execution
// failures are reported in Error rather than raised, so a chat request
// always yields a renderable payload.
type ChatResult struct {
	Query   string           `json:"query"`
	Results []map[string]any `json:"results"`
	Error   string           `json:"error,omitempty"`
}
