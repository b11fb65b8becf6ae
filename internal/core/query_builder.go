package core

// QueryTemplate is a fully resolved aggregation selected by intent.
// SQL is fixed and parameter-free: user text selects a template through
// the classifier's boolean substring tests but is never interpolated
// into the query itself.
type QueryTemplate struct {
	Intent Intent
	SQL    string
}

// queryTemplates enumerates the pre-validated aggregations the chat
// feature can run. Note the deliberate asymmetries: OVERDUE_INVOICES
// requires a payment term (invoices without one are excluded, unlike
// the listing status rule, which shows them as pending), and
// INVOICE_COUNT counts every invoice row regardless of a null total
// (unlike the summary stats).
var queryTemplates = map[Intent]QueryTemplate{
	IntentTotalSpend: {
		Intent: IntentTotalSpend,
		SQL: `SELECT SUM(invoice_total) AS total_spend
FROM invoices
WHERE invoice_total IS NOT NULL`,
	},
	IntentTopVendors: {
		Intent: IntentTopVendors,
		SQL: `SELECT v.name AS vendor, SUM(i.invoice_total) AS total_spend
FROM vendors v
JOIN invoices i ON v.id = i.vendor_id
GROUP BY v.name
ORDER BY total_spend DESC NULLS LAST
LIMIT 5`,
	},
	IntentOverdueInvoices: {
		Intent: IntentOverdueInvoices,
		SQL: `SELECT DISTINCT v.name AS vendor, i.invoice_id, i.invoice_total
FROM invoices i
JOIN vendors v ON i.vendor_id = v.id
JOIN payment_terms pt ON i.id = pt.invoice_id
WHERE pt.due_date < CURRENT_DATE`,
	},
	IntentInvoiceCount: {
		Intent: IntentInvoiceCount,
		SQL: `SELECT COUNT(DISTINCT id) AS total_invoices
FROM invoices`,
	},
	IntentRecentInvoices: {
		Intent: IntentRecentInvoices,
		SQL: `SELECT DISTINCT v.name AS vendor, i.invoice_total AS amount, i.invoice_date
FROM invoices i
JOIN vendors v ON i.vendor_id = v.id
ORDER BY i.invoice_date DESC NULLS LAST
LIMIT 10`,
	},
}

// BuildQuery returns the aggregation template for a classified intent.
// Unknown intents resolve to the recent-invoices template, mirroring
// the classifier's fallback.
func BuildQuery(intent Intent) QueryTemplate {
	if t, ok := queryTemplates[intent]; ok {
		return t
	}
	return queryTemplates[IntentRecentInvoices]
}
