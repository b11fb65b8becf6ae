package core

import "strings"

// intentRule is one ordered classification rule. A rule matches when the
// lower-cased question contains every term in all and, when any is
// non-empty, at least one term in any.
type intentRule struct {
	intent Intent
	all    []string
	any    []string
}

// intentRules is evaluated top to bottom and the first match wins.
// Order is significant: "number of overdue invoices" must resolve to
// OVERDUE_INVOICES, not INVOICE_COUNT.
var intentRules = []intentRule{
	{intent: IntentTotalSpend, any: []string{"total spend", "total amount"}},
	{intent: IntentTopVendors, all: []string{"top", "vendor"}},
	{intent: IntentOverdueInvoices, any: []string{"overdue"}},
	{intent: IntentInvoiceCount, any: []string{"count", "number"}},
}

// ClassifyIntent maps a free-text question to an Intent. Matching is
// case-insensitive and purely substring-based; anything unrecognised
// falls back to IntentRecentInvoices, so classification never fails.
func ClassifyIntent(question string) Intent {
	q := strings.ToLower(question)
	for _, rule := range intentRules {
		if rule.matches(q) {
			return rule.intent
		}
	}
	return IntentRecentInvoices
}

func (r intentRule) matches(q string) bool {
	for _, term := range r.all {
		if !strings.Contains(q, term) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, term := range r.any {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}
