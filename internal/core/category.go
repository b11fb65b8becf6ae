package core

import (
	"fmt"
	"strings"
)

// categoryRule assigns a spend category to vendors whose name contains
// any of the listed substrings (case-insensitive).
type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is evaluated in order and the first match wins, so a
// vendor named "Office Tech GmbH" lands in Technology, not Office
// Supplies. Rule order is part of the contract; change with care.
var categoryRules = []categoryRule{
	{category: "Technology", keywords: []string{"Tech", "Software"}},
	{category: "Office Supplies", keywords: []string{"Office", "Supply"}},
	{category: "Travel", keywords: []string{"Travel"}},
}

// CategoryOther is assigned to vendors no rule matches.
const CategoryOther = "Other"

// ClassifyVendor returns the spend category for a vendor name. Every
// vendor maps to exactly one category.
func ClassifyVendor(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// categoryCaseExpr renders the rule table as a SQL CASE expression over
// the given column, so category totals can be grouped store-side with
// the same first-match-wins semantics as ClassifyVendor. Keywords and
// category names come from the fixed table above, never from user input.
func categoryCaseExpr(column string) string {
	var b strings.Builder
	b.WriteString("CASE")
	for _, rule := range categoryRules {
		conds := make([]string, len(rule.keywords))
		for i, kw := range rule.keywords {
			conds[i] = fmt.Sprintf("%s ILIKE '%%%s%%'", column, kw)
		}
		fmt.Fprintf(&b, " WHEN %s THEN '%s'", strings.Join(conds, " OR "), rule.category)
	}
	fmt.Fprintf(&b, " ELSE '%s' END", CategoryOther)
	return b.String()
}
