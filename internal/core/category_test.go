package core_test

import (
	"testing"

	"invoice-dashboard/internal/core"
)

func TestClassifyVendor(t *testing.T) {
	cases := []struct {
		vendor string
		want   string
	}{
		{"Acme Tech GmbH", "Technology"},
		{"SOFTWARE HOUSE LTD", "Technology"},
		{"Globex Office Solutions", "Office Supplies"},
		{"Paper Supply Co", "Office Supplies"},
		{"World Travel Agency", "Travel"},
		{"Northwind Trading", core.CategoryOther},
		{"", core.CategoryOther},
	}

	for _, tc := range cases {
		t.Run(tc.vendor, func(t *testing.T) {
			if got := core.ClassifyVendor(tc.vendor); got != tc.want {
				t.Errorf("ClassifyVendor(%q) = %q, want %q", tc.vendor, got, tc.want)
			}
		})
	}
}

func TestClassifyVendor_FirstRuleWins(t *testing.T) {
	// A vendor matching both Technology and Travel keywords lands in
	// Technology because rules apply in declaration order.
	if got := core.ClassifyVendor("Tech Travel Inc"); got != "Technology" {
		t.Errorf("expected Technology for mixed-keyword vendor, got %q", got)
	}
}
