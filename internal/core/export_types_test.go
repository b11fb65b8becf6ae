package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFlexString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  *string
	}{
		{"wrapped", `{"value": "hello"}`, strPtr("hello")},
		{"bare", `"hello"`, strPtr("hello")},
		{"wrapped null", `{"value": null}`, nil},
		{"null", `null`, nil},
		{"bare number", `42`, strPtr("42")},
		{"missing value key", `{"other": 1}`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f flexString
			if err := json.Unmarshal([]byte(tc.input), &f); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			switch {
			case tc.want == nil && f.Value != nil:
				t.Errorf("got %q, want nil", *f.Value)
			case tc.want != nil && (f.Value == nil || *f.Value != *tc.want):
				t.Errorf("got %v, want %q", f.Value, *tc.want)
			}
		})
	}
}

func TestFlexDecimal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"wrapped number", `{"value": 1234.56}`, "1234.56", true},
		{"wrapped string", `{"value": "99.90"}`, "99.9", true},
		{"bare number", `250`, "250", true},
		{"null", `null`, "", false},
		{"garbage string", `{"value": "n/a"}`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f flexDecimal
			if err := json.Unmarshal([]byte(tc.input), &f); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if f.Value.Valid != tc.valid {
				t.Fatalf("Valid = %v, want %v", f.Value.Valid, tc.valid)
			}
			if tc.valid && f.Value.Decimal.String() != tc.want {
				t.Errorf("got %s, want %s", f.Value.Decimal, tc.want)
			}
		})
	}
}

func TestMongoDateAndLong(t *testing.T) {
	var d mongoDate
	if err := json.Unmarshal([]byte(`{"$date": "2024-05-01T10:30:00Z"}`), &d); err != nil {
		t.Fatalf("unmarshal date: %v", err)
	}
	if d.Value == nil || d.Value.Format("2006-01-02") != "2024-05-01" {
		t.Errorf("mongoDate = %v", d.Value)
	}

	var l mongoLong
	if err := json.Unmarshal([]byte(`{"$numberLong": "204800"}`), &l); err != nil {
		t.Fatalf("unmarshal long: %v", err)
	}
	if l.Value != 204800 {
		t.Errorf("mongoLong = %d, want 204800", l.Value)
	}

	var bare mongoLong
	if err := json.Unmarshal([]byte(`512`), &bare); err != nil {
		t.Fatalf("unmarshal bare long: %v", err)
	}
	if bare.Value != 512 {
		t.Errorf("bare mongoLong = %d, want 512", bare.Value)
	}
}

func TestExportDocumentDecoding(t *testing.T) {
	payload := `[{
		"_id": "doc-001",
		"name": "invoice.pdf",
		"fileSize": {"$numberLong": "204800"},
		"status": "PROCESSED",
		"organizationId": "org-1",
		"createdAt": {"$date": "2024-05-01T10:30:00Z"},
		"extractedData": {
			"llmData": {
				"vendor": {"value": {
					"vendorName": {"value": "Acme Tech GmbH"},
					"vendorTaxId": {"value": "DE123456789"}
				}},
				"invoice": {"value": {
					"invoiceId": {"value": "INV-2024-001"},
					"invoiceDate": {"value": "2024-04-28"}
				}},
				"summary": {"value": {
					"currencySymbol": {"value": "EUR"},
					"invoiceTotal": {"value": 1234.56}
				}},
				"paymentTerms": {"value": {
					"dueDate": {"value": "2024-05-28"},
					"netDays": {"value": 30}
				}},
				"lineItems": {"value": {"items": {"value": [
					{"srNo": {"value": 1}, "description": {"value": "Licences"}, "totalPrice": {"value": 1234.56}}
				]}}}
			}
		}
	}]`

	var docs []exportDocument
	if err := json.Unmarshal([]byte(payload), &docs); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	doc := docs[0]
	if doc.ID != "doc-001" || doc.FileSize.Value != 204800 {
		t.Errorf("document header mismatch: %+v", doc)
	}

	llm := doc.ExtractedData.LLMData
	if llm.Vendor.Value == nil || *llm.Vendor.Value.VendorName.Value != "Acme Tech GmbH" {
		t.Error("vendor name not decoded")
	}
	if llm.Invoice.Value == nil || *llm.Invoice.Value.InvoiceID.Value != "INV-2024-001" {
		t.Error("invoice id not decoded")
	}
	if llm.Summary.Value == nil || !llm.Summary.Value.InvoiceTotal.Value.Valid {
		t.Fatal("invoice total not decoded")
	}
	if !llm.Summary.Value.InvoiceTotal.Value.Decimal.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("invoice total = %s", llm.Summary.Value.InvoiceTotal.Value.Decimal)
	}
	if llm.PaymentTerms.Value == nil || llm.PaymentTerms.Value.DueDate.Value == nil {
		t.Fatal("payment term due date not decoded")
	}
	if got := llm.PaymentTerms.Value.DueDate.Value.Format("2006-01-02"); got != "2024-05-28" {
		t.Errorf("due date = %s", got)
	}
	items := llm.LineItems.Value.Items.Value
	if items == nil || len(*items) != 1 || *(*items)[0].Description.Value != "Licences" {
		t.Error("line items not decoded")
	}
}

func strPtr(s string) *string { return &s }
