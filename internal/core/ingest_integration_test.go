package core_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"invoice-dashboard/internal/core"
)

const exportFixture = `[
	{
		"_id": "doc-100",
		"name": "acme-invoice.pdf",
		"fileSize": {"$numberLong": "102400"},
		"fileType": "application/pdf",
		"status": "PROCESSED",
		"organizationId": "org-100",
		"departmentId": "dept-100",
		"uploadedById": "user-100",
		"createdAt": {"$date": "2024-06-01T09:00:00Z"},
		"extractedData": {
			"llmData": {
				"vendor": {"value": {"vendorName": {"value": "Ingested Tech AG"}}},
				"customer": {"value": {"customerName": {"value": "Example Corp"}}},
				"invoice": {"value": {
					"invoiceId": {"value": "ING-001"},
					"invoiceDate": {"value": "2024-05-20"}
				}},
				"summary": {"value": {
					"currencySymbol": {"value": "EUR"},
					"subTotal": {"value": 1000.00},
					"totalTax": {"value": 190.00},
					"invoiceTotal": {"value": 1190.00}
				}},
				"paymentTerms": {"value": {
					"dueDate": {"value": "2024-06-19"},
					"paymentTerms": {"value": "Net 30"},
					"netDays": {"value": 30}
				}},
				"lineItems": {"value": {"items": {"value": [
					{"srNo": {"value": 1}, "description": {"value": "Consulting"}, "totalPrice": {"value": 1190.00}}
				]}}}
			}
		}
	},
	{
		"_id": "doc-101",
		"name": "vendorless.pdf",
		"extractedData": {
			"llmData": {
				"invoice": {"value": {"invoiceId": {"value": "ING-002"}}},
				"summary": {"value": {"invoiceTotal": {"value": "85.50"}}}
			}
		}
	},
	{
		"name": "broken-no-id.pdf"
	}
]`

func TestIngest_IngestFile(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(exportFixture), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	ctx := context.Background()
	report, err := core.NewIngestService(pool).IngestFile(ctx, path)
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}

	if report.Documents != 2 {
		t.Errorf("Documents = %d, want 2", report.Documents)
	}
	if report.Invoices != 2 {
		t.Errorf("Invoices = %d, want 2", report.Invoices)
	}
	if report.Vendors != 1 {
		t.Errorf("Vendors = %d, want 1", report.Vendors)
	}
	// The entry without an _id is skipped, not fatal.
	if report.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", report.Skipped)
	}

	var total string
	var vendorName *string
	err = pool.QueryRow(ctx, `
		SELECT i.invoice_total::text, v.name
		FROM invoices i
		LEFT JOIN vendors v ON i.vendor_id = v.id
		WHERE i.invoice_id = 'ING-001'`).Scan(&total, &vendorName)
	if err != nil {
		t.Fatalf("Failed to query ingested invoice: %v", err)
	}
	if total != "1190.00" {
		t.Errorf("invoice_total = %s, want 1190.00", total)
	}
	if vendorName == nil || *vendorName != "Ingested Tech AG" {
		t.Errorf("vendor = %v, want Ingested Tech AG", vendorName)
	}

	var termCount, itemCount int64
	if err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM payment_terms pt
		JOIN invoices i ON pt.invoice_id = i.id
		WHERE i.invoice_id = 'ING-001'`).Scan(&termCount); err != nil {
		t.Fatalf("Failed to count payment terms: %v", err)
	}
	if termCount != 1 {
		t.Errorf("payment terms = %d, want 1", termCount)
	}
	if err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM line_items li
		JOIN invoices i ON li.invoice_id = i.id
		WHERE i.invoice_id = 'ING-001'`).Scan(&itemCount); err != nil {
		t.Fatalf("Failed to count line items: %v", err)
	}
	if itemCount != 1 {
		t.Errorf("line items = %d, want 1", itemCount)
	}

	// The vendorless entry still produces an invoice with a null vendor.
	var vendorID *int64
	if err := pool.QueryRow(ctx, `SELECT vendor_id FROM invoices WHERE invoice_id = 'ING-002'`).Scan(&vendorID); err != nil {
		t.Fatalf("Failed to query vendorless invoice: %v", err)
	}
	if vendorID != nil {
		t.Errorf("vendor_id = %v, want NULL", *vendorID)
	}
}
