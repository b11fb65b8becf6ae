package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"invoice-dashboard/internal/logger"
)

// IngestReport summarises one ingestion run.
type IngestReport struct {
	Documents int // documents stored
	Invoices  int // invoice rows stored
	Vendors   int // vendor rows stored
	Skipped   int // export entries dropped because of errors
}

// IngestService loads the document analytics JSON export into the
// invoice store. Each export entry is written in its own transaction;
// a malformed entry is logged and skipped so one bad document never
// aborts the run.
type IngestService interface {
	IngestFile(ctx context.Context, path string) (*IngestReport, error)
}

type ingestService struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewIngestService constructs an IngestService backed by the given pool.
func NewIngestService(pool *pgxpool.Pool) IngestService {
	return &ingestService{pool: pool, log: logger.WithComponent("ingest")}
}

func (s *ingestService) IngestFile(ctx context.Context, path string) (*IngestReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}

	var docs []exportDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse export file: %w", err)
	}

	report := &IngestReport{}
	for _, doc := range docs {
		if err := s.ingestDocument(ctx, doc, report); err != nil {
			s.log.Warn().Err(err).Str("document_id", doc.ID).Msg("skipping export entry")
			report.Skipped++
			continue
		}
		report.Documents++
	}

	s.log.Info().
		Int("documents", report.Documents).
		Int("invoices", report.Invoices).
		Int("vendors", report.Vendors).
		Int("skipped", report.Skipped).
		Msg("ingestion completed")
	return report, nil
}

// ingestDocument writes one export entry and everything extracted from
// it inside a single transaction.
func (s *ingestService) ingestDocument(ctx context.Context, doc exportDocument, report *IngestReport) error {
	if doc.ID == "" {
		return fmt.Errorf("export entry has no _id")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.insertOwnership(ctx, tx, doc); err != nil {
		return err
	}
	if err := s.insertDocument(ctx, tx, doc); err != nil {
		return err
	}

	llm := doc.ExtractedData.LLMData

	vendorID, err := s.insertVendor(ctx, tx, llm.Vendor.Value)
	if err != nil {
		return err
	}
	if vendorID != nil {
		report.Vendors++
	}

	customerID, err := s.insertCustomer(ctx, tx, llm.Customer.Value)
	if err != nil {
		return err
	}

	invoiceID, err := s.insertInvoice(ctx, tx, doc, vendorID, customerID)
	if err != nil {
		return err
	}
	report.Invoices++

	if err := s.insertPaymentTerm(ctx, tx, invoiceID, llm.PaymentTerms.Value); err != nil {
		return err
	}
	if err := s.insertLineItems(ctx, tx, invoiceID, llm.LineItems.Value); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// insertOwnership records the organization, department, and uploader
// referenced by a document. These are skeleton rows: the export only
// carries their identifiers.
func (s *ingestService) insertOwnership(ctx context.Context, tx pgx.Tx, doc exportDocument) error {
	if doc.OrganizationID != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO organizations (id, name)
			VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING`,
			*doc.OrganizationID, fmt.Sprintf("Organization %s", *doc.OrganizationID),
		); err != nil {
			return fmt.Errorf("insert organization: %w", err)
		}
	}
	if doc.DepartmentID != nil && doc.OrganizationID != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO departments (id, organization_id, name)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING`,
			*doc.DepartmentID, *doc.OrganizationID, fmt.Sprintf("Department %s", *doc.DepartmentID),
		); err != nil {
			return fmt.Errorf("insert department: %w", err)
		}
	}
	if doc.UploadedByID != nil {
		if _, err := tx.Exec(ctx, `
			INSERT INTO users (id, name)
			VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING`,
			*doc.UploadedByID, fmt.Sprintf("User %s", *doc.UploadedByID),
		); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
	}
	return nil
}

func (s *ingestService) insertDocument(ctx context.Context, tx pgx.Tx, doc exportDocument) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO documents (
			id, name, file_path, file_size, file_type, status,
			organization_id, department_id, uploaded_by_id,
			is_validated_by_human, created_at, updated_at, processed_at, analytics_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING`,
		doc.ID, doc.Name, doc.FilePath, doc.FileSize.Value, doc.FileType, doc.Status,
		doc.OrganizationID, doc.DepartmentID, doc.UploadedByID,
		doc.IsValidated, doc.CreatedAt.Value, doc.UpdatedAt.Value, doc.ProcessedAt.Value, doc.AnalyticsID,
	); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *ingestService) insertVendor(ctx context.Context, tx pgx.Tx, v *vendorData) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	name := "Unknown Vendor"
	if v.VendorName.Value != nil {
		name = *v.VendorName.Value
	}

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO vendors (name, address, tax_id, party_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, v.VendorAddress.Value, v.VendorTaxID.Value, v.VendorPartyNumber.Value,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert vendor %q: %w", name, err)
	}
	return &id, nil
}

func (s *ingestService) insertCustomer(ctx context.Context, tx pgx.Tx, c *customerData) (*int64, error) {
	if c == nil || c.CustomerName.Value == nil {
		return nil, nil
	}

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO customers (name, address, tax_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		*c.CustomerName.Value, c.CustomerAddress.Value, c.CustomerTaxID.Value,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert customer %q: %w", *c.CustomerName.Value, err)
	}
	return &id, nil
}

func (s *ingestService) insertInvoice(ctx context.Context, tx pgx.Tx, doc exportDocument, vendorID, customerID *int64) (int64, error) {
	llm := doc.ExtractedData.LLMData

	var inv invoiceData
	if llm.Invoice.Value != nil {
		inv = *llm.Invoice.Value
	}
	var sum summaryData
	if llm.Summary.Value != nil {
		sum = *llm.Summary.Value
	}

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO invoices (
			document_id, invoice_id, invoice_date, delivery_date,
			vendor_id, customer_id, document_type, currency_symbol,
			sub_total, total_tax, invoice_total
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		doc.ID, inv.InvoiceID.Value, inv.InvoiceDate.Value, inv.DeliveryDate.Value,
		vendorID, customerID, sum.DocumentType.Value, sum.CurrencySymbol.Value,
		sum.SubTotal.Value, sum.TotalTax.Value, sum.InvoiceTotal.Value,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert invoice for document %s: %w", doc.ID, err)
	}
	return id, nil
}

func (s *ingestService) insertPaymentTerm(ctx context.Context, tx pgx.Tx, invoiceID int64, pt *paymentTermData) error {
	if pt == nil {
		return nil
	}
	if pt.DueDate.Value == nil && pt.PaymentTerms.Value == nil && pt.NetDays.Value == nil {
		return nil
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO payment_terms (invoice_id, due_date, payment_terms, net_days)
		VALUES ($1, $2, $3, $4)`,
		invoiceID, pt.DueDate.Value, pt.PaymentTerms.Value, pt.NetDays.Value,
	); err != nil {
		return fmt.Errorf("insert payment term: %w", err)
	}
	return nil
}

func (s *ingestService) insertLineItems(ctx context.Context, tx pgx.Tx, invoiceID int64, items *lineItemsData) error {
	if items == nil || items.Items.Value == nil {
		return nil
	}
	for _, item := range *items.Items.Value {
		if _, err := tx.Exec(ctx, `
			INSERT INTO line_items (
				invoice_id, sr_no, description, quantity, unit_price,
				total_price, sachkonto, bu_schluessel, vat_rate, vat_amount
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			invoiceID, item.SrNo.Value, item.Description.Value,
			item.Quantity.Value, item.UnitPrice.Value, item.TotalPrice.Value,
			item.Sachkonto.Value, item.BUSchluessel.Value,
			item.VATRate.Value, item.VATAmount.Value,
		); err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	return nil
}
