package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// The analytics export wraps almost every scalar in {"value": ...} and
// uses Mongo extended JSON for dates and longs. The extraction pipeline
// is not consistent about the wrapping, so the flex types below accept
// both the wrapped and the bare form and treat anything unparseable as
// absent rather than failing the whole document.

// unwrapValue strips a single {"value": ...} layer if present.
func unwrapValue(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return b
	}
	var w struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &w); err != nil || w.Value == nil {
		return nil
	}
	return bytes.TrimSpace(w.Value)
}

// flexString holds an optionally wrapped string; bare numbers are
// accepted and rendered as their literal text.
type flexString struct {
	Value *string
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = unwrapValue(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.Value = &s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		v := n.String()
		f.Value = &v
	}
	return nil
}

// flexDecimal holds an optionally wrapped monetary amount given as a
// number or numeric string. Unparseable values decode as null, the
// same leniency the ingestion has always had.
type flexDecimal struct {
	Value decimal.NullDecimal
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	b = unwrapValue(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var raw string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(b)
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		f.Value = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	return nil
}

// flexDate holds an optionally wrapped YYYY-MM-DD date string.
type flexDate struct {
	Value *time.Time
}

func (f *flexDate) UnmarshalJSON(b []byte) error {
	b = unwrapValue(b)
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		f.Value = &t
	}
	return nil
}

// mongoDate decodes {"$date": "<RFC 3339>"}.
type mongoDate struct {
	Value *time.Time
}

func (m *mongoDate) UnmarshalJSON(b []byte) error {
	var w struct {
		Date string `json:"$date"`
	}
	if err := json.Unmarshal(b, &w); err != nil || w.Date == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, w.Date); err == nil {
		m.Value = &t
	}
	return nil
}

// mongoLong decodes {"$numberLong": "123"} or a bare number.
type mongoLong struct {
	Value int64
}

func (m *mongoLong) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '{' {
		var w struct {
			NumberLong string `json:"$numberLong"`
		}
		if err := json.Unmarshal(b, &w); err != nil {
			return nil
		}
		if n, err := strconv.ParseInt(w.NumberLong, 10, 64); err == nil {
			m.Value = n
		}
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		m.Value = n
	}
	return nil
}

// flexInt holds an optionally wrapped integer.
type flexInt struct {
	Value *int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = unwrapValue(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		f.Value = &n
	}
	return nil
}

// wrapped is a {"value": T} envelope whose payload may be absent.
type wrapped[T any] struct {
	Value *T `json:"value"`
}

// ── Export document shape ─────────────────────────────────────────────────────

// exportDocument is one entry of the document analytics JSON export.
type exportDocument struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"`
	FilePath       *string   `json:"filePath"`
	FileSize       mongoLong `json:"fileSize"`
	FileType       *string   `json:"fileType"`
	Status         *string   `json:"status"`
	OrganizationID *string   `json:"organizationId"`
	DepartmentID   *string   `json:"departmentId"`
	UploadedByID   *string   `json:"uploadedById"`
	IsValidated    bool      `json:"isValidatedByHuman"`
	CreatedAt      mongoDate `json:"createdAt"`
	UpdatedAt      mongoDate `json:"updatedAt"`
	ProcessedAt    mongoDate `json:"processedAt"`
	AnalyticsID    *string   `json:"analyticsId"`
	ExtractedData  struct {
		LLMData llmData `json:"llmData"`
	} `json:"extractedData"`
}

type llmData struct {
	Vendor       wrapped[vendorData]      `json:"vendor"`
	Customer     wrapped[customerData]    `json:"customer"`
	Invoice      wrapped[invoiceData]     `json:"invoice"`
	Summary      wrapped[summaryData]     `json:"summary"`
	PaymentTerms wrapped[paymentTermData] `json:"paymentTerms"`
	LineItems    wrapped[lineItemsData]   `json:"lineItems"`
}

type vendorData struct {
	VendorName        flexString `json:"vendorName"`
	VendorAddress     flexString `json:"vendorAddress"`
	VendorTaxID       flexString `json:"vendorTaxId"`
	VendorPartyNumber flexString `json:"vendorPartyNumber"`
}

type customerData struct {
	CustomerName    flexString `json:"customerName"`
	CustomerAddress flexString `json:"customerAddress"`
	CustomerTaxID   flexString `json:"customerTaxId"`
}

type invoiceData struct {
	InvoiceID    flexString `json:"invoiceId"`
	InvoiceDate  flexDate   `json:"invoiceDate"`
	DeliveryDate flexDate   `json:"deliveryDate"`
}

type summaryData struct {
	DocumentType   flexString  `json:"documentType"`
	CurrencySymbol flexString  `json:"currencySymbol"`
	SubTotal       flexDecimal `json:"subTotal"`
	TotalTax       flexDecimal `json:"totalTax"`
	InvoiceTotal   flexDecimal `json:"invoiceTotal"`
}

type paymentTermData struct {
	DueDate      flexDate   `json:"dueDate"`
	PaymentTerms flexString `json:"paymentTerms"`
	NetDays      flexInt    `json:"netDays"`
}

type lineItemsData struct {
	Items wrapped[[]lineItemData] `json:"items"`
}

type lineItemData struct {
	SrNo         flexInt     `json:"srNo"`
	Description  flexString  `json:"description"`
	Quantity     flexDecimal `json:"quantity"`
	UnitPrice    flexDecimal `json:"unitPrice"`
	TotalPrice   flexDecimal `json:"totalPrice"`
	Sachkonto    flexString  `json:"Sachkonto"`
	BUSchluessel flexString  `json:"BUSchluessel"`
	VATRate      flexDecimal `json:"vatRate"`
	VATAmount    flexDecimal `json:"vatAmount"`
}
