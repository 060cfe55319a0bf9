package domain

import (
	"mime"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day layout used for filters and exports.
const DateLayout = "2006-01-02"

// RawInvoice is an invoice document as returned by the record store.
// Its shape is owned by the store and varies between producers.
type RawInvoice map[string]any

// LineItem is a single billed line on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Total returns quantity × unit price.
func (l LineItem) Total() float64 {
	return l.Quantity * l.UnitPrice
}

// Invoice is the canonical billing record every downstream stage works on.
type Invoice struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patient_id"`
	PatientName   string        `json:"patient_name"`
	ClinicID      string        `json:"clinic_id"`
	ClinicName    string        `json:"clinic_name"`
	InvoiceNumber string        `json:"invoice_number"`
	Total         float64       `json:"total"`
	PaidAmount    float64       `json:"paid_amount"`
	BillDate      time.Time     `json:"bill_date"`
	DueDate       time.Time     `json:"due_date"`
	PaymentMethod string        `json:"payment_method"`
	Services      []string      `json:"services"`
	LineItems     []LineItem    `json:"line_items"`
	Status        InvoiceStatus `json:"status"`
	Description   string        `json:"description,omitempty"`
	CreatedAt     *time.Time    `json:"created_at,omitempty"`
	ApprovedAt    *time.Time    `json:"approved_at,omitempty"`
}

// Balance is the amount still owed. It is always derived, never stored.
func (i Invoice) Balance() float64 {
	return i.Total - i.PaidAmount
}

// Stats holds aggregate counts and revenue over an invoice collection.
type Stats struct {
	Total           int     `json:"total"`
	Paid            int     `json:"paid"`
	Pending         int     `json:"pending"`
	Overdue         int     `json:"overdue"`
	PartiallyPaid   int     `json:"partially_paid"`
	TotalRevenue    float64 `json:"total_revenue"`
	DistinctClinics int     `json:"distinct_clinics"`
}

// FilterSet holds the structured filter clauses. An empty clause matches everything.
type FilterSet struct {
	PatientName   string      `json:"patient_name,omitempty"`
	Clinic        string      `json:"clinic,omitempty"`
	AmountRange   AmountRange `json:"amount_range,omitempty"`
	BillDate      string      `json:"bill_date,omitempty"` // YYYY-MM-DD
	PaymentMethod string      `json:"payment_method,omitempty"`
}

// RenderRow is one display row of the invoice table.
type RenderRow struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	PatientID     string        `json:"patient_id"`
	PatientName   string        `json:"patient_name"`
	ClinicName    string        `json:"clinic_name"`
	BillDate      string        `json:"bill_date"`
	DueDate       string        `json:"due_date"`
	Total         string        `json:"total"`
	PaidAmount    string        `json:"paid_amount"`
	Balance       string        `json:"balance"`
	PaymentMethod string        `json:"payment_method"`
	Services      []string      `json:"services"`
	Status        InvoiceStatus `json:"status"`
	StatusLabel   string        `json:"status_label"`
}

// DetailLineItem is a line item with its computed total for display.
type DetailLineItem struct {
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Total         float64 `json:"total"`
	UnitPriceText string  `json:"unit_price_formatted"`
	TotalText     string  `json:"total_formatted"`
}

// DetailView exposes every invoice field plus display strings for a single invoice.
type DetailView struct {
	Invoice
	Balance        float64          `json:"balance"`
	TotalText      string           `json:"total_formatted"`
	PaidAmountText string           `json:"paid_amount_formatted"`
	BalanceText    string           `json:"balance_formatted"`
	BillDateText   string           `json:"bill_date_formatted"`
	DueDateText    string           `json:"due_date_formatted"`
	CreatedAtText  string           `json:"created_at_formatted,omitempty"`
	ApprovedAtText string           `json:"approved_at_formatted,omitempty"`
	StatusLabel    string           `json:"status_label"`
	LineItemRows   []DetailLineItem `json:"line_item_rows"`
	LineItemsTotal string           `json:"line_items_total_formatted"`
}

// Notice is a transient user-facing notification.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
}

// Principal identifies the caller a billing request is made on behalf of.
type Principal struct {
	TenantID  uuid.UUID `json:"tenant_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      UserRole  `json:"role"`
	PatientID string    `json:"patient_id,omitempty"`
}

// ExportDocument is a fully assembled downloadable file.
type ExportDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ContentDisposition returns the attachment header for the document. Names
// that need it are quoted or RFC 2231 encoded.
func (d *ExportDocument) ContentDisposition() string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename})
}
