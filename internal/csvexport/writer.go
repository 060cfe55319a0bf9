package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"medibill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (12 columns).
var columns = []string{
	"Invoice Number",
	"Patient ID",
	"Patient Name",
	"Clinic",
	"Bill Date",
	"Due Date",
	"Total",
	"Paid",
	"Balance",
	"Payment Method",
	"Services",
	"Status",
}

// Writer wraps csv.Writer for exporting invoice table rows as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows writes one CSV record per rendered invoice row.
func (w *Writer) WriteRows(rows []domain.RenderRow) error {
	for i := range rows {
		if err := w.csv.Write(rowToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func rowToRecord(r *domain.RenderRow) []string {
	return []string{
		r.InvoiceNumber,
		r.PatientID,
		r.PatientName,
		r.ClinicName,
		r.BillDate,
		r.DueDate,
		r.Total,
		r.PaidAmount,
		r.Balance,
		r.PaymentMethod,
		strings.Join(r.Services, "; "),
		r.StatusLabel,
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a label for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized listing filename.
// Format: {sanitized_label}_{YYYY-MM-DD}.csv
func BuildFilename(label string, now time.Time) string {
	sanitized := SanitizeFilename(label)
	if sanitized == "" {
		sanitized = "invoices"
	}
	return fmt.Sprintf("%s_%s.csv", sanitized, now.Format(domain.DateLayout))
}
