// Package xlsxexport renders a single invoice as a two-column spreadsheet.
package xlsxexport

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"medibill/internal/billing"
	"medibill/internal/domain"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the name of the single sheet in the workbook.
const SheetName = "Invoice"

// Exporter builds invoice workbooks.
type Exporter struct{}

// NewExporter creates an Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Filename returns Invoice_<number>_<patient name with spaces as underscores>.xlsx.
func Filename(inv domain.Invoice) string {
	return fmt.Sprintf("Invoice_%s_%s.xlsx", inv.InvoiceNumber, strings.ReplaceAll(inv.PatientName, " ", "_"))
}

// Pairs returns the key/value rows written to the sheet, in order.
func Pairs(inv domain.Invoice) [][2]any {
	pairs := [][2]any{
		{"Invoice Number", inv.InvoiceNumber},
		{"Patient Name", inv.PatientName},
		{"Patient ID", inv.PatientID},
		{"Clinic", inv.ClinicName},
		{"Total Amount", inv.Total},
		{"Paid Amount", inv.PaidAmount},
		{"Balance", inv.Balance()},
		{"Payment Method", inv.PaymentMethod},
		{"Status", strings.ToUpper(string(inv.Status))},
		{"Bill Date", billing.FormatDate(inv.BillDate)},
		{"Due Date", billing.FormatDate(inv.DueDate)},
	}
	for i, svc := range inv.Services {
		pairs = append(pairs, [2]any{fmt.Sprintf("Service %d", i+1), svc})
	}
	return append(pairs, [2]any{"Description", inv.Description})
}

// Export assembles the workbook in memory. On error no document is returned.
func (e *Exporter) Export(inv domain.Invoice) (*domain.ExportDocument, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("creating money style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &[]any{"Field", "Value"}); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "B1", header); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	for i, pair := range Pairs(inv) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]any{pair[0], pair[1]}); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
		if _, isAmount := pair[1].(float64); isAmount {
			valueCell, _ := excelize.CoordinatesToCellName(2, i+2)
			if err := f.SetCellStyle(SheetName, valueCell, valueCell, money); err != nil {
				return nil, fmt.Errorf("styling row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 40); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}

	return &domain.ExportDocument{
		Filename:    Filename(inv),
		ContentType: ContentType,
		Data:        buf.Bytes(),
	}, nil
}
