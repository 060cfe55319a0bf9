package port

import "medibill/internal/domain"

// InvoiceExporter renders a single invoice as a downloadable document.
type InvoiceExporter interface {
	Export(inv domain.Invoice) (*domain.ExportDocument, error)
}
