package port

import (
	"context"

	"github.com/google/uuid"

	"medibill/internal/domain"
)

// InvoiceScope restricts a store query to the records a caller may see.
type InvoiceScope struct {
	AllTenants bool
	TenantID   uuid.UUID
	PatientID  string // non-empty restricts to one patient's invoices
}

// Key identifies the scope for per-scope caches.
func (s InvoiceScope) Key() string {
	tenant := s.TenantID.String()
	if s.AllTenants {
		tenant = "*"
	}
	return tenant + "/" + s.PatientID
}

// InvoiceStore reads raw invoice documents from the record store.
type InvoiceStore interface {
	List(ctx context.Context, scope InvoiceScope) ([]domain.RawInvoice, error)
	Get(ctx context.Context, scope InvoiceScope, id string) (domain.RawInvoice, error)
}

// ClinicStore reads clinic names for the clinic filter.
type ClinicStore interface {
	ListClinicNames(ctx context.Context, scope InvoiceScope) ([]string, error)
}
