package mocks

import (
	"github.com/stretchr/testify/mock"

	"medibill/internal/domain"
)

// MockInvoiceExporter is a mock implementation of port.InvoiceExporter.
type MockInvoiceExporter struct {
	mock.Mock
}

func (m *MockInvoiceExporter) Export(inv domain.Invoice) (*domain.ExportDocument, error) {
	args := m.Called(inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportDocument), args.Error(1)
}
