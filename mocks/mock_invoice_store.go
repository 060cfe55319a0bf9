package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medibill/internal/domain"
	"medibill/internal/port"
)

// MockInvoiceStore is a mock implementation of port.InvoiceStore.
type MockInvoiceStore struct {
	mock.Mock
}

func (m *MockInvoiceStore) List(ctx context.Context, scope port.InvoiceScope) ([]domain.RawInvoice, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawInvoice), args.Error(1)
}

func (m *MockInvoiceStore) Get(ctx context.Context, scope port.InvoiceScope, id string) (domain.RawInvoice, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RawInvoice), args.Error(1)
}

// MockClinicStore is a mock implementation of port.ClinicStore.
type MockClinicStore struct {
	mock.Mock
}

func (m *MockClinicStore) ListClinicNames(ctx context.Context, scope port.InvoiceScope) ([]string, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
