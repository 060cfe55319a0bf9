package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medibill/internal/billing"
	"medibill/internal/domain"
	"medibill/internal/service"
)

// MockBillingService is a mock implementation of service.BillingService.
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) ListInvoices(ctx context.Context, p domain.Principal, input service.ListInvoicesInput) (*service.InvoiceListing, error) {
	args := m.Called(ctx, p, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceListing), args.Error(1)
}

func (m *MockBillingService) Refresh(ctx context.Context, p domain.Principal) (*service.RefreshResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RefreshResult), args.Error(1)
}

func (m *MockBillingService) GetInvoice(ctx context.Context, p domain.Principal, id string) (*domain.DetailView, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetailView), args.Error(1)
}

func (m *MockBillingService) ExportInvoice(ctx context.Context, p domain.Principal, id string) (*service.ExportResult, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockBillingService) ExportListingCSV(ctx context.Context, p domain.Principal, q billing.Query) (*domain.ExportDocument, error) {
	args := m.Called(ctx, p, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportDocument), args.Error(1)
}

func (m *MockBillingService) GetStats(ctx context.Context, p domain.Principal) (*service.StatsResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatsResult), args.Error(1)
}

func (m *MockBillingService) ListClinics(ctx context.Context, p domain.Principal) (*service.ClinicList, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClinicList), args.Error(1)
}
