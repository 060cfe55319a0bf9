package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"medibill/internal/port"
)

// MockExportArchive is a mock implementation of port.ExportArchive.
type MockExportArchive struct {
	mock.Mock
}

func (m *MockExportArchive) Put(ctx context.Context, obj port.ArchiveObject) (*port.ArchiveReceipt, error) {
	args := m.Called(ctx, obj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ArchiveReceipt), args.Error(1)
}

func (m *MockExportArchive) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, ttl)
	return args.String(0), args.Error(1)
}
