package port

import (
	"context"
	"time"

	"medibill/internal/domain"
)

// ArchiveObject names where an exported document is kept.
type ArchiveObject struct {
	Bucket   string
	Key      string
	Document *domain.ExportDocument
}

// ArchiveReceipt describes a stored export.
type ArchiveReceipt struct {
	Location string
	ETag     string
}

// ExportArchive keeps copies of exported documents and hands out
// time-limited download links to them.
type ExportArchive interface {
	Put(ctx context.Context, obj ArchiveObject) (*ArchiveReceipt, error)
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
