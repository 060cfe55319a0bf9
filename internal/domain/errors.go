package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInsufficientRole = errors.New("insufficient role for this action")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrInvalidSortKey   = errors.New("invalid sort key")
	ErrStoreRejected    = errors.New("invoice store rejected the request")
	ErrStoreUnavailable = errors.New("invoice store unavailable")
	ErrExportFailed     = errors.New("invoice export failed")
	ErrSessionNotReady  = errors.New("session is not initialized")
)
