package port

import (
	"context"

	"medibill/internal/domain"
)

// Notifier delivers failure notices outside the request that raised them.
type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice) error
}
