package noop

import (
	"context"

	"go.uber.org/zap"

	"medibill/internal/domain"
	"medibill/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a Notifier that only logs notices.
func NewNoopNotifier() port.Notifier {
	return noopNotifier{}
}

func (noopNotifier) Notify(_ context.Context, notice domain.Notice) error {
	zap.L().Info("[NOOP NOTIFY] billing notice",
		zap.String("level", string(notice.Level)),
		zap.String("code", notice.Code),
		zap.String("message", notice.Message),
	)
	return nil
}
