package noop

import (
	"context"

	"go.uber.org/zap"

	"github.com/shestoi/ckstore/services/cart/internal/service"
)

// Publisher ничего не отправляет, только пишет debug-лог.
// Для локального запуска без брокера.
type Publisher struct {
	logger *zap.Logger
}

// NewPublisher создаёт no-op publisher
func NewPublisher(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger}
}

// PublishCartUpdated всегда успешен
func (p *Publisher) PublishCartUpdated(ctx context.Context, event service.CartUpdatedEvent) error {
	p.logger.Debug("no-op publisher: cart event dropped",
		zap.String("event_id", event.EventID),
		zap.Int("items", len(event.Order.Items)),
	)
	return nil
}

// Close ничего не делает
func (p *Publisher) Close() error {
	return nil
}
