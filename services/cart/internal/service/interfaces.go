package service

import "context"

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=EventPublisher --dir=. --output=./mocks --outpkg=mocks

// EventPublisher доставляет события корзины во внешний брокер.
// Реализации: dapr (HTTP sidecar), kafka, noop.
type EventPublisher interface {
	// PublishCartUpdated отправляет событие один раз, без повторов.
	// Ошибка означает, что доставка не подтверждена.
	PublishCartUpdated(ctx context.Context, event CartUpdatedEvent) error
}
