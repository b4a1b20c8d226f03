package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shestoi/ckstore/platform/observability"
	"github.com/shestoi/ckstore/services/cart/internal/service"
)

// MessageWriter часть kafka.Writer, нужная publisher'у
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события корзины в Kafka
type Publisher struct {
	logger *zap.Logger
	writer MessageWriter
	topic  string
}

// NewPublisher создаёт Publisher поверх writer (обычно platform/kafka.NewWriter)
func NewPublisher(logger *zap.Logger, writer MessageWriter, topic string) *Publisher {
	return &Publisher{
		logger: logger,
		writer: writer,
		topic:  topic,
	}
}

// PublishCartUpdated пишет одно сообщение: key - ID заказа, value - JSON события.
// Trace context передаётся в заголовках сообщения.
func (p *Publisher) PublishCartUpdated(ctx context.Context, event service.CartUpdatedEvent) error {
	msg, err := newMessage(ctx, event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write kafka message to %s: %w", p.topic, err)
	}

	p.logger.Debug("cart event published to kafka",
		zap.String("topic", p.topic),
		zap.String("event_id", event.EventID),
	)
	return nil
}

func newMessage(ctx context.Context, event service.CartUpdatedEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(event.OrderID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
	observability.InjectKafka(ctx, &msg)
	return msg, nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
