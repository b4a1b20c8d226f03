package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/ckstore/services/cart/internal/repository"
	"github.com/shestoi/ckstore/services/cart/internal/service"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testEvent() service.CartUpdatedEvent {
	return service.NewCartUpdatedEvent(repository.Order{
		ID:    1,
		Items: []repository.OrderItem{{ProductID: 2, Name: "Smartphone", Quantity: 1, Price: 699.99}},
	}, time.Now())
}

func TestPublisher_WritesMessage(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisher(zap.NewNop(), writer, "cart-updates")

	event := testEvent()
	require.NoError(t, p.PublishCartUpdated(context.Background(), event))

	require.Len(t, writer.msgs, 1)
	msg := writer.msgs[0]
	require.Equal(t, "1", string(msg.Key))

	var got service.CartUpdatedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	require.Equal(t, event, got)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	require.Equal(t, "cart_updated", headers["event_type"])
	require.Equal(t, "application/json", headers["content-type"])

	require.NoError(t, p.Close())
	require.True(t, writer.closed)
}

func TestPublisher_WriteError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("leader not available")}
	p := NewPublisher(zap.NewNop(), writer, "cart-updates")

	err := p.PublishCartUpdated(context.Background(), testEvent())
	require.ErrorIs(t, err, writer.err)
	require.ErrorContains(t, err, "cart-updates")
}
