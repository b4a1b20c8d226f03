// Package pubsubstub - HTTP заглушка publish API Dapr sidecar.
// Используется в тестах и в cmd/pubsub-stub для локального запуска без Dapr.
package pubsubstub

import (
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Message принятая публикация
type Message struct {
	PubSub      string
	Topic       string
	ContentType string
	Header      http.Header
	Body        []byte
}

// Broker запоминает публикации и отвечает настраиваемым статусом
type Broker struct {
	logger *zap.Logger

	mu       sync.Mutex
	status   int
	messages []Message
}

// New создаёт Broker, отвечающий 204 No Content как Dapr
func New(logger *zap.Logger) *Broker {
	return &Broker{
		logger: logger,
		status: http.StatusNoContent,
	}
}

// SetStatus задаёт статус ответа для следующих публикаций.
// Сообщения с не-2xx статусом не сохраняются.
func (b *Broker) SetStatus(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = code
}

// Messages возвращает копию принятых сообщений
func (b *Broker) Messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Message, len(b.messages))
	copy(out, b.messages)
	return out
}

// Handler возвращает http.Handler с маршрутом POST /v1.0/publish/{pubsub}/{topic}
func (b *Broker) Handler() http.Handler {
	router := chi.NewRouter()
	router.Post("/v1.0/publish/{pubsub}/{topic}", b.publish)
	return router
}

func (b *Broker) publish(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	msg := Message{
		PubSub:      chi.URLParam(r, "pubsub"),
		Topic:       chi.URLParam(r, "topic"),
		ContentType: r.Header.Get("Content-Type"),
		Header:      r.Header.Clone(),
		Body:        body,
	}

	b.mu.Lock()
	status := b.status
	if status >= 200 && status < 300 {
		b.messages = append(b.messages, msg)
	}
	b.mu.Unlock()

	b.logger.Info("publish received",
		zap.String("pubsub", msg.PubSub),
		zap.String("topic", msg.Topic),
		zap.Int("status", status),
		zap.ByteString("body", body),
	)

	if status >= 200 && status < 300 {
		w.WriteHeader(status)
		return
	}
	http.Error(w, "stub broker failure", status)
}
