package dapr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shestoi/ckstore/platform/observability"
	"github.com/shestoi/ckstore/services/cart/internal/service"
)

// maxErrorBody сколько байт тела ответа брокера попадает в текст ошибки
const maxErrorBody = 512

// Config параметры публикации через Dapr sidecar
type Config struct {
	// BaseURL адрес sidecar, например http://localhost:3500
	BaseURL string
	// PubSubName имя pub/sub компонента Dapr
	PubSubName string
	// Topic топик событий корзины
	Topic string
	// Timeout таймаут HTTP клиента, 0 - без таймаута
	Timeout time.Duration
}

// Publisher публикует события через HTTP API Dapr:
// POST {base}/v1.0/publish/{pubsub}/{topic}
type Publisher struct {
	logger *zap.Logger
	client *http.Client
	url    string
}

// NewPublisher создаёт Publisher
func NewPublisher(logger *zap.Logger, cfg Config) *Publisher {
	return &Publisher{
		logger: logger,
		client: &http.Client{Timeout: cfg.Timeout},
		url:    PublishURL(cfg.BaseURL, cfg.PubSubName, cfg.Topic),
	}
}

// PublishURL собирает адрес публикации из базового URL, имени компонента и топика
func PublishURL(baseURL, pubsubName, topic string) string {
	return fmt.Sprintf("%s/v1.0/publish/%s/%s",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(pubsubName),
		url.PathEscape(topic),
	)
}

// PublishCartUpdated отправляет событие одним синхронным POST.
// Любой статус 2xx считается доставкой, остальное - ошибкой. Повторов нет.
func (p *Publisher) PublishCartUpdated(ctx context.Context, event service.CartUpdatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	observability.InjectHTTP(ctx, req.Header)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("publish status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	// дочитываем тело, чтобы соединение вернулось в пул
	_, _ = io.Copy(io.Discard, resp.Body)

	p.logger.Debug("cart event published to dapr",
		zap.String("url", p.url),
		zap.String("event_id", event.EventID),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

// Close освобождает простаивающие соединения клиента
func (p *Publisher) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
