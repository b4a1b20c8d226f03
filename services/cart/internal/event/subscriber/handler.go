// Package subscriber - подписчик Dapr pub/sub на события корзины.
// Объявляет подписку через GET /dapr/subscribe, принимает события на route топика
// (CloudEvent или голый JSON) и раздаёт их браузерам через Server-Sent Events.
package subscriber

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/ckstore/platform/health/http"
	"github.com/shestoi/ckstore/platform/httpjson"
	"github.com/shestoi/ckstore/platform/observability"
	"github.com/shestoi/ckstore/services/cart/internal/service"
)

// Config параметры подписки
type Config struct {
	PubSubName string
	Topic      string
	// Route путь, на который Dapr доставляет события, например /cart-updates
	Route string
}

// Subscription элемент ответа GET /dapr/subscribe
type Subscription struct {
	PubSubName string `json:"pubsubname"`
	Topic      string `json:"topic"`
	Route      string `json:"route"`
}

// Handler HTTP-обработчики подписчика
type Handler struct {
	cfg    Config
	hub    *Hub
	logger *zap.Logger
}

// NewHandler создаёт Handler
func NewHandler(cfg Config, hub *Hub, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		hub:    hub,
		logger: logger,
	}
}

// NewRouter создаёт роутер подписчика
func NewRouter(handler *Handler, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(observability.HTTPMiddleware("cart-events", logger))

	router.Get("/dapr/subscribe", handler.Subscriptions)
	router.Post(handler.cfg.Route, handler.ReceiveEvent)
	router.Get("/api/cart-updates", handler.Stream)
	router.Get("/health", platformhealth.Handler("cart-events", nil))

	return router
}

// Subscriptions обрабатывает GET /dapr/subscribe
func (h *Handler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, h.logger, http.StatusOK, []Subscription{{
		PubSubName: h.cfg.PubSubName,
		Topic:      h.cfg.Topic,
		Route:      h.cfg.Route,
	}})
}

// ReceiveEvent принимает событие от Dapr и раздаёт его SSE клиентам.
// Всегда отвечает 200: повторная доставка сломанного события ничего не исправит.
func (h *Handler) ReceiveEvent(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Warn("failed to read event body", zap.Error(err))
	}

	data := UnwrapCloudEvent(body)

	var event service.CartUpdatedEvent
	if err := json.Unmarshal(data, &event); err == nil {
		logger.Info("cart update received",
			zap.String("event_id", event.EventID),
			zap.Int("order_id", event.OrderID),
			zap.Int("items", len(event.Order.Items)),
		)
	}

	delivered := h.hub.Broadcast(data)
	logger.Debug("cart update dispatched", zap.Int("sse_clients", delivered))

	httpjson.Write(w, logger, http.StatusOK, map[string]string{"status": "SUCCESS"})
}

// UnwrapCloudEvent достаёт поле data из CloudEvent.
// Объект без data возвращается как есть, всё, что не JSON объект, превращается в {}.
func UnwrapCloudEvent(body []byte) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return []byte("{}")
	}
	if data, ok := envelope["data"]; ok && !bytes.Equal(data, []byte("null")) {
		return compact(data)
	}
	return compact(body)
}

func compact(raw []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return []byte("{}")
	}
	return buf.Bytes()
}

// Stream обрабатывает GET /api/cart-updates: держит SSE соединение до отключения клиента
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	flusher, ok := w.(http.Flusher)
	if !ok {
		httpjson.WriteError(w, logger, http.StatusInternalServerError, "streaming unsupported", "")
		return
	}

	// подписываемся до приветствия: клиент, получивший connected, уже в рассылке
	ch := h.hub.subscribe()
	defer h.hub.unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprintf(w, "data: %s\n\n", `{"type":"connected"}`); err != nil {
		return
	}
	flusher.Flush()
	logger.Info("sse client connected", zap.Int("clients", h.hub.Clients()))

	for {
		select {
		case <-r.Context().Done():
			logger.Info("sse client disconnected")
			return
		case data := <-ch:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				logger.Warn("failed to write sse event", zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}
