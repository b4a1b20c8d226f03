package subscriber

import (
	"sync"

	"go.uber.org/zap"
)

// clientBuffer сколько событий может ждать у одного SSE клиента
const clientBuffer = 16

// Hub раздаёт события всем подключённым SSE клиентам
type Hub struct {
	logger *zap.Logger

	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewHub создаёт пустой Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[chan []byte]struct{}),
	}
}

func (h *Hub) subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

// Broadcast отправляет data всем клиентам и возвращает число получателей.
// Медленный клиент с заполненным буфером пропускает событие, остальных он не задерживает.
func (h *Hub) Broadcast(data []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for ch := range h.clients {
		select {
		case ch <- data:
			delivered++
		default:
			h.logger.Warn("sse client is slow, event dropped")
		}
	}
	return delivered
}

// Clients возвращает число подключённых клиентов
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
