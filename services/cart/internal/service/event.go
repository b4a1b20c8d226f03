package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/shestoi/ckstore/services/cart/internal/repository"
)

// EventTypeCartUpdated тип события изменения корзины
const EventTypeCartUpdated = "cart_updated"

// CartUpdatedEvent конверт события, публикуемого после каждого добавления товара.
// Timestamp информационный: подписчики не должны завязываться на его формат.
type CartUpdatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	OrderID   int          `json:"order_id"`
	Order     OrderPayload `json:"order"`
	Timestamp string       `json:"timestamp"`
}

// OrderPayload снимок заказа внутри события
type OrderPayload struct {
	ID    int                `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

// OrderItemPayload строка заказа внутри события
type OrderItemPayload struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// NewCartUpdatedEvent строит событие из снимка заказа
func NewCartUpdatedEvent(order repository.Order, now time.Time) CartUpdatedEvent {
	items := lo.Map(order.Items, func(item repository.OrderItem, _ int) OrderItemPayload {
		return OrderItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	})

	return CartUpdatedEvent{
		EventID:   uuid.New().String(),
		EventType: EventTypeCartUpdated,
		OrderID:   repository.CurrentOrderID,
		Order: OrderPayload{
			ID:    order.ID,
			Items: items,
		},
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}
