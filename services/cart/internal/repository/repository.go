package repository

import "context"

// CurrentOrderID единственный заказ процесса. Мульти-корзин нет.
const CurrentOrderID = 1

// Order текущий заказ (корзина)
type Order struct {
	ID    int
	Items []OrderItem
}

// OrderItem строка заказа. ProductID уникален в пределах заказа.
type OrderItem struct {
	ProductID int
	Name      string
	Quantity  int
	Price     float64
}

// Clone возвращает копию заказа, не разделяющую Items с оригиналом
func (o Order) Clone() Order {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	return Order{ID: o.ID, Items: items}
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=OrderRepository --dir=. --output=./mocks --outpkg=mocks

// OrderRepository хранилище текущего заказа
type OrderRepository interface {
	// Current возвращает снимок текущего заказа
	Current(ctx context.Context) (Order, error)

	// Update выполняет fn над заказом атомарно относительно других Update.
	// Изменения фиксируются, только если fn вернула nil.
	// Возвращает снимок зафиксированного состояния.
	Update(ctx context.Context, fn func(order *Order) error) (Order, error)
}
