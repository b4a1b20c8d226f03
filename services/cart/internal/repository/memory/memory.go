package memory

import (
	"context"
	"sync"

	"github.com/shestoi/ckstore/services/cart/internal/repository"
)

// MemoryRepository хранит текущий заказ в памяти процесса.
// Состояние теряется при рестарте.
type MemoryRepository struct {
	mu    sync.Mutex
	order repository.Order
}

// NewMemoryRepository создаёт хранилище с пустым заказом {id:1, items:[]}
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		order: repository.Order{
			ID:    repository.CurrentOrderID,
			Items: []repository.OrderItem{},
		},
	}
}

// Current возвращает копию текущего заказа
func (r *MemoryRepository) Current(ctx context.Context) (repository.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.order.Clone(), nil
}

// Update применяет fn к рабочей копии под мьютексом.
// read-modify-write для quantity не теряет обновления при конкурентных запросах.
func (r *MemoryRepository) Update(ctx context.Context, fn func(order *repository.Order) error) (repository.Order, error) {
	if err := ctx.Err(); err != nil {
		return repository.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	working := r.order.Clone()
	if err := fn(&working); err != nil {
		return repository.Order{}, err
	}
	// id заказа фиксирован, fn его поменять не может
	working.ID = repository.CurrentOrderID
	r.order = working

	return r.order.Clone(), nil
}
