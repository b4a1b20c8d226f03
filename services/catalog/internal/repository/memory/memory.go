package memory

import (
	"context"

	"github.com/shestoi/ckstore/services/catalog/internal/repository"
)

// MemoryRepository реализует ProductRepository поверх map, заполняемой один раз при старте.
// После NewMemoryRepository данные только читаются, поэтому мьютекс не нужен.
type MemoryRepository struct {
	products map[int]repository.Product
	ids      []int
}

// NewMemoryRepository присваивает товарам ID 1..n в порядке seed и сохраняет их по ID
func NewMemoryRepository(seed []ProductSeed) *MemoryRepository {
	products := make(map[int]repository.Product, len(seed))
	ids := make([]int, 0, len(seed))

	for i, s := range seed {
		id := i + 1
		products[id] = repository.Product{
			ID:          id,
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			Image:       s.Image,
		}
		ids = append(ids, id)
	}

	return &MemoryRepository{
		products: products,
		ids:      ids,
	}
}

// List возвращает копию всех товаров по возрастанию ID
func (r *MemoryRepository) List(ctx context.Context) ([]repository.Product, error) {
	out := make([]repository.Product, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.products[id])
	}
	return out, nil
}
