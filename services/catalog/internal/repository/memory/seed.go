package memory

// ProductSeed описание товара до присвоения ID
type ProductSeed struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

// DefaultSeed возвращает демо-каталог магазина.
// ID присваиваются в порядке элементов, начиная с 1.
func DefaultSeed() []ProductSeed {
	return []ProductSeed{
		{
			Name:        "Wireless Headphones",
			Description: "High-quality wireless headphones with noise cancellation",
			Price:       99.99,
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=200&fit=crop",
		},
		{
			Name:        "Smartphone",
			Description: "Latest generation smartphone with advanced camera features",
			Price:       699.99,
			Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=200&fit=crop",
		},
		{
			Name:        "Laptop",
			Description: "Lightweight laptop perfect for work and entertainment",
			Price:       1299.99,
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=300&h=200&fit=crop",
		},
	}
}
