package repository

import "context"

// Product товар каталога. Неизменяем после заполнения хранилища.
type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Image       string
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=ProductRepository --dir=. --output=./mocks --outpkg=mocks

// ProductRepository источник товаров для service слоя
type ProductRepository interface {
	// List возвращает все товары по возрастанию ID
	List(ctx context.Context) ([]Product, error)
}
