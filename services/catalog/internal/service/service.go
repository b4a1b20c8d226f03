package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shestoi/ckstore/platform/observability"
	"github.com/shestoi/ckstore/services/catalog/internal/repository"
)

// CatalogService отдаёт каталог товаров. Только чтение, побочных эффектов нет.
type CatalogService struct {
	logger *zap.Logger
	repo   repository.ProductRepository
}

// NewCatalogService создаёт CatalogService
func NewCatalogService(logger *zap.Logger, repo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		logger: logger,
		repo:   repo,
	}
}

// ListProducts возвращает все товары по возрастанию ID
func (s *CatalogService) ListProducts(ctx context.Context) ([]repository.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	observability.LoggerFromContext(ctx, s.logger).Debug("products listed", zap.Int("count", len(products)))
	return products, nil
}
