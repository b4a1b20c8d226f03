package httpapi

import (
	"context"
	"net/http"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/shestoi/ckstore/platform/httpjson"
	"github.com/shestoi/ckstore/platform/observability"
	"github.com/shestoi/ckstore/services/catalog/internal/repository"
)

// ProductLister то, что handler'у нужно от service слоя
type ProductLister interface {
	ListProducts(ctx context.Context) ([]repository.Product, error)
}

// Handler содержит HTTP-обработчики Catalog Service
type Handler struct {
	catalog ProductLister
	logger  *zap.Logger
}

// NewHandler создаёт HTTP handler
func NewHandler(catalog ProductLister, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Product представление товара в HTTP ответе
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// GetProducts обрабатывает GET /products
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		logger.Error("list products failed", zap.Error(err))
		httpjson.WriteError(w, logger, http.StatusInternalServerError, "internal error", "")
		return
	}

	resp := lo.Map(products, func(p repository.Product, _ int) Product {
		return Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
		}
	})

	httpjson.Write(w, logger, http.StatusOK, resp)
}
