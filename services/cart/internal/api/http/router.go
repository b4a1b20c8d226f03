package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	platformhealth "github.com/shestoi/ckstore/platform/health/http"
	"github.com/shestoi/ckstore/platform/observability"
)

// NewRouter создаёт роутер Cart Service
func NewRouter(handler *Handler, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(observability.HTTPMiddleware("cart", logger))

	router.Get("/orders/current", handler.GetCurrentOrder)
	router.Post("/orders/current/items", handler.PostCurrentOrderItems)
	router.Get("/health", platformhealth.Handler("cart", nil))

	return router
}
