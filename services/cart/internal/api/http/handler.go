package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/shestoi/ckstore/platform/httpjson"
	"github.com/shestoi/ckstore/platform/observability"
	"github.com/shestoi/ckstore/services/cart/internal/repository"
	"github.com/shestoi/ckstore/services/cart/internal/service"
)

// CartService то, что handler'у нужно от service слоя
type CartService interface {
	CurrentOrder(ctx context.Context) (repository.Order, error)
	AddItem(ctx context.Context, input service.AddItemInput) (repository.Order, error)
}

// Handler содержит HTTP-обработчики Cart Service
type Handler struct {
	cart   CartService
	logger *zap.Logger
}

// NewHandler создаёт HTTP handler
func NewHandler(cart CartService, logger *zap.Logger) *Handler {
	return &Handler{
		cart:   cart,
		logger: logger,
	}
}

// OrderItem строка заказа в HTTP ответе
type OrderItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderResponse заказ в HTTP ответе
type OrderResponse struct {
	ID    int         `json:"id"`
	Items []OrderItem `json:"items"`
}

// AddItemRequest тело POST /orders/current/items.
// Указатели отличают отсутствующее поле от нулевого значения.
type AddItemRequest struct {
	ProductID *int     `json:"product_id"`
	Name      *string  `json:"name"`
	Quantity  *int     `json:"quantity"`
	Price     *float64 `json:"price"`
}

// GetCurrentOrder обрабатывает GET /orders/current
func (h *Handler) GetCurrentOrder(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	order, err := h.cart.CurrentOrder(r.Context())
	if err != nil {
		logger.Error("get current order failed", zap.Error(err))
		httpjson.WriteError(w, logger, http.StatusInternalServerError, "internal error", "")
		return
	}

	httpjson.Write(w, logger, http.StatusOK, toOrderResponse(order))
}

// PostCurrentOrderItems обрабатывает POST /orders/current/items
func (h *Handler) PostCurrentOrderItems(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerFromContext(r.Context(), h.logger)

	req, err := decodeAddItemRequest(r.Body)
	if err != nil {
		logger.Info("add item request rejected", zap.Error(err))
		httpjson.WriteError(w, logger, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	order, err := h.cart.AddItem(r.Context(), service.AddItemInput{
		ProductID: *req.ProductID,
		Name:      *req.Name,
		Quantity:  *req.Quantity,
		Price:     *req.Price,
	})
	if err != nil {
		logger.Error("add item failed", zap.Error(err))
		httpjson.WriteError(w, logger, http.StatusInternalServerError, "internal error", "")
		return
	}

	logger.Info("item added to current order",
		zap.Int("product_id", *req.ProductID),
		zap.Int("quantity", *req.Quantity),
		zap.Int("items", len(order.Items)),
	)
	httpjson.Write(w, logger, http.StatusOK, toOrderResponse(order))
}

// decodeAddItemRequest разбирает тело и проверяет наличие и типы полей.
// Диапазоны значений не проверяются, лишние поля игнорируются.
func decodeAddItemRequest(body io.Reader) (AddItemRequest, error) {
	var req AddItemRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			return AddItemRequest{}, fmt.Errorf("field %s: expected %s", typeErr.Field, typeErr.Type)
		case errors.Is(err, io.EOF):
			return AddItemRequest{}, errors.New("request body is empty")
		default:
			return AddItemRequest{}, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	// после объекта допустимы только пробелы
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return AddItemRequest{}, errors.New("invalid JSON: unexpected data after request object")
	}

	var missing []string
	if req.ProductID == nil {
		missing = append(missing, "product_id")
	}
	if req.Name == nil {
		missing = append(missing, "name")
	}
	if req.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if req.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return AddItemRequest{}, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return req, nil
}

func toOrderResponse(order repository.Order) OrderResponse {
	return OrderResponse{
		ID: order.ID,
		Items: lo.Map(order.Items, func(item repository.OrderItem, _ int) OrderItem {
			return OrderItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
		}),
	}
}
