package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/shestoi/ckstore/platform/observability"
	"github.com/shestoi/ckstore/services/cart/internal/repository"
)

// CartService бизнес-логика корзины: чтение текущего заказа и добавление товаров
// с публикацией события cart_updated.
type CartService struct {
	logger    *zap.Logger
	orderRepo repository.OrderRepository
	publisher EventPublisher
	published metric.Int64Counter
	now       func() time.Time
}

// NewCartService создаёт CartService
func NewCartService(logger *zap.Logger, orderRepo repository.OrderRepository, publisher EventPublisher) *CartService {
	published, err := otel.Meter("cart").Int64Counter("cart.events.published",
		metric.WithDescription("cart_updated publish attempts by outcome"),
	)
	if err != nil {
		logger.Warn("failed to create publish counter, metrics disabled", zap.Error(err))
		published = noop.Int64Counter{}
	}

	return &CartService{
		logger:    logger,
		orderRepo: orderRepo,
		publisher: publisher,
		published: published,
		now:       time.Now,
	}
}

// AddItemInput входные данные добавления товара.
// Диапазоны quantity и price не проверяются.
type AddItemInput struct {
	ProductID int
	Name      string
	Quantity  int
	Price     float64
}

// CurrentOrder возвращает текущий заказ
func (s *CartService) CurrentOrder(ctx context.Context) (repository.Order, error) {
	order, err := s.orderRepo.Current(ctx)
	if err != nil {
		return repository.Order{}, fmt.Errorf("failed to get current order: %w", err)
	}
	return order, nil
}

// AddItem добавляет товар в текущий заказ и публикует cart_updated.
// Если товар уже есть, увеличивается quantity, name и price остаются от первого добавления.
// Ошибка публикации только логируется: изменение заказа уже зафиксировано.
func (s *CartService) AddItem(ctx context.Context, input AddItemInput) (repository.Order, error) {
	order, err := s.orderRepo.Update(ctx, func(order *repository.Order) error {
		mergeItem(order, repository.OrderItem{
			ProductID: input.ProductID,
			Name:      input.Name,
			Quantity:  input.Quantity,
			Price:     input.Price,
		})
		return nil
	})
	if err != nil {
		return repository.Order{}, fmt.Errorf("failed to add item: %w", err)
	}

	// отключение клиента не должно обрывать уже начатую публикацию
	s.publishCartUpdated(context.WithoutCancel(ctx), order)

	return order, nil
}

// mergeItem линейный поиск по product_id, первое совпадение выигрывает
func mergeItem(order *repository.Order, item repository.OrderItem) {
	_, i, found := lo.FindIndexOf(order.Items, func(line repository.OrderItem) bool {
		return line.ProductID == item.ProductID
	})
	if found {
		order.Items[i].Quantity += item.Quantity
		return
	}
	order.Items = append(order.Items, item)
}

func (s *CartService) publishCartUpdated(ctx context.Context, order repository.Order) {
	logger := observability.LoggerFromContext(ctx, s.logger)
	event := NewCartUpdatedEvent(order, s.now())

	if err := s.publisher.PublishCartUpdated(ctx, event); err != nil {
		s.published.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		logger.Error("failed to publish cart update",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.Int("order_id", event.OrderID),
		)
		return
	}

	s.published.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	logger.Debug("cart update published",
		zap.String("event_id", event.EventID),
		zap.Int("items", len(event.Order.Items)),
	)
}
