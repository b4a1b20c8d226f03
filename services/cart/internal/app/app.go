package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	platformkafka "github.com/shestoi/ckstore/platform/kafka"
	platformlogging "github.com/shestoi/ckstore/platform/logging"
	"github.com/shestoi/ckstore/platform/observability"
	platformshutdown "github.com/shestoi/ckstore/platform/shutdown"
	httpapi "github.com/shestoi/ckstore/services/cart/internal/api/http"
	"github.com/shestoi/ckstore/services/cart/internal/config"
	"github.com/shestoi/ckstore/services/cart/internal/event/dapr"
	kafkaevent "github.com/shestoi/ckstore/services/cart/internal/event/kafka"
	"github.com/shestoi/ckstore/services/cart/internal/event/noop"
	"github.com/shestoi/ckstore/services/cart/internal/repository/memory"
	"github.com/shestoi/ckstore/services/cart/internal/service"
)

// App содержит зависимости Cart Service для запуска и graceful shutdown
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	wg          sync.WaitGroup
}

// publisher EventPublisher, который нужно закрыть при shutdown
type publisher interface {
	service.EventPublisher
	io.Closer
}

// Build собирает граф зависимостей Cart Service
func Build(cfg config.Config) (*App, error) {
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "cart",
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}

	otelCfg := cfg.Observability
	otelCfg.ServiceName = "cart"
	otelCfg.DeploymentEnvironment = string(cfg.AppEnv)
	otelShutdown, err := observability.Init(context.Background(), otelCfg)
	if err != nil {
		return nil, err
	}

	eventPublisher, err := newPublisher(cfg, logger)
	if err != nil {
		_ = otelShutdown(context.Background())
		return nil, err
	}

	// Один заказ на процесс, состояние теряется при рестарте
	orderRepo := memory.NewMemoryRepository()
	cartService := service.NewCartService(logger, orderRepo, eventPublisher)

	handler := httpapi.NewHandler(cartService, logger)
	router := httpapi.NewRouter(handler, logger)

	httpServer := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Шаги выполняются в обратном порядке: сначала HTTP, затем publisher, затем otel
	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("otel", otelShutdown)
	shutdownMgr.Add("event_publisher", platformshutdown.CloseCloser(eventPublisher))
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	logger.Info("Cart service built",
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("event_publisher", string(cfg.EventPublisher)),
	)

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
	}, nil
}

func newPublisher(cfg config.Config, logger *zap.Logger) (publisher, error) {
	switch cfg.EventPublisher {
	case config.PublisherDapr:
		logger.Info("Publishing cart events via dapr",
			zap.String("url", dapr.PublishURL(cfg.DaprBaseURL, cfg.PubSubName, cfg.CartTopic)),
		)
		return dapr.NewPublisher(logger, dapr.Config{
			BaseURL:    cfg.DaprBaseURL,
			PubSubName: cfg.PubSubName,
			Topic:      cfg.CartTopic,
			Timeout:    cfg.PublishTimeout,
		}), nil
	case config.PublisherKafka:
		logger.Info("Publishing cart events via kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
		return kafkaevent.NewPublisher(logger, platformkafka.NewWriter(cfg.Kafka), cfg.Kafka.Topic), nil
	case config.PublisherNoop:
		logger.Warn("Cart events are not published (noop publisher)")
		return noop.NewPublisher(logger), nil
	default:
		return nil, fmt.Errorf("unknown event publisher: %s", cfg.EventPublisher)
	}
}

// Run запускает HTTP сервер и блокируется до сигнала shutdown.
// Если сервер не смог стартовать (например, порт занят), выполняет shutdown и возвращает ошибку.
func (a *App) Run(ctx context.Context) error {
	defer platformlogging.Sync(a.logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("Starting Cart service", zap.String("addr", a.httpServer.Addr))

	var serveErr error
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
			serveErr = fmt.Errorf("http server: %w", err)
			cancel()
		}
	}()

	a.shutdownMgr.Wait(ctx)

	a.wg.Wait()
	a.logger.Info("Cart service stopped")
	return serveErr
}
