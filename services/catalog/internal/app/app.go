package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	platformlogging "github.com/shestoi/ckstore/platform/logging"
	"github.com/shestoi/ckstore/platform/observability"
	platformshutdown "github.com/shestoi/ckstore/platform/shutdown"
	httpapi "github.com/shestoi/ckstore/services/catalog/internal/api/http"
	"github.com/shestoi/ckstore/services/catalog/internal/config"
	"github.com/shestoi/ckstore/services/catalog/internal/repository/memory"
	"github.com/shestoi/ckstore/services/catalog/internal/service"
)

// App содержит зависимости Catalog Service для запуска и graceful shutdown
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	wg          sync.WaitGroup
}

// Build собирает граф зависимостей Catalog Service
func Build(cfg config.Config) (*App, error) {
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "catalog",
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}

	otelCfg := cfg.Observability
	otelCfg.ServiceName = "catalog"
	otelCfg.DeploymentEnvironment = string(cfg.AppEnv)
	otelShutdown, err := observability.Init(context.Background(), otelCfg)
	if err != nil {
		return nil, err
	}

	// Каталог заполняется один раз при старте и живёт до конца процесса
	productRepo := memory.NewMemoryRepository(memory.DefaultSeed())
	catalogService := service.NewCatalogService(logger, productRepo)

	handler := httpapi.NewHandler(catalogService, logger)
	router := httpapi.NewRouter(handler, logger)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("otel", otelShutdown)
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	logger.Info("Catalog service built", zap.String("http_addr", cfg.HTTPAddr))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run запускает HTTP сервер и блокируется до сигнала shutdown.
// Если сервер не смог стартовать (например, порт занят), выполняет shutdown и возвращает ошибку.
func (a *App) Run(ctx context.Context) error {
	defer platformlogging.Sync(a.logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("Starting Catalog service", zap.String("addr", a.httpServer.Addr))

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
	a.logger.Info("Catalog service stopped")
	return serveErr
}
