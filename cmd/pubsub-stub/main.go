// Package main запускает HTTP заглушку publish API Dapr sidecar.
//
// Cart Service с EVENT_PUBLISHER=dapr можно направить на неё через DAPR_BASE_URL
// и смотреть опубликованные события в логе без настоящего Dapr и брокера.
//
// Переменные окружения:
//   - STUB_ADDR (по умолчанию 127.0.0.1:3500)
//   - STUB_STATUS код ответа на публикацию (по умолчанию 204, 500 для проверки сбоев)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"

	platformlogging "github.com/shestoi/ckstore/platform/logging"
	"github.com/shestoi/ckstore/platform/pubsubstub"
	platformshutdown "github.com/shestoi/ckstore/platform/shutdown"
)

type config struct {
	Addr   string `env:"STUB_ADDR" envDefault:"127.0.0.1:3500"`
	Status int    `env:"STUB_STATUS" envDefault:"204"`
}

func main() {
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "pubsub-stub",
		Env:         "local",
		Level:       "info",
	})
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer platformlogging.Sync(logger)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Error("failed to load config", zap.Error(err))
		os.Exit(1)
	}

	broker := pubsubstub.New(logger)
	broker.SetStatus(cfg.Status)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           broker.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownMgr := platformshutdown.New(5*time.Second, logger)
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(srv))

	go func() {
		logger.Info("pubsub stub listening", zap.String("addr", cfg.Addr), zap.Int("status", cfg.Status))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	shutdownMgr.Wait(context.Background())
	logger.Info("pubsub stub stopped", zap.Int("messages", len(broker.Messages())))
}
