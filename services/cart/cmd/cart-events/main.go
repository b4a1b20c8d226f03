// Package main - подписчик на события cart_updated.
//
// Поднимает HTTP сервер подписчика (GET /dapr/subscribe, POST {route}, SSE на
// GET /api/cart-updates) и получает события из одного из источников:
//   - CART_EVENTS_SOURCE=dapr: Dapr sidecar доставляет события на route топика
//   - CART_EVENTS_SOURCE=kafka: события читаются из Kafka (KAFKA_BROKERS, KAFKA_TOPIC,
//     KAFKA_GROUP_ID) и раздаются тем же SSE клиентам
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	platformkafka "github.com/shestoi/ckstore/platform/kafka"
	platformlogging "github.com/shestoi/ckstore/platform/logging"
	"github.com/shestoi/ckstore/platform/observability"
	platformshutdown "github.com/shestoi/ckstore/platform/shutdown"
	"github.com/shestoi/ckstore/services/cart/internal/event/subscriber"
	"github.com/shestoi/ckstore/services/cart/internal/service"
)

const (
	sourceDapr  = "dapr"
	sourceKafka = "kafka"
)

type config struct {
	Source     string `env:"CART_EVENTS_SOURCE" envDefault:"dapr"`
	HTTPAddr   string `env:"HTTP_ADDR" envDefault:"0.0.0.0:3001"`
	PubSubName string `env:"PUBSUB_NAME" envDefault:"pubsub"`
	Topic      string `env:"CART_TOPIC" envDefault:"cart-updates"`
	Route      string `env:"SUBSCRIBE_ROUTE" envDefault:"/cart-updates"`
	GroupID    string `env:"KAFKA_GROUP_ID" envDefault:"cart-events-tail"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	Kafka platformkafka.Config
}

func (c config) validate() error {
	switch c.Source {
	case sourceDapr:
		if c.Route == "" || c.Route[0] != '/' {
			return fmt.Errorf("SUBSCRIBE_ROUTE must start with '/': %q", c.Route)
		}
		return nil
	case sourceKafka:
		return c.Kafka.Validate()
	default:
		return fmt.Errorf("invalid CART_EVENTS_SOURCE: %s (must be 'dapr' or 'kafka')", c.Source)
	}
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "cart-events",
		Env:         "local",
		Level:       cfg.LogLevel,
	})
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer platformlogging.Sync(logger)

	if err := cfg.validate(); err != nil {
		logger.Error("invalid config", zap.Error(err))
		os.Exit(1)
	}

	hub := subscriber.NewHub(logger)
	handler := subscriber.NewHandler(subscriber.Config{
		PubSubName: cfg.PubSubName,
		Topic:      cfg.Topic,
		Route:      cfg.Route,
	}, hub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SSE соединения живут до отмены ctx, иначе Shutdown ждал бы их до таймаута
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           subscriber.NewRouter(handler, logger),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	var wg sync.WaitGroup
	shutdownMgr := platformshutdown.New(5*time.Second, logger)
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(srv))
	shutdownMgr.Add("streams", func(context.Context) error {
		cancel()
		wg.Wait()
		return nil
	})

	if cfg.Source == sourceKafka {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.GroupID,
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if err := reader.Close(); err != nil {
					logger.Error("failed to close kafka reader", zap.Error(err))
				}
			}()
			consumeKafka(ctx, reader, hub, logger)
		}()

		logger.Info("reading cart events from kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
			zap.String("group_id", cfg.GroupID),
		)
	}

	go func() {
		logger.Info("cart events subscriber listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("source", cfg.Source),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
			cancel()
		}
	}()

	shutdownMgr.Wait(ctx)
}

// consumeKafka читает события до отмены ctx и раздаёт их SSE клиентам
func consumeKafka(ctx context.Context, reader *kafka.Reader, hub *subscriber.Hub, logger *zap.Logger) {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("failed to read message", zap.Error(err))
			}
			return
		}

		msgCtx := observability.ExtractKafka(ctx, &msg)
		log := logger.With(observability.TraceFields(msgCtx)...)

		var event service.CartUpdatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("skip malformed event",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		log.Info("cart updated",
			zap.String("event_id", event.EventID),
			zap.Int("order_id", event.OrderID),
			zap.Int("items", len(event.Order.Items)),
			zap.Int64("offset", msg.Offset),
		)
		hub.Broadcast(msg.Value)
	}
}
