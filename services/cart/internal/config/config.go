package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/shestoi/ckstore/platform/kafka"
	"github.com/shestoi/ckstore/platform/observability"
)

// Env окружение приложения
type Env string

const (
	// EnvLocal - запуск на хосте (go run)
	EnvLocal Env = "local"
	// EnvDocker - запуск в контейнере
	EnvDocker Env = "docker"
)

// Publisher backend публикации событий корзины
type Publisher string

const (
	// PublisherDapr - HTTP publish API Dapr sidecar
	PublisherDapr Publisher = "dapr"
	// PublisherKafka - напрямую в Kafka через kafka-go
	PublisherKafka Publisher = "kafka"
	// PublisherNoop - события только логируются
	PublisherNoop Publisher = "noop"
)

// Config конфигурация Cart Service
type Config struct {
	AppEnv          Env           `env:"APP_ENV" envDefault:"local"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:5002"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel        string        `env:"LOG_LEVEL"`
	LogFormat       string        `env:"LOG_FORMAT"`

	EventPublisher Publisher `env:"EVENT_PUBLISHER" envDefault:"dapr"`
	DaprBaseURL    string    `env:"DAPR_BASE_URL" envDefault:"http://localhost:3500"`
	PubSubName     string    `env:"PUBSUB_NAME" envDefault:"pubsub"`
	CartTopic      string    `env:"CART_TOPIC" envDefault:"cart-updates"`
	// PublishTimeout 0 - без таймаута, ждём транспорт
	PublishTimeout time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"0s"`

	Kafka         kafka.Config
	Observability observability.Config
}

// Load читает конфигурацию из переменных окружения и валидирует её
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c Config) Validate() error {
	if c.AppEnv != EnvLocal && c.AppEnv != EnvDocker {
		return fmt.Errorf("invalid APP_ENV: %s (must be 'local' or 'docker')", c.AppEnv)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.PublishTimeout < 0 {
		return fmt.Errorf("PUBLISH_TIMEOUT must not be negative")
	}

	switch c.EventPublisher {
	case PublisherDapr:
		if c.DaprBaseURL == "" {
			return fmt.Errorf("DAPR_BASE_URL is required for dapr publisher")
		}
		if c.PubSubName == "" {
			return fmt.Errorf("PUBSUB_NAME is required for dapr publisher")
		}
		if c.CartTopic == "" {
			return fmt.Errorf("CART_TOPIC is required for dapr publisher")
		}
	case PublisherKafka:
		if err := c.Kafka.Validate(); err != nil {
			return err
		}
	case PublisherNoop:
	default:
		return fmt.Errorf("invalid EVENT_PUBLISHER: %s (must be 'dapr', 'kafka' or 'noop')", c.EventPublisher)
	}
	return nil
}
