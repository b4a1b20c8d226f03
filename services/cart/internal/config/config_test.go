package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "HTTP_ADDR", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
		"EVENT_PUBLISHER", "DAPR_BASE_URL", "PUBSUB_NAME", "CART_TOPIC", "PUBLISH_TIMEOUT",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_WRITE_TIMEOUT", "OTEL_ENABLED",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvLocal, cfg.AppEnv)
	require.Equal(t, "0.0.0.0:5002", cfg.HTTPAddr)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, PublisherDapr, cfg.EventPublisher)
	require.Equal(t, "http://localhost:3500", cfg.DaprBaseURL)
	require.Equal(t, "pubsub", cfg.PubSubName)
	require.Equal(t, "cart-updates", cfg.CartTopic)
	require.Zero(t, cfg.PublishTimeout)
	require.Equal(t, []string{"localhost:19092"}, cfg.Kafka.Brokers)
	require.False(t, cfg.Observability.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "docker")
	t.Setenv("EVENT_PUBLISHER", "kafka")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("KAFKA_TOPIC", "carts")
	t.Setenv("PUBLISH_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvDocker, cfg.AppEnv)
	require.Equal(t, PublisherKafka, cfg.EventPublisher)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "carts", cfg.Kafka.Topic)
	require.Equal(t, 2*time.Second, cfg.PublishTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		errorContains string
	}{
		{name: "unknown APP_ENV", env: map[string]string{"APP_ENV": "prod"}, errorContains: "invalid APP_ENV"},
		{name: "unknown publisher", env: map[string]string{"EVENT_PUBLISHER": "rabbit"}, errorContains: "invalid EVENT_PUBLISHER"},
		{name: "negative publish timeout", env: map[string]string{"PUBLISH_TIMEOUT": "-1s"}, errorContains: "PUBLISH_TIMEOUT"},
		{name: "bad duration", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}, errorContains: "parse env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.ErrorContains(t, err, tt.errorContains)
		})
	}
}

func TestValidate_PublisherSpecificFields(t *testing.T) {
	base := Config{
		AppEnv:          EnvLocal,
		HTTPAddr:        "0.0.0.0:5002",
		ShutdownTimeout: time.Second,
		EventPublisher:  PublisherDapr,
		DaprBaseURL:     "http://localhost:3500",
		PubSubName:      "pubsub",
		CartTopic:       "cart-updates",
	}
	require.NoError(t, base.Validate())

	noURL := base
	noURL.DaprBaseURL = ""
	require.ErrorContains(t, noURL.Validate(), "DAPR_BASE_URL")

	// kafka не требует полей dapr, но требует брокеры
	kafkaCfg := noURL
	kafkaCfg.EventPublisher = PublisherKafka
	require.ErrorContains(t, kafkaCfg.Validate(), "KAFKA_BROKERS")
	kafkaCfg.Kafka.Brokers = []string{"localhost:19092"}
	kafkaCfg.Kafka.Topic = "cart-updates"
	require.NoError(t, kafkaCfg.Validate())

	noop := noURL
	noop.EventPublisher = PublisherNoop
	require.NoError(t, noop.Validate())
}
