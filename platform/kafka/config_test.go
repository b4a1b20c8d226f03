package kafka

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	unsetEnv(t, "KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_WRITE_TIMEOUT")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:19092"}, cfg.Brokers)
	require.Equal(t, "cart-updates", cfg.Topic)
	require.Equal(t, 10*time.Second, cfg.WriteTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("KAFKA_TOPIC", "cart.updated")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	require.Equal(t, "cart.updated", cfg.Topic)

	w := NewWriter(cfg)
	require.Equal(t, "cart.updated", w.Topic)
}

func TestConfig_Validate(t *testing.T) {
	require.Error(t, Config{Topic: "t"}.Validate())
	require.Error(t, Config{Brokers: []string{"b:9092"}}.Validate())
}

// unsetEnv удаляет переменные на время теста, t.Setenv восстановит их после
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}
