package kafka

import (
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config содержит параметры подключения к Kafka.
// Локально брокер обычно localhost:19092, в docker - kafka:9092.
type Config struct {
	Brokers      []string      `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:19092"`
	Topic        string        `env:"KAFKA_TOPIC" envDefault:"cart-updates"`
	WriteTimeout time.Duration `env:"KAFKA_WRITE_TIMEOUT" envDefault:"10s"`
}

// Validate проверяет обязательные поля
func (c Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	return nil
}

// NewWriter создаёт kafka.Writer для топика из конфигурации.
// Синхронная запись: WriteMessages возвращает ошибку доставки вызывающему.
func NewWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}
