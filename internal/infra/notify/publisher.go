package notify

import (
	"context"
	"log/slog"
	"time"

	"food-delivery-api/internal/pkg/config"

	"github.com/segmentio/kafka-go"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
	Close() error
}

// NewPublisher publishes to Kafka when brokers are configured and only logs otherwise.
func NewPublisher(cfg config.KafkaConfig, logger *slog.Logger) Publisher {
	if len(cfg.Brokers) == 0 || (len(cfg.Brokers) == 1 && cfg.Brokers[0] == "") {
		return &LogPublisher{logger: logger}
	}
	return NewKafkaPublisher(cfg.Brokers)
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher leaves Topic unset on the writer so each message names its own.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Key: key, Value: value})
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }

type LogPublisher struct {
	logger *slog.Logger
}

func (p *LogPublisher) Publish(ctx context.Context, topic string, key, value []byte) error {
	p.logger.InfoContext(ctx, "notification", "topic", topic, "key", string(key), "payload", string(value))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
