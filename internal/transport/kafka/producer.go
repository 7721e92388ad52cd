package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"yoyo-delivery/internal/events"
	"yoyo-delivery/internal/logx"
)

// Producer publishes order lifecycle events to a Kafka topic.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

var newSyncProducer = func(brokers []string, cfg *sarama.Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(brokers, cfg)
}

// NewProducer creates a new Kafka producer. It returns nil, nil when brokers or topic are not configured.
func NewProducer(brokers []string, topic string, logger logx.Logger) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 0

	sp, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: new producer: %w", err)
	}
	return NewProducerWith(sp, topic, logger), nil
}

// NewProducerWith wraps an existing sarama.SyncProducer.
func NewProducerWith(sp sarama.SyncProducer, topic string, logger logx.Logger) *Producer {
	return &Producer{producer: sp, topic: topic, logger: logger.With(logx.String("topic", topic))}
}

// Publish implements events.Publisher. Encoding failures are permanent.
func (p *Producer) Publish(ctx context.Context, ev events.Event) error {
	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(FromDomain(ev))
	if err != nil {
		return events.Permanent(fmt.Errorf("kafka: encode event: %w", err))
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(messageKey(ev)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("kafka: send %s: %w", ev.Type, err)
	}
	p.logger.Debug("event published",
		logx.String("type", string(ev.Type)),
		logx.Int64("order_id", ev.OrderID),
		logx.Any("partition", partition),
		logx.Int64("offset", offset),
	)
	return nil
}

// Close flushes and closes the producer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}

var _ events.Publisher = (*Producer)(nil)
