package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"payment-router/config"
	"payment-router/internal/core/domain"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher implements ports.EventPublisher on a Kafka topic. Messages are
// keyed by payment id so one payment's events stay ordered in a partition.
type Publisher struct {
	writer MessageWriter
}

// NewWriter builds a kafka-go writer for the configured topic.
func NewWriter(cfg config.KafkaConfig) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// PublishStatusChanged writes one event.
func (p *Publisher) PublishStatusChanged(ctx context.Context, event domain.PaymentStatusEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.PaymentID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("payment.status_changed")},
			{Key: "merchant_id", Value: []byte(event.MerchantID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish status event %s: %w", event.PaymentID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
