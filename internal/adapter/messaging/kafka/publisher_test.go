package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"payment-router/config"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.EventPublisher = (*Publisher)(nil)

type recordingWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_PublishStatusChanged(t *testing.T) {
	w := &recordingWriter{}
	p := NewPublisher(w)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := p.PublishStatusChanged(context.Background(), domain.PaymentStatusEvent{
		PaymentID:      "pay_123",
		MerchantID:     "m_1",
		Flow:           domain.FlowAuthorize,
		PreviousStatus: domain.IntentStatusRequiresConfirmation,
		IntentStatus:   domain.IntentStatusProcessing,
		AttemptStatus:  domain.AttemptStatusPending,
		Amount:         1000,
		Currency:       "USD",
		OccurredAt:     at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "pay_123", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "processing", body["intent_status"])
	assert.Equal(t, "requires_confirmation", body["previous_status"])
	assert.Equal(t, "authorize", body["flow"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_WriteError(t *testing.T) {
	cause := errors.New("leader not available")
	p := NewPublisher(&recordingWriter{err: cause})

	err := p.PublishStatusChanged(context.Background(), domain.PaymentStatusEvent{PaymentID: "pay_1"})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "pay_1")
}

func TestNewWriter(t *testing.T) {
	w := NewWriter(config.KafkaConfig{Brokers: []string{"k1:9092", "k2:9092"}, Topic: "payment.status"})
	assert.Equal(t, "payment.status", w.Topic)
	assert.Equal(t, "tcp", w.Addr.Network())
	assert.IsType(t, &kafkago.Hash{}, w.Balancer)
}
