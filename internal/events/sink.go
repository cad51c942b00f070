package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer is satisfied by the traced otel-kafka-konsumer writer.
type Producer interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaSink writes audit records and notifications to their own topics.
type KafkaSink struct {
	audit         Producer
	notifications Producer
}

func NewKafkaSink(audit, notifications Producer) *KafkaSink {
	return &KafkaSink{audit: audit, notifications: notifications}
}

func (s *KafkaSink) Deliver(ctx context.Context, e Event) error {
	producer, err := s.producerFor(e.Kind)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(e.Body)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(e.Key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-kind", Value: []byte(e.Kind)},
		},
	}

	if err := producer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("producer.WriteMessage[%s]: %w", e.Kind, err)
	}

	return nil
}

func (s *KafkaSink) producerFor(kind Kind) (Producer, error) {
	switch kind {
	case KindAudit:
		return s.audit, nil
	case KindNotification:
		return s.notifications, nil
	default:
		return nil, fmt.Errorf("unknown event kind: %s", kind)
	}
}

func (s *KafkaSink) Close() error {
	return errors.Join(s.audit.Close(), s.notifications.Close())
}

// LogSink writes events to the structured log; used when no broker is configured.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(_ context.Context, e Event) error {
	payload, err := json.Marshal(e.Body)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	s.logger.Info("event",
		zap.String("kind", string(e.Kind)),
		zap.String("key", e.Key),
		zap.ByteString("body", payload),
	)

	return nil
}

func (s *LogSink) Close() error {
	return nil
}
