package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaSink publishes every gateway event to a Kafka topic, keyed by
// event name, alongside (not instead of) HTTP webhook delivery. It
// satisfies the gateway's dispatcher contract directly: there is no
// per-URL registration, the topic receives everything.
type KafkaSink struct {
	writer *kafka.Writer
	logger *zap.SugaredLogger

	now func() time.Time
}

func NewKafkaSink(brokers []string, topic string, logger *zap.SugaredLogger) *KafkaSink {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Errorf(msg, args...)
		}),
	}
	return &KafkaSink{writer: writer, logger: logger, now: time.Now}
}

// Trigger publishes the event envelope. Like HTTP delivery it is
// best-effort: broker failures are logged, never raised.
func (k *KafkaSink) Trigger(ctx context.Context, event string, data any) {
	env := Envelope{Event: event, Timestamp: k.now(), Data: data}

	value, err := json.Marshal(env)
	if err != nil {
		k.logger.Errorw("encoding event for kafka failed", "event", event, "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, k.writer.WriteTimeout)
	defer cancel()

	msg := kafka.Message{Key: []byte(event), Value: value}
	if err := k.writer.WriteMessages(writeCtx, msg); err != nil {
		k.logger.Errorw("publishing event to kafka failed", "event", event, "error", err)
	}
}

func (k *KafkaSink) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("closing kafka writer: %w", err)
	}
	return nil
}
