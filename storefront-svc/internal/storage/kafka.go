package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"foodhub/storefront-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishOrderEvent keys messages by order id so one order's events stay on
// a single partition. Restaurant events fall back to the restaurant id.
func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	key := event.OrderID
	if key == "" {
		key = event.RestaurantID
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}
