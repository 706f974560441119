package service

import (
	"context"

	"foodhub/projector-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordRating(ctx context.Context, foodID string, rating int) error
	IncrFoodOrders(ctx context.Context, day, foodID string) error
	AddRevenue(ctx context.Context, day string, amount int64) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

var (
	_ StoreInterface = (*storage.Store)(nil)
	_ MessageReader  = (*kafka.Reader)(nil)
)
