package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisReviewCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := storage.NewRedisReviewCache(client, time.Hour)
	ctx := context.Background()
	key := cache.ReviewMarkerKey("o1")
	assert.Equal(t, "review:order:o1", key)

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.SetMarker(ctx, key))
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(2 * time.Hour)
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisReviewCache_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	cache := storage.NewRedisReviewCache(client, time.Hour)
	_, err := cache.Exists(context.Background(), "review:order:o1")
	assert.Error(t, err)
}

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func TestKafkaPublisher_PublishOrderEvent(t *testing.T) {
	writer := &recordingWriter{}
	publisher := storage.NewKafkaPublisher(writer)
	at := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

	order := domain.Order{ID: "o1", FoodID: "f1", RestaurantID: "r1", UserID: "u1", Status: domain.OrderPending, TotalAmount: 70000}
	require.NoError(t, publisher.PublishOrderEvent(context.Background(), domain.NewOrderEvent(domain.EventOrderPlaced, order, at)))
	require.NoError(t, publisher.PublishOrderEvent(context.Background(), domain.OrderEvent{
		Type: domain.EventRestaurantDeactivated, RestaurantID: "r1", Timestamp: at,
	}))

	require.Len(t, writer.messages, 2)
	assert.Equal(t, "o1", string(writer.messages[0].Key))
	assert.Equal(t, "r1", string(writer.messages[1].Key))

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, domain.EventOrderPlaced, decoded.Type)
	assert.Equal(t, int64(70000), decoded.TotalAmount)
	assert.Equal(t, domain.OrderPending, decoded.Status)

	writer.err = errors.New("broker down")
	assert.Error(t, publisher.PublishOrderEvent(context.Background(), decoded))
}
