package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodhub/projector-svc/internal/domain"
	"foodhub/projector-svc/internal/mocks"
	"foodhub/projector-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var hcm = time.FixedZone("ICT", 7*3600)

func TestConsumer_HandleEvent(t *testing.T) {
	// 18:30 UTC is already the next day in ICT.
	ts := time.Date(2025, time.December, 18, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		event          domain.OrderEvent
		setupMockStore func(*mocks.StoreInterface)
		wantErr        error
	}{
		{
			name:  "review",
			event: domain.OrderEvent{Type: domain.EventOrderReviewed, OrderID: "o1", FoodID: "f1", Rating: 4, Timestamp: ts},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordRating", mock.Anything, "f1", 4).Return(nil).Once()
			},
		},
		{
			name:           "review_rating_out_of_range",
			event:          domain.OrderEvent{Type: domain.EventOrderReviewed, OrderID: "o1", FoodID: "f1", Rating: 6},
			setupMockStore: func(mockStore *mocks.StoreInterface) {},
			wantErr:        service.ErrInvalidEvent,
		},
		{
			name:           "review_without_food",
			event:          domain.OrderEvent{Type: domain.EventOrderReviewed, OrderID: "o1", Rating: 5},
			setupMockStore: func(mockStore *mocks.StoreInterface) {},
			wantErr:        service.ErrInvalidEvent,
		},
		{
			name:  "placed",
			event: domain.OrderEvent{Type: domain.EventOrderPlaced, OrderID: "o1", FoodID: "f1", Timestamp: ts},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("IncrFoodOrders", mock.Anything, "2025-12-19", "f1").Return(nil).Once()
			},
		},
		{
			name:  "completed",
			event: domain.OrderEvent{Type: domain.EventOrderCompleted, OrderID: "o1", TotalAmount: 110000, Timestamp: ts},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("AddRevenue", mock.Anything, "2025-12-19", int64(110000)).Return(nil).Once()
			},
		},
		{
			name:           "ignored_type",
			event:          domain.OrderEvent{Type: domain.EventRestaurantDeactivated, RestaurantID: "r1"},
			setupMockStore: func(mockStore *mocks.StoreInterface) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)
			consumer := service.NewConsumer(nil, mockStore, hcm)

			err := consumer.HandleEvent(context.Background(), testCase.event)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_HandleEventStoreError(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	storeErr := errors.New("redis unavailable")
	mockStore.On("RecordRating", mock.Anything, "f1", 5).Return(storeErr).Once()
	consumer := service.NewConsumer(nil, mockStore, nil)

	err := consumer.HandleEvent(context.Background(), domain.OrderEvent{Type: domain.EventOrderReviewed, FoodID: "f1", Rating: 5})
	assert.ErrorIs(t, err, storeErr)
}

// scriptedReader replays its messages and cancels the consumer once drained.
type scriptedReader struct {
	results []readResult
	cancel  context.CancelFunc
}

type readResult struct {
	msg kafka.Message
	err error
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.results) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	next := r.results[0]
	r.results = r.results[1:]
	return next.msg, next.err
}

func TestConsumer_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		cancel: cancel,
		results: []readResult{
			{msg: kafka.Message{Value: []byte(`{"type":"order_reviewed","order_id":"o1","food_id":"f1","rating":5}`)}},
			{err: errors.New("broker down")},
			{msg: kafka.Message{Value: []byte(`not json`)}},
			{msg: kafka.Message{Value: []byte(`{"type":"order_reviewed","order_id":"o2","food_id":"f1","rating":0}`)}},
			{msg: kafka.Message{Value: []byte(`{"type":"order_reviewed","order_id":"o3","food_id":"f2","rating":3}`)}},
		},
	}

	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("RecordRating", mock.Anything, "f1", 5).Return(nil).Once()
	mockStore.On("RecordRating", mock.Anything, "f2", 3).Return(nil).Once()

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, mockStore, time.UTC).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after context cancellation")
	}
}
