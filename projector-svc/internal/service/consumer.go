package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"foodhub/projector-svc/internal/domain"
)

var ErrInvalidEvent = errors.New("invalid order event")

const dayLayout = "2006-01-02"

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	// Location decides which calendar day an event is counted on.
	Location *time.Location
}

func NewConsumer(reader MessageReader, store StoreInterface, loc *time.Location) *Consumer {
	if loc == nil {
		loc = time.UTC
	}
	return &Consumer{
		Reader:   reader,
		Store:    store,
		Location: loc,
	}
}

// Start reads events until ctx is cancelled. Undecodable or rejected events
// are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Projector Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Projector Service consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if err := c.HandleEvent(ctx, event); err != nil {
			log.Printf("Error processing %s event for order %s: %v", event.Type, event.OrderID, err)
		}
	}
}

// HandleEvent projects one event. Event types without a projection are
// ignored.
func (c *Consumer) HandleEvent(ctx context.Context, event domain.OrderEvent) error {
	switch event.Type {
	case domain.EventOrderReviewed:
		if event.FoodID == "" || event.Rating < 1 || event.Rating > 5 {
			return fmt.Errorf("%w: review of order %s has food %q rating %d", ErrInvalidEvent, event.OrderID, event.FoodID, event.Rating)
		}
		if err := c.Store.RecordRating(ctx, event.FoodID, event.Rating); err != nil {
			return fmt.Errorf("record rating: %w", err)
		}
		log.Printf("Recorded rating %d for food %s", event.Rating, event.FoodID)

	case domain.EventOrderPlaced:
		if event.FoodID == "" {
			return fmt.Errorf("%w: order %s has no food", ErrInvalidEvent, event.OrderID)
		}
		if err := c.Store.IncrFoodOrders(ctx, c.day(event), event.FoodID); err != nil {
			return fmt.Errorf("count order: %w", err)
		}

	case domain.EventOrderCompleted:
		if err := c.Store.AddRevenue(ctx, c.day(event), event.TotalAmount); err != nil {
			return fmt.Errorf("add revenue: %w", err)
		}
	}
	return nil
}

func (c *Consumer) day(event domain.OrderEvent) string {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.In(c.Location).Format(dayLayout)
}
