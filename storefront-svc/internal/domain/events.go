package domain

import "time"

const (
	EventOrderPlaced           = "order_placed"
	EventOrderAccepted         = "order_accepted"
	EventOrderCancelled        = "order_cancelled"
	EventOrderCompleted        = "order_completed"
	EventOrderReviewed         = "order_reviewed"
	EventRestaurantDeactivated = "restaurant_deactivated"
)

type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id,omitempty"`
	FoodID       string      `json:"food_id,omitempty"`
	RestaurantID string      `json:"restaurant_id,omitempty"`
	UserID       string      `json:"user_id,omitempty"`
	Status       OrderStatus `json:"status,omitempty"`
	Rating       int         `json:"rating,omitempty"`
	TotalAmount  int64       `json:"total_amount,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}

func NewOrderEvent(eventType string, order Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		FoodID:       order.FoodID,
		RestaurantID: order.RestaurantID,
		UserID:       order.UserID,
		Status:       order.Status,
		TotalAmount:  order.TotalAmount,
		Timestamp:    at,
	}
}
