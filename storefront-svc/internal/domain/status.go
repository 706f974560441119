package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

// OrderStatus folds the review flags into the lifecycle: COMPLETED means
// delivered and awaiting a review, REVIEWED means the review was submitted.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderDelivering OrderStatus = "DELIVERING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderReviewed   OrderStatus = "REVIEWED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderDelivering,
	OrderCompleted,
	OrderReviewed,
	OrderCancelled,
}

type OrderEventKind string

const (
	EventAccept          OrderEventKind = "accept"
	EventCancel          OrderEventKind = "cancel"
	EventConfirmReceived OrderEventKind = "confirm_received"
	EventReview          OrderEventKind = "review"
)

var transitions = map[OrderStatus]map[OrderEventKind]OrderStatus{
	OrderPending: {
		EventAccept: OrderDelivering,
		EventCancel: OrderCancelled,
	},
	OrderDelivering: {
		EventCancel:          OrderCancelled,
		EventConfirmReceived: OrderCompleted,
	},
	OrderCompleted: {
		EventReview: OrderReviewed,
	},
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderCancelled || s == OrderReviewed
}

// RevenueRealized reports whether an order in this status counts towards
// revenue. REVIEWED orders were delivered, so they count like COMPLETED.
func (s OrderStatus) RevenueRealized() bool {
	return s == OrderDelivering || s == OrderCompleted || s == OrderReviewed
}

// Next returns the status reached by applying ev, or ErrInvalidTransition.
func (s OrderStatus) Next(ev OrderEventKind) (OrderStatus, error) {
	if next, ok := transitions[s][ev]; ok {
		return next, nil
	}
	return s, fmt.Errorf("%w: cannot %s an order in %s", ErrInvalidTransition, ev, s)
}

// ParseOrderStatus maps a stored status onto the merged enum. Records written
// with the old flag pair (COMPLETED + isReviewed) become REVIEWED.
func ParseOrderStatus(raw string, isReviewed bool) (OrderStatus, error) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	if s == OrderCompleted && isReviewed {
		return OrderReviewed, nil
	}
	return s, nil
}
