package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"foodhub/storefront-svc/internal/domain"

	"github.com/google/uuid"
)

type PlaceOrderRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	FoodID       string `json:"food_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"min=1"`
	VoucherCode  string `json:"voucher_code"`
	CustomerName string `json:"customer"`
}

type ReviewRequest struct {
	UserID  string   `json:"user_id"`
	Rating  int      `json:"rating" validate:"min=1,max=5"`
	Comment string   `json:"comment" validate:"max=2000"`
	Images  []string `json:"images" validate:"max=10"`
}

type OrderFilter struct {
	UserID string
	Status domain.OrderStatus
}

type OrderService struct {
	store     OrderStore
	pricing   *PricingService
	cache     ReviewCache
	publisher EventPublisher
	qr        QRGenerator

	Now   func() time.Time
	NewID func() string
}

// NewOrderService wires the lifecycle manager. cache, publisher and qr may
// be nil.
func NewOrderService(store OrderStore, pricing *PricingService, cache ReviewCache, publisher EventPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		store:     store,
		pricing:   pricing,
		cache:     cache,
		publisher: publisher,
		qr:        qr,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// PlaceOrder prices and stores a new PENDING order.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (domain.Order, error) {
	if err := ValidateStruct(req); err != nil {
		return domain.Order{}, err
	}

	food, ok := s.store.FoodByID(req.FoodID)
	if !ok {
		return domain.Order{}, fmt.Errorf("food %s: %w", req.FoodID, ErrNotFound)
	}
	if !FoodAvailable(food, s.store) {
		return domain.Order{}, fmt.Errorf("food %s: %w", food.ID, ErrFoodUnavailable)
	}

	quote, err := s.pricing.QuoteFood(food, req.Quantity, req.VoucherCode)
	if err != nil {
		return domain.Order{}, err
	}

	customer := req.CustomerName
	if user, ok := s.store.UserByID(req.UserID); ok && customer == "" {
		customer = user.Name
	}
	var restaurantName string
	if r, ok := s.store.RestaurantByID(food.RestaurantID); ok {
		restaurantName = r.Name
	}

	now := s.Now()
	order := s.store.CreateOrder(domain.Order{
		ID:             s.NewID(),
		UserID:         req.UserID,
		CustomerName:   customer,
		FoodID:         food.ID,
		RestaurantID:   food.RestaurantID,
		RestaurantName: restaurantName,
		Description:    fmt.Sprintf("%s x%d", food.Name, quote.Quantity),
		ImageURL:       food.ImageURL,
		Quantity:       quote.Quantity,
		Subtotal:       quote.Subtotal,
		DeliveryFee:    quote.DeliveryFee,
		Discount:       quote.Discount,
		VoucherCode:    quote.VoucherCode,
		TotalAmount:    quote.Total,
		Status:         domain.OrderPending,
		PlacedAt:       now,
		UpdatedAt:      now,
	})

	log.Printf("Order %s placed by %s: %d", order.ID, order.UserID, order.TotalAmount)
	publish(ctx, s.publisher, domain.NewOrderEvent(domain.EventOrderPlaced, order, now))
	return order, nil
}

// Accept is the restaurant confirming a PENDING order; it goes out for
// delivery.
func (s *OrderService) Accept(ctx context.Context, id string) (domain.Order, error) {
	return s.transition(ctx, id, domain.EventAccept, domain.EventOrderAccepted)
}

func (s *OrderService) Cancel(ctx context.Context, id string) (domain.Order, error) {
	return s.transition(ctx, id, domain.EventCancel, domain.EventOrderCancelled)
}

// ConfirmReceived completes a DELIVERING order, which then awaits a review.
func (s *OrderService) ConfirmReceived(ctx context.Context, id string) (domain.Order, error) {
	return s.transition(ctx, id, domain.EventConfirmReceived, domain.EventOrderCompleted)
}

func (s *OrderService) transition(ctx context.Context, id string, ev domain.OrderEventKind, eventType string) (domain.Order, error) {
	now := s.Now()
	order, err := s.store.UpdateOrder(id, func(o *domain.Order) error {
		next, err := o.Status.Next(ev)
		if err != nil {
			return err
		}
		o.Status = next
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, err)
	}

	publish(ctx, s.publisher, domain.NewOrderEvent(eventType, order, now))
	return order, nil
}

// SubmitReview records the review of a COMPLETED order and moves it to
// REVIEWED. A second review for the same order fails with an error that
// matches both ErrReviewNotEligible and ErrDuplicateReview.
func (s *OrderService) SubmitReview(ctx context.Context, id string, req ReviewRequest) (domain.Order, domain.Review, error) {
	if err := ValidateStruct(req); err != nil {
		return domain.Order{}, domain.Review{}, err
	}
	if _, ok := s.store.OrderByID(id); !ok {
		return domain.Order{}, domain.Review{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}

	var markerKey string
	if s.cache != nil {
		markerKey = s.cache.ReviewMarkerKey(id)
		exists, err := s.cache.Exists(ctx, markerKey)
		if err != nil {
			log.Printf("Failed to check review marker for order %s: %v", id, err)
		}
		if exists {
			return domain.Order{}, domain.Review{}, duplicateReview(id)
		}
	}

	now := s.Now()
	order, err := s.store.UpdateOrder(id, func(o *domain.Order) error {
		if o.Status == domain.OrderReviewed {
			return duplicateReview(id)
		}
		next, err := o.Status.Next(domain.EventReview)
		if err != nil {
			return fmt.Errorf("%w: order %s is %s", ErrReviewNotEligible, id, o.Status)
		}
		o.Status = next
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.Order{}, domain.Review{}, fmt.Errorf("review order %s: %w", id, err)
	}

	userID := req.UserID
	if userID == "" {
		userID = order.UserID
	}
	review := s.store.CreateReview(domain.Review{
		ID:        s.NewID(),
		FoodID:    order.FoodID,
		OrderID:   order.ID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    req.Images,
		CreatedAt: now,
	})

	if s.cache != nil {
		if err := s.cache.SetMarker(ctx, markerKey); err != nil {
			log.Printf("Failed to set review marker for order %s: %v", id, err)
		}
	}

	event := domain.NewOrderEvent(domain.EventOrderReviewed, order, now)
	event.Rating = review.Rating
	publish(ctx, s.publisher, event)
	return order, review, nil
}

func duplicateReview(orderID string) error {
	return fmt.Errorf("%w: %w: order %s", ErrReviewNotEligible, ErrDuplicateReview, orderID)
}

func (s *OrderService) Order(id string) (domain.Order, error) {
	o, ok := s.store.OrderByID(id)
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return o, nil
}

// Orders lists orders newest first, optionally narrowed to one user and one
// status.
func (s *OrderService) Orders(filter OrderFilter) ([]domain.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, filter.Status)
	}
	orders := []domain.Order{}
	for _, o := range s.store.Orders() {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *OrderService) Delete(id string) error {
	if err := s.store.DeleteOrder(id); err != nil {
		return fmt.Errorf("order %s: %w", id, err)
	}
	return nil
}

// ReviewQRCode renders a PNG QR code linking to the order's review page.
func (s *OrderService) ReviewQRCode(id string) ([]byte, error) {
	if _, ok := s.store.OrderByID(id); !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if s.qr == nil {
		return nil, fmt.Errorf("order %s: no QR generator configured", id)
	}
	png, err := s.qr.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate QR code for order %s: %w", id, err)
	}
	return png, nil
}
