package service

import (
	"fmt"
	"math"
	"strings"

	"foodhub/storefront-svc/internal/domain"
)

type Quote struct {
	FoodID      string `json:"food_id,omitempty"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"delivery_fee"`
	Discount    int64  `json:"discount"`
	Total       int64  `json:"total"`
	// VoucherCode is set only when the voucher was applied.
	VoucherCode string `json:"voucher_code,omitempty"`
}

type VoucherOption struct {
	domain.Voucher
	Eligible bool `json:"eligible"`
}

type QuoteRequest struct {
	FoodID      string `json:"food_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
	VoucherCode string `json:"voucher_code"`
}

// VoucherEligible reports whether v can be applied to an order of subtotal.
func VoucherEligible(v domain.Voucher, subtotal int64) bool {
	return !v.Expired && subtotal >= v.MinOrderValue
}

// Evaluate prices a single line. An ineligible voucher is dropped without an
// error; the total never goes below zero.
func Evaluate(price int64, quantity int, deliveryFee int64, voucher *domain.Voucher) (Quote, error) {
	if quantity < 1 {
		return Quote{}, fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidInput, quantity)
	}
	if price < 0 {
		return Quote{}, fmt.Errorf("%w: price must not be negative, got %d", ErrInvalidInput, price)
	}
	if deliveryFee < 0 {
		return Quote{}, fmt.Errorf("%w: delivery fee must not be negative, got %d", ErrInvalidInput, deliveryFee)
	}
	if price > 0 && int64(quantity) > (math.MaxInt64-deliveryFee)/price {
		return Quote{}, fmt.Errorf("%w: order amount overflows", ErrInvalidInput)
	}

	q := Quote{
		UnitPrice:   price,
		Quantity:    quantity,
		Subtotal:    price * int64(quantity),
		DeliveryFee: deliveryFee,
	}
	if voucher != nil && VoucherEligible(*voucher, q.Subtotal) {
		q.Discount = voucher.DiscountValue
		q.VoucherCode = voucher.Code
	}
	q.Total = max(0, q.Subtotal+q.DeliveryFee-q.Discount)
	return q, nil
}

type PricingService struct {
	store       PricingStore
	deliveryFee int64
}

func NewPricingService(store PricingStore, deliveryFee int64) *PricingService {
	return &PricingService{store: store, deliveryFee: deliveryFee}
}

func (s *PricingService) DeliveryFee() int64 {
	return s.deliveryFee
}

// Quote prices quantity units of an orderable food. An empty voucherCode
// means no voucher; an unknown one is ErrNotFound.
func (s *PricingService) Quote(req QuoteRequest) (Quote, error) {
	if err := ValidateStruct(req); err != nil {
		return Quote{}, err
	}
	food, ok := s.store.FoodByID(req.FoodID)
	if !ok {
		return Quote{}, fmt.Errorf("food %s: %w", req.FoodID, ErrNotFound)
	}
	if !FoodAvailable(food, s.store) {
		return Quote{}, fmt.Errorf("food %s: %w", food.ID, ErrFoodUnavailable)
	}
	return s.QuoteFood(food, req.Quantity, req.VoucherCode)
}

// QuoteFood prices a food the caller already resolved.
func (s *PricingService) QuoteFood(food domain.Food, quantity int, voucherCode string) (Quote, error) {
	voucher, err := s.voucher(voucherCode)
	if err != nil {
		return Quote{}, err
	}
	q, err := Evaluate(food.Price, quantity, s.deliveryFee, voucher)
	if err != nil {
		return Quote{}, err
	}
	q.FoodID = food.ID
	return q, nil
}

// Vouchers lists every voucher with its eligibility for subtotal.
func (s *PricingService) Vouchers(subtotal int64) []VoucherOption {
	vouchers := s.store.Vouchers()
	options := make([]VoucherOption, 0, len(vouchers))
	for _, v := range vouchers {
		options = append(options, VoucherOption{Voucher: v, Eligible: VoucherEligible(v, subtotal)})
	}
	return options
}

func (s *PricingService) voucher(code string) (*domain.Voucher, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	v, ok := s.store.VoucherByCode(code)
	if !ok {
		return nil, fmt.Errorf("voucher %s: %w", code, ErrNotFound)
	}
	return &v, nil
}
