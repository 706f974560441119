package service

import (
	"errors"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/storage"
)

var (
	ErrNotFound          = storage.ErrNotFound
	ErrDuplicateID       = storage.ErrDuplicateID
	ErrInvalidTransition = domain.ErrInvalidTransition
	ErrInvalidInput      = errors.New("invalid input")
	ErrReviewNotEligible = errors.New("order is not eligible for review")
	ErrDuplicateReview   = errors.New("review already exists for this order")
	ErrFoodUnavailable   = errors.New("food is not available")
)
