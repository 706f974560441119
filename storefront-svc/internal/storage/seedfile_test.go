package storage_test

import (
	"testing"
	"time"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSeed_Vouchers(t *testing.T) {
	doc := `{
		"vouchers": [
			{"id": "v1", "code": "FREESHIP15", "discount_value": 15000, "min_order_value": 100000, "type": "FREESHIP"},
			{"id": "v2", "code": "BAD", "discount_value": 1000, "type": "GIFT"},
			{"id": "v3", "code": "UP", "discount_value": -5000, "type": "DISCOUNT"},
			{"id": "v4", "code": "NEG", "discount_value": 5000, "min_order_value": -1, "type": "PROMO"}
		]
	}`

	seed, err := storage.DecodeSeed([]byte(doc), time.UTC)
	require.NoError(t, err)
	require.Len(t, seed.Vouchers, 1)
	assert.Equal(t, "v1", seed.Vouchers[0].ID)
	assert.Equal(t, domain.VoucherFreeship, seed.Vouchers[0].Type)
}

func TestDecodeSeed_Orders(t *testing.T) {
	doc := `{
		"orders": [
			{"id": "o1", "status": "COMPLETED", "is_reviewed": true, "order_time": "19:29 • 18/12/2025"},
			{"id": "o2", "status": "DELIVERING", "order_time": "25:00 • 18/12/2025"},
			{"id": "o3", "status": "LOST", "order_time": "19:29 • 18/12/2025"}
		]
	}`

	seed, err := storage.DecodeSeed([]byte(doc), time.UTC)
	require.NoError(t, err)
	require.Len(t, seed.Orders, 2)
	assert.Equal(t, domain.OrderReviewed, seed.Orders[0].Status)
	assert.Equal(t, time.Date(2025, time.December, 18, 19, 29, 0, 0, time.UTC), seed.Orders[0].PlacedAt)
	assert.Equal(t, domain.OrderDelivering, seed.Orders[1].Status)
	assert.True(t, seed.Orders[1].PlacedAt.IsZero())
}

func TestDecodeSeed_Malformed(t *testing.T) {
	_, err := storage.DecodeSeed([]byte(`{"vouchers": 1}`), time.UTC)
	assert.Error(t, err)
}
