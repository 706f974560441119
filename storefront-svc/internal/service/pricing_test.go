package service_test

import (
	"testing"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		price        int64
		quantity     int
		fee          int64
		voucher      *domain.Voucher
		wantSubtotal int64
		wantDiscount int64
		wantTotal    int64
		wantCode     string
		wantErr      error
	}{
		{
			name: "eligible voucher", price: 55000, quantity: 2, fee: 15000,
			voucher:      &domain.Voucher{Code: "SAVE15", MinOrderValue: 100000, DiscountValue: 15000},
			wantSubtotal: 110000, wantDiscount: 15000, wantTotal: 110000, wantCode: "SAVE15",
		},
		{
			name: "threshold not met", price: 55000, quantity: 2, fee: 15000,
			voucher:      &domain.Voucher{Code: "BIG15", MinOrderValue: 200000, DiscountValue: 15000},
			wantSubtotal: 110000, wantDiscount: 0, wantTotal: 125000,
		},
		{
			name: "threshold met exactly", price: 50000, quantity: 2, fee: 15000,
			voucher:      &domain.Voucher{Code: "EXACT", MinOrderValue: 100000, DiscountValue: 20000},
			wantSubtotal: 100000, wantDiscount: 20000, wantTotal: 95000, wantCode: "EXACT",
		},
		{
			name: "expired voucher", price: 55000, quantity: 2, fee: 15000,
			voucher:      &domain.Voucher{Code: "OLD", DiscountValue: 15000, Expired: true},
			wantSubtotal: 110000, wantTotal: 125000,
		},
		{
			name: "no voucher", price: 55000, quantity: 1, fee: 15000,
			wantSubtotal: 55000, wantTotal: 70000,
		},
		{
			name: "discount larger than order", price: 10000, quantity: 1, fee: 15000,
			voucher:      &domain.Voucher{Code: "HUGE", DiscountValue: 1000000},
			wantSubtotal: 10000, wantDiscount: 1000000, wantTotal: 0, wantCode: "HUGE",
		},
		{name: "zero quantity", price: 55000, quantity: 0, fee: 15000, wantErr: service.ErrInvalidInput},
		{name: "negative price", price: -1, quantity: 1, fee: 15000, wantErr: service.ErrInvalidInput},
		{name: "negative fee", price: 1, quantity: 1, fee: -1, wantErr: service.ErrInvalidInput},
		{name: "overflow", price: 1 << 62, quantity: 4, fee: 0, wantErr: service.ErrInvalidInput},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			q, err := service.Evaluate(testCase.price, testCase.quantity, testCase.fee, testCase.voucher)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantSubtotal, q.Subtotal)
			assert.Equal(t, testCase.wantDiscount, q.Discount)
			assert.Equal(t, testCase.wantTotal, q.Total)
			assert.Equal(t, testCase.wantCode, q.VoucherCode)
			assert.Equal(t, testCase.fee, q.DeliveryFee)
		})
	}
}

func TestEvaluate_TotalInvariant(t *testing.T) {
	prices := []int64{0, 1000, 35000, 55000, 159000}
	quantities := []int{1, 2, 3, 7}
	vouchers := []*domain.Voucher{
		nil,
		{MinOrderValue: 0, DiscountValue: 5000},
		{MinOrderValue: 100000, DiscountValue: 15000},
		{MinOrderValue: 300000, DiscountValue: 500000},
		{MinOrderValue: 0, DiscountValue: 900000},
	}

	for _, price := range prices {
		for _, qty := range quantities {
			for _, v := range vouchers {
				q, err := service.Evaluate(price, qty, 15000, v)
				require.NoError(t, err)

				subtotal := price * int64(qty)
				assert.Equal(t, max(0, subtotal+15000-q.Discount), q.Total)
				assert.GreaterOrEqual(t, q.Total, int64(0))
				if v != nil && v.MinOrderValue > subtotal {
					assert.Zero(t, q.Discount)
					assert.Equal(t, subtotal+15000, q.Total)
				}
			}
		}
	}
}

func TestPricingService_Quote(t *testing.T) {
	svc := service.NewPricingService(newStore(), 15000)

	tests := []struct {
		name      string
		req       service.QuoteRequest
		wantTotal int64
		wantErr   error
	}{
		{name: "eligible voucher", req: service.QuoteRequest{FoodID: "f1", Quantity: 2, VoucherCode: "save15"}, wantTotal: 110000},
		{name: "ineligible voucher", req: service.QuoteRequest{FoodID: "f1", Quantity: 2, VoucherCode: "BIG15"}, wantTotal: 125000},
		{name: "food without restaurant", req: service.QuoteRequest{FoodID: "f3", Quantity: 1}, wantTotal: 20000},
		{name: "unknown voucher", req: service.QuoteRequest{FoodID: "f1", Quantity: 1, VoucherCode: "NOPE"}, wantErr: service.ErrNotFound},
		{name: "unknown food", req: service.QuoteRequest{FoodID: "zzz", Quantity: 1}, wantErr: service.ErrNotFound},
		{name: "inactive restaurant", req: service.QuoteRequest{FoodID: "f2", Quantity: 1}, wantErr: service.ErrFoodUnavailable},
		{name: "deleted restaurant", req: service.QuoteRequest{FoodID: "f4", Quantity: 1}, wantErr: service.ErrFoodUnavailable},
		{name: "zero quantity", req: service.QuoteRequest{FoodID: "f1"}, wantErr: service.ErrInvalidInput},
		{name: "missing food id", req: service.QuoteRequest{Quantity: 1}, wantErr: service.ErrInvalidInput},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			q, err := svc.Quote(testCase.req)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantTotal, q.Total)
			assert.Equal(t, testCase.req.FoodID, q.FoodID)
		})
	}
}

func TestPricingService_Vouchers(t *testing.T) {
	svc := service.NewPricingService(newStore(), 15000)

	options := svc.Vouchers(110000)
	require.Len(t, options, 4)

	eligible := map[string]bool{}
	for _, o := range options {
		eligible[o.Code] = o.Eligible
	}
	assert.Equal(t, map[string]bool{"SAVE15": true, "BIG15": false, "OLD": false, "HUGE": true}, eligible)
	assert.Equal(t, int64(15000), svc.DeliveryFee())
}
