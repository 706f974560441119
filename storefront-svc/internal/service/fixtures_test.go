package service_test

import (
	"fmt"
	"time"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/storage"
)

var fixedNow = time.Date(2025, time.December, 18, 19, 29, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func catalogSeed() domain.Seed {
	return domain.Seed{
		Restaurants: []domain.Restaurant{
			{ID: "r1", Name: "Pho Hanoi", Status: domain.RestaurantActive, Rating: 4.5},
			{ID: "r2", Name: "Bun Cha", Status: domain.RestaurantInactive},
			{ID: "r3", Name: "Com Tam", Status: domain.RestaurantActive},
		},
		Foods: []domain.Food{
			{ID: "f1", Name: "Pho Bo", Price: 55000, RestaurantID: "r1", Category: "Noodles", ImageURL: "pho.jpg"},
			{ID: "f2", Name: "Bun Cha", Price: 45000, RestaurantID: "r2", Category: "Noodles"},
			{ID: "f3", Name: "Tra Da", Price: 5000, Category: "Drinks"},
			{ID: "f4", Name: "Orphan", Price: 30000, RestaurantID: "gone"},
			{ID: "f5", Name: "Com Suon", Price: 60000, RestaurantID: "r3", Category: "Rice"},
		},
		Categories: []domain.Category{{ID: "c1", Name: "Noodles"}},
		Vouchers: []domain.Voucher{
			{ID: "v1", Code: "SAVE15", DiscountValue: 15000, MinOrderValue: 100000, Type: domain.VoucherDiscount},
			{ID: "v2", Code: "BIG15", DiscountValue: 15000, MinOrderValue: 200000, Type: domain.VoucherDiscount},
			{ID: "v3", Code: "OLD", DiscountValue: 50000, MinOrderValue: 0, Type: domain.VoucherPromo, Expired: true},
			{ID: "v4", Code: "HUGE", DiscountValue: 1000000, MinOrderValue: 0, Type: domain.VoucherCashback},
		},
		Users: []domain.User{
			{ID: "u1", Name: "An", Email: "an@example.com", Role: domain.RoleUser, Status: domain.UserActive},
		},
	}
}

func newStore(orders ...domain.Order) *storage.MemoryStore {
	seed := catalogSeed()
	seed.Orders = orders
	return storage.NewMemoryStore(seed)
}
