package service

import (
	"context"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/storage"
)

type RestaurantLookup interface {
	RestaurantByID(id string) (domain.Restaurant, bool)
}

type PricingStore interface {
	RestaurantLookup
	FoodByID(id string) (domain.Food, bool)
	Vouchers() []domain.Voucher
	VoucherByCode(code string) (domain.Voucher, bool)
}

type OrderStore interface {
	PricingStore
	UserByID(id string) (domain.User, bool)
	Orders() []domain.Order
	OrderByID(id string) (domain.Order, bool)
	CreateOrder(o domain.Order) domain.Order
	UpdateOrder(id string, fn func(*domain.Order) error) (domain.Order, error)
	DeleteOrder(id string) error
	CreateReview(r domain.Review) domain.Review
}

type CatalogStore interface {
	RestaurantLookup
	Restaurants() []domain.Restaurant
	CreateRestaurant(r domain.Restaurant) (domain.Restaurant, error)
	UpdateRestaurant(id string, patch domain.RestaurantPatch) (domain.Restaurant, error)
	SetRestaurantStatus(id string, status domain.RestaurantStatus) (domain.Restaurant, error)
	DeleteRestaurant(id string) error

	Foods() []domain.Food
	FoodsByRestaurant(restaurantID string) []domain.Food
	FoodByID(id string) (domain.Food, bool)
	CreateFood(f domain.Food) (domain.Food, error)
	UpdateFood(id string, patch domain.FoodPatch) (domain.Food, error)
	DeleteFood(id string) error

	Categories() []domain.Category
	CreateCategory(c domain.Category) (domain.Category, error)
	DeleteCategory(id string) error

	Vouchers() []domain.Voucher
	VoucherByID(id string) (domain.Voucher, bool)
	VoucherByCode(code string) (domain.Voucher, bool)
	CreateVoucher(v domain.Voucher) (domain.Voucher, error)
	UpdateVoucher(id string, patch domain.VoucherPatch) (domain.Voucher, error)
	DeleteVoucher(id string) error

	Reviews() []domain.Review
	ReviewsByFood(foodID string) []domain.Review

	Users() []domain.User
	UserByID(id string) (domain.User, bool)
	UserByEmail(email string) (domain.User, bool)
	CreateUser(u domain.User) (domain.User, error)
	UpdateUser(id string, patch domain.UserPatch) (domain.User, error)
	DeleteUser(id string) error
}

type AnalyticsStore interface {
	Snapshot() domain.Seed
	ReviewsByFood(foodID string) []domain.Review
	FoodByID(id string) (domain.Food, bool)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type ReviewCache interface {
	ReviewMarkerKey(orderID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

var (
	_ OrderStore     = (*storage.MemoryStore)(nil)
	_ CatalogStore   = (*storage.MemoryStore)(nil)
	_ AnalyticsStore = (*storage.MemoryStore)(nil)
	_ EventPublisher = (*storage.KafkaPublisher)(nil)
	_ ReviewCache    = (*storage.RedisReviewCache)(nil)
	_ QRGenerator    = ReviewQRGenerator{}
)
