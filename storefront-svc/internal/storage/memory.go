package storage

import (
	"errors"
	"strings"
	"sync"

	"foodhub/storefront-svc/internal/domain"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("id already exists")
)

// MemoryStore is the process-local catalog. Every collection is kept
// most-recent-first and every read hands out copies.
type MemoryStore struct {
	mu sync.RWMutex

	restaurants []domain.Restaurant
	foods       []domain.Food
	categories  []domain.Category
	vouchers    []domain.Voucher
	reviews     []domain.Review
	users       []domain.User
	orders      []domain.Order
}

func NewMemoryStore(seed domain.Seed) *MemoryStore {
	return &MemoryStore{
		restaurants: cloneAll(seed.Restaurants, same[domain.Restaurant]),
		foods:       cloneAll(seed.Foods, domain.Food.Clone),
		categories:  cloneAll(seed.Categories, same[domain.Category]),
		vouchers:    cloneAll(seed.Vouchers, same[domain.Voucher]),
		reviews:     cloneAll(seed.Reviews, domain.Review.Clone),
		users:       cloneAll(seed.Users, same[domain.User]),
		orders:      cloneAll(seed.Orders, same[domain.Order]),
	}
}

// Snapshot returns a consistent copy of every collection taken under a
// single read lock.
func (s *MemoryStore) Snapshot() domain.Seed {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Seed{
		Restaurants: cloneAll(s.restaurants, same[domain.Restaurant]),
		Foods:       cloneAll(s.foods, domain.Food.Clone),
		Categories:  cloneAll(s.categories, same[domain.Category]),
		Vouchers:    cloneAll(s.vouchers, same[domain.Voucher]),
		Reviews:     cloneAll(s.reviews, domain.Review.Clone),
		Users:       cloneAll(s.users, same[domain.User]),
		Orders:      cloneAll(s.orders, same[domain.Order]),
	}
}

// Restaurants

func (s *MemoryStore) Restaurants() []domain.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.restaurants, same[domain.Restaurant])
}

func (s *MemoryStore) RestaurantByID(id string) (domain.Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.restaurants, id, restaurantKey); i >= 0 {
		return s.restaurants[i], true
	}
	return domain.Restaurant{}, false
}

func (s *MemoryStore) CreateRestaurant(r domain.Restaurant) (domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := insertUnique(s.restaurants, r, restaurantKey)
	if err != nil {
		return domain.Restaurant{}, err
	}
	s.restaurants = out
	return r, nil
}

func (s *MemoryStore) UpdateRestaurant(id string, patch domain.RestaurantPatch) (domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.restaurants, id, restaurantKey)
	if i < 0 {
		return domain.Restaurant{}, ErrNotFound
	}
	patch.Apply(&s.restaurants[i])
	return s.restaurants[i], nil
}

func (s *MemoryStore) SetRestaurantStatus(id string, status domain.RestaurantStatus) (domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.restaurants, id, restaurantKey)
	if i < 0 {
		return domain.Restaurant{}, ErrNotFound
	}
	s.restaurants[i].Status = status
	return s.restaurants[i], nil
}

// DeleteRestaurant leaves the restaurant's foods in place.
func (s *MemoryStore) DeleteRestaurant(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.restaurants, id, restaurantKey)
	if i < 0 {
		return ErrNotFound
	}
	s.restaurants = removeAt(s.restaurants, i)
	return nil
}

// Foods

func (s *MemoryStore) Foods() []domain.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.foods, domain.Food.Clone)
}

func (s *MemoryStore) FoodsByRestaurant(restaurantID string) []domain.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Food
	for _, f := range s.foods {
		if f.RestaurantID == restaurantID {
			out = append(out, f.Clone())
		}
	}
	return out
}

func (s *MemoryStore) FoodByID(id string) (domain.Food, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.foods, id, foodKey); i >= 0 {
		return s.foods[i].Clone(), true
	}
	return domain.Food{}, false
}

func (s *MemoryStore) CreateFood(f domain.Food) (domain.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := insertUnique(s.foods, f.Clone(), foodKey)
	if err != nil {
		return domain.Food{}, err
	}
	s.foods = out
	return f.Clone(), nil
}

func (s *MemoryStore) UpdateFood(id string, patch domain.FoodPatch) (domain.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.foods, id, foodKey)
	if i < 0 {
		return domain.Food{}, ErrNotFound
	}
	patch.Apply(&s.foods[i])
	return s.foods[i].Clone(), nil
}

func (s *MemoryStore) DeleteFood(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.foods, id, foodKey)
	if i < 0 {
		return ErrNotFound
	}
	s.foods = removeAt(s.foods, i)
	return nil
}

// Categories

func (s *MemoryStore) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.categories, same[domain.Category])
}

func (s *MemoryStore) CreateCategory(c domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := insertUnique(s.categories, c, categoryKey)
	if err != nil {
		return domain.Category{}, err
	}
	s.categories = out
	return c, nil
}

func (s *MemoryStore) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.categories, id, categoryKey)
	if i < 0 {
		return ErrNotFound
	}
	s.categories = removeAt(s.categories, i)
	return nil
}

// Vouchers

func (s *MemoryStore) Vouchers() []domain.Voucher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.vouchers, same[domain.Voucher])
}

func (s *MemoryStore) VoucherByID(id string) (domain.Voucher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.vouchers, id, voucherKey); i >= 0 {
		return s.vouchers[i], true
	}
	return domain.Voucher{}, false
}

// VoucherByCode matches codes case-insensitively.
func (s *MemoryStore) VoucherByCode(code string) (domain.Voucher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code = strings.TrimSpace(code)
	for _, v := range s.vouchers {
		if strings.EqualFold(v.Code, code) {
			return v, true
		}
	}
	return domain.Voucher{}, false
}

func (s *MemoryStore) CreateVoucher(v domain.Voucher) (domain.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := insertUnique(s.vouchers, v, voucherKey)
	if err != nil {
		return domain.Voucher{}, err
	}
	s.vouchers = out
	return v, nil
}

func (s *MemoryStore) UpdateVoucher(id string, patch domain.VoucherPatch) (domain.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.vouchers, id, voucherKey)
	if i < 0 {
		return domain.Voucher{}, ErrNotFound
	}
	patch.Apply(&s.vouchers[i])
	return s.vouchers[i], nil
}

func (s *MemoryStore) DeleteVoucher(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.vouchers, id, voucherKey)
	if i < 0 {
		return ErrNotFound
	}
	s.vouchers = removeAt(s.vouchers, i)
	return nil
}

// Reviews

func (s *MemoryStore) Reviews() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.reviews, domain.Review.Clone)
}

func (s *MemoryStore) ReviewsByFood(foodID string) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Review{}
	for _, r := range s.reviews {
		if r.FoodID == foodID {
			out = append(out, r.Clone())
		}
	}
	return out
}

func (s *MemoryStore) CreateReview(r domain.Review) domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = prepend(s.reviews, r.Clone())
	return r.Clone()
}

// Users

func (s *MemoryStore) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.users, same[domain.User])
}

func (s *MemoryStore) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.users, id, userKey); i >= 0 {
		return s.users[i], true
	}
	return domain.User{}, false
}

func (s *MemoryStore) UserByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.TrimSpace(email)
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := insertUnique(s.users, u, userKey)
	if err != nil {
		return domain.User{}, err
	}
	s.users = out
	return u, nil
}

func (s *MemoryStore) UpdateUser(id string, patch domain.UserPatch) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.users, id, userKey)
	if i < 0 {
		return domain.User{}, ErrNotFound
	}
	patch.Apply(&s.users[i])
	return s.users[i], nil
}

func (s *MemoryStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.users, id, userKey)
	if i < 0 {
		return ErrNotFound
	}
	s.users = removeAt(s.users, i)
	return nil
}

// Orders

func (s *MemoryStore) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.orders, same[domain.Order])
}

func (s *MemoryStore) OrderByID(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.orders, id, orderKey); i >= 0 {
		return s.orders[i], true
	}
	return domain.Order{}, false
}

func (s *MemoryStore) CreateOrder(o domain.Order) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = prepend(s.orders, o)
	return o
}

// UpdateOrder runs fn on a copy of the order and stores the copy only when
// fn returns nil, so a rejected mutation leaves the order untouched.
func (s *MemoryStore) UpdateOrder(id string, fn func(*domain.Order) error) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.orders, id, orderKey)
	if i < 0 {
		return domain.Order{}, ErrNotFound
	}
	draft := s.orders[i]
	if err := fn(&draft); err != nil {
		return s.orders[i], err
	}
	s.orders[i] = draft
	return draft, nil
}

func (s *MemoryStore) DeleteOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.orders, id, orderKey)
	if i < 0 {
		return ErrNotFound
	}
	s.orders = removeAt(s.orders, i)
	return nil
}

func restaurantKey(r domain.Restaurant) string { return r.ID }
func foodKey(f domain.Food) string             { return f.ID }
func categoryKey(c domain.Category) string     { return c.ID }
func voucherKey(v domain.Voucher) string       { return v.ID }
func userKey(u domain.User) string             { return u.ID }
func orderKey(o domain.Order) string           { return o.ID }

func same[T any](v T) T { return v }

func cloneAll[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, v := range items {
		out[i] = clone(v)
	}
	return out
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, v := range items {
		if key(v) == id {
			return i
		}
	}
	return -1
}

func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

// insertUnique prepends v unless an item with the same key is present.
func insertUnique[T any](items []T, v T, key func(T) string) ([]T, error) {
	if indexOf(items, key(v), key) >= 0 {
		return items, ErrDuplicateID
	}
	return prepend(items, v), nil
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
