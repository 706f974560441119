package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"foodhub/storefront-svc/internal/domain"

	"github.com/google/uuid"
)

const defaultRestaurantRating = 5.0

// FoodAvailable reports whether food can be ordered: either it belongs to no
// restaurant, or its restaurant exists and is active.
func FoodAvailable(food domain.Food, restaurants RestaurantLookup) bool {
	if food.RestaurantID == "" {
		return true
	}
	r, ok := restaurants.RestaurantByID(food.RestaurantID)
	return ok && r.Active()
}

type FoodListing struct {
	domain.Food
	Available bool `json:"available"`
}

type FoodFilter struct {
	RestaurantID string
	Category     string
	// IncludeUnavailable keeps foods that cannot be ordered right now.
	IncludeUnavailable bool
}

type CatalogService struct {
	store     CatalogStore
	publisher EventPublisher

	Now   func() time.Time
	NewID func() string
}

func NewCatalogService(store CatalogStore, publisher EventPublisher) *CatalogService {
	return &CatalogService{
		store:     store,
		publisher: publisher,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// Restaurants

func (s *CatalogService) Restaurants() []domain.Restaurant {
	restaurants := s.store.Restaurants()
	stats := s.restaurantReviewStats()
	for i := range restaurants {
		applyRating(&restaurants[i], stats[restaurants[i].ID])
	}
	return restaurants
}

func (s *CatalogService) Restaurant(id string) (domain.Restaurant, error) {
	r, ok := s.store.RestaurantByID(id)
	if !ok {
		return domain.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
	}
	applyRating(&r, s.restaurantReviewStats()[id])
	return r, nil
}

func (s *CatalogService) CreateRestaurant(r domain.Restaurant) (domain.Restaurant, error) {
	if err := ValidateStruct(r); err != nil {
		return domain.Restaurant{}, err
	}
	switch r.Status {
	case "":
		r.Status = domain.RestaurantActive
	case domain.RestaurantActive, domain.RestaurantInactive:
	default:
		return domain.Restaurant{}, fmt.Errorf("%w: unknown restaurant status %q", ErrInvalidInput, r.Status)
	}
	if r.ID == "" {
		r.ID = s.NewID()
	}
	r.CreatedAt = s.Now()
	r.ReviewCount = 0
	created, err := s.store.CreateRestaurant(r)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("%w: restaurant %s: %w", ErrInvalidInput, r.ID, err)
	}
	return created, nil
}

// UpdateRestaurant edits profile fields. Status is not part of the patch;
// use ActivateRestaurant or DeactivateRestaurantAndFoods.
func (s *CatalogService) UpdateRestaurant(id string, patch domain.RestaurantPatch) (domain.Restaurant, error) {
	if err := ValidateStruct(patch); err != nil {
		return domain.Restaurant{}, err
	}
	r, err := s.store.UpdateRestaurant(id, patch)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, err)
	}
	return r, nil
}

// DeleteRestaurant removes the restaurant only. Its foods stay in the
// catalog and become unavailable because their owner no longer exists.
func (s *CatalogService) DeleteRestaurant(id string) error {
	if err := s.store.DeleteRestaurant(id); err != nil {
		return fmt.Errorf("restaurant %s: %w", id, err)
	}
	return nil
}

// DeactivateRestaurantAndFoods marks the restaurant inactive, which makes all
// of its foods unorderable. It returns the ids of the foods that were
// orderable before the call.
func (s *CatalogService) DeactivateRestaurantAndFoods(ctx context.Context, id string) ([]string, error) {
	before, ok := s.store.RestaurantByID(id)
	if !ok {
		return nil, fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
	}
	if _, err := s.store.SetRestaurantStatus(id, domain.RestaurantInactive); err != nil {
		return nil, fmt.Errorf("restaurant %s: %w", id, err)
	}

	affected := []string{}
	if before.Active() {
		for _, f := range s.store.FoodsByRestaurant(id) {
			affected = append(affected, f.ID)
		}
	}

	log.Printf("Restaurant %s deactivated, %d foods unavailable", id, len(affected))
	publish(ctx, s.publisher, domain.OrderEvent{
		Type:         domain.EventRestaurantDeactivated,
		RestaurantID: id,
		Timestamp:    s.Now(),
	})
	return affected, nil
}

func (s *CatalogService) ActivateRestaurant(_ context.Context, id string) (domain.Restaurant, error) {
	r, err := s.store.SetRestaurantStatus(id, domain.RestaurantActive)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, err)
	}
	return r, nil
}

// restaurantReviewStats sums review ratings per restaurant through the food
// each review belongs to.
func (s *CatalogService) restaurantReviewStats() map[string]ratingStats {
	owner := make(map[string]string)
	for _, f := range s.store.Foods() {
		owner[f.ID] = f.RestaurantID
	}
	stats := make(map[string]ratingStats)
	for _, r := range s.store.Reviews() {
		restaurantID, ok := owner[r.FoodID]
		if !ok || restaurantID == "" {
			continue
		}
		st := stats[restaurantID]
		st.sum += r.Rating
		st.count++
		stats[restaurantID] = st
	}
	return stats
}

type ratingStats struct {
	sum   int
	count int
}

func (st ratingStats) average() float64 {
	if st.count == 0 {
		return 0
	}
	return roundTenth(float64(st.sum) / float64(st.count))
}

func applyRating(r *domain.Restaurant, st ratingStats) {
	r.ReviewCount = st.count
	switch {
	case st.count > 0:
		r.Rating = st.average()
	case r.Rating <= 0:
		r.Rating = defaultRestaurantRating
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Foods

func (s *CatalogService) Foods(filter FoodFilter) []FoodListing {
	listings := []FoodListing{}
	for _, f := range s.store.Foods() {
		if filter.RestaurantID != "" && f.RestaurantID != filter.RestaurantID {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(f.Category, filter.Category) {
			continue
		}
		available := FoodAvailable(f, s.store)
		if !available && !filter.IncludeUnavailable {
			continue
		}
		listings = append(listings, FoodListing{Food: f, Available: available})
	}
	return listings
}

// Food returns an orderable food, ErrFoodUnavailable if its restaurant is
// inactive or gone.
func (s *CatalogService) Food(id string) (domain.Food, error) {
	f, ok := s.store.FoodByID(id)
	if !ok {
		return domain.Food{}, fmt.Errorf("food %s: %w", id, ErrNotFound)
	}
	if !FoodAvailable(f, s.store) {
		return domain.Food{}, fmt.Errorf("food %s: %w", id, ErrFoodUnavailable)
	}
	return f, nil
}

func (s *CatalogService) FoodReviews(foodID string) ([]domain.Review, error) {
	if _, ok := s.store.FoodByID(foodID); !ok {
		return nil, fmt.Errorf("food %s: %w", foodID, ErrNotFound)
	}
	return s.store.ReviewsByFood(foodID), nil
}

func (s *CatalogService) CreateFood(f domain.Food) (domain.Food, error) {
	if err := ValidateStruct(f); err != nil {
		return domain.Food{}, err
	}
	if f.RestaurantID != "" {
		if _, ok := s.store.RestaurantByID(f.RestaurantID); !ok {
			return domain.Food{}, fmt.Errorf("restaurant %s: %w", f.RestaurantID, ErrNotFound)
		}
	}
	if f.ID == "" {
		f.ID = s.NewID()
	}
	created, err := s.store.CreateFood(f)
	if err != nil {
		return domain.Food{}, fmt.Errorf("%w: food %s: %w", ErrInvalidInput, f.ID, err)
	}
	return created, nil
}

func (s *CatalogService) UpdateFood(id string, patch domain.FoodPatch) (domain.Food, error) {
	if err := ValidateStruct(patch); err != nil {
		return domain.Food{}, err
	}
	f, err := s.store.UpdateFood(id, patch)
	if err != nil {
		return domain.Food{}, fmt.Errorf("food %s: %w", id, err)
	}
	return f, nil
}

func (s *CatalogService) DeleteFood(id string) error {
	if err := s.store.DeleteFood(id); err != nil {
		return fmt.Errorf("food %s: %w", id, err)
	}
	return nil
}

// Categories

func (s *CatalogService) Categories() []domain.Category {
	return s.store.Categories()
}

func (s *CatalogService) CreateCategory(c domain.Category) (domain.Category, error) {
	if err := ValidateStruct(c); err != nil {
		return domain.Category{}, err
	}
	if c.ID == "" {
		c.ID = s.NewID()
	}
	created, err := s.store.CreateCategory(c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%w: category %s: %w", ErrInvalidInput, c.ID, err)
	}
	return created, nil
}

func (s *CatalogService) DeleteCategory(id string) error {
	if err := s.store.DeleteCategory(id); err != nil {
		return fmt.Errorf("category %s: %w", id, err)
	}
	return nil
}

// Vouchers

func (s *CatalogService) Vouchers() []domain.Voucher {
	return s.store.Vouchers()
}

func (s *CatalogService) CreateVoucher(v domain.Voucher) (domain.Voucher, error) {
	if err := ValidateStruct(v); err != nil {
		return domain.Voucher{}, err
	}
	v.Code = strings.TrimSpace(v.Code)
	if _, exists := s.store.VoucherByCode(v.Code); exists {
		return domain.Voucher{}, fmt.Errorf("%w: voucher code %s already exists", ErrInvalidInput, v.Code)
	}
	if v.ID == "" {
		v.ID = s.NewID()
	}
	created, err := s.store.CreateVoucher(v)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("%w: voucher %s: %w", ErrInvalidInput, v.ID, err)
	}
	return created, nil
}

func (s *CatalogService) UpdateVoucher(id string, patch domain.VoucherPatch) (domain.Voucher, error) {
	if err := ValidateStruct(patch); err != nil {
		return domain.Voucher{}, err
	}
	if patch.Code != nil {
		if other, exists := s.store.VoucherByCode(*patch.Code); exists && other.ID != id {
			return domain.Voucher{}, fmt.Errorf("%w: voucher code %s already exists", ErrInvalidInput, *patch.Code)
		}
	}
	v, err := s.store.UpdateVoucher(id, patch)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("voucher %s: %w", id, err)
	}
	return v, nil
}

func (s *CatalogService) DeleteVoucher(id string) error {
	if err := s.store.DeleteVoucher(id); err != nil {
		return fmt.Errorf("voucher %s: %w", id, err)
	}
	return nil
}

// Users

func (s *CatalogService) Users() []domain.User {
	return s.store.Users()
}

func (s *CatalogService) User(id string) (domain.User, error) {
	u, ok := s.store.UserByID(id)
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, nil
}

func (s *CatalogService) CreateUser(u domain.User) (domain.User, error) {
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if u.Status == "" {
		u.Status = domain.UserActive
	}
	if err := ValidateStruct(u); err != nil {
		return domain.User{}, err
	}
	if err := ValidateStruct(domain.UserPatch{Role: &u.Role, Status: &u.Status}); err != nil {
		return domain.User{}, err
	}
	if _, exists := s.store.UserByEmail(u.Email); exists {
		return domain.User{}, fmt.Errorf("%w: email %s is already registered", ErrInvalidInput, u.Email)
	}
	if u.ID == "" {
		u.ID = s.NewID()
	}
	created, err := s.store.CreateUser(u)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: user %s: %w", ErrInvalidInput, u.ID, err)
	}
	return created, nil
}

func (s *CatalogService) UpdateUser(id string, patch domain.UserPatch) (domain.User, error) {
	if err := ValidateStruct(patch); err != nil {
		return domain.User{}, err
	}
	if patch.Email != nil {
		if other, exists := s.store.UserByEmail(*patch.Email); exists && other.ID != id {
			return domain.User{}, fmt.Errorf("%w: email %s is already registered", ErrInvalidInput, *patch.Email)
		}
	}
	u, err := s.store.UpdateUser(id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: %w", id, err)
	}
	return u, nil
}

func (s *CatalogService) DeleteUser(id string) error {
	if err := s.store.DeleteUser(id); err != nil {
		return fmt.Errorf("user %s: %w", id, err)
	}
	return nil
}

// publish sends an event when a publisher is configured. Failures are only
// logged; the caller's action has already succeeded.
func publish(ctx context.Context, publisher EventPublisher, event domain.OrderEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("Failed to publish %s event: %v", event.Type, err)
	}
}
