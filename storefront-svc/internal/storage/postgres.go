package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"foodhub/storefront-svc/internal/domain"
	"foodhub/storefront-svc/internal/timefmt"

	"github.com/lib/pq"
)

// PostgresSeedSource reads the initial catalog from Postgres. It never
// writes; the running service keeps all state in a MemoryStore.
type PostgresSeedSource struct {
	DB       *sql.DB
	Location *time.Location
}

func NewPostgresSeedSource(db *sql.DB, loc *time.Location) *PostgresSeedSource {
	return &PostgresSeedSource{DB: db, Location: loc}
}

func (s *PostgresSeedSource) LoadSeed(ctx context.Context) (domain.Seed, error) {
	var seed domain.Seed
	var err error

	if seed.Restaurants, err = s.restaurants(ctx); err != nil {
		return domain.Seed{}, fmt.Errorf("load restaurants: %w", err)
	}
	if seed.Foods, err = s.foods(ctx); err != nil {
		return domain.Seed{}, fmt.Errorf("load foods: %w", err)
	}
	if seed.Categories, err = s.categories(ctx); err != nil {
		return domain.Seed{}, fmt.Errorf("load categories: %w", err)
	}
	if seed.Vouchers, err = s.vouchers(ctx); err != nil {
		return domain.Seed{}, fmt.Errorf("load vouchers: %w", err)
	}
	if seed.Reviews, err = s.reviews(ctx); err != nil {
		return domain.Seed{}, fmt.Errorf("load reviews: %w", err)
	}
	if seed.Users, err = s.users(ctx); err != nil {
		return domain.Seed{}, fmt.Errorf("load users: %w", err)
	}
	if seed.Orders, err = s.orders(ctx); err != nil {
		return domain.Seed{}, fmt.Errorf("load orders: %w", err)
	}
	return seed, nil
}

func (s *PostgresSeedSource) restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''),
		       COALESCE(image_url, ''), status, COALESCE(rating, 0), created_at
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var r domain.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &r.Phone, &r.Email, &r.ImageURL, &r.Status, &r.Rating, &r.CreatedAt); err != nil {
			log.Printf("Skipping restaurant row: %v", err)
			continue
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

func (s *PostgresSeedSource) foods(ctx context.Context) ([]domain.Food, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(image_url, ''), price, original_price,
		       COALESCE(restaurant_id, ''), COALESCE(category, ''), COALESCE(promo_tag, ''), COALESCE(rating, 0)
		FROM foods
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []domain.Food
	for rows.Next() {
		var f domain.Food
		var original sql.NullInt64
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ImageURL, &f.Price, &original,
			&f.RestaurantID, &f.Category, &f.PromoTag, &f.Rating); err != nil {
			log.Printf("Skipping food row: %v", err)
			continue
		}
		if original.Valid {
			f.OriginalPrice = &original.Int64
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func (s *PostgresSeedSource) categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, COALESCE(icon, '') FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
			log.Printf("Skipping category row: %v", err)
			continue
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *PostgresSeedSource) vouchers(ctx context.Context) ([]domain.Voucher, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, COALESCE(title, ''), code, discount_value, min_order_value, type,
		       COALESCE(condition, ''), is_expired
		FROM vouchers
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []domain.Voucher
	for rows.Next() {
		var v domain.Voucher
		if err := rows.Scan(&v.ID, &v.Title, &v.Code, &v.DiscountValue, &v.MinOrderValue, &v.Type,
			&v.Condition, &v.Expired); err != nil {
			log.Printf("Skipping voucher row: %v", err)
			continue
		}
		if err := checkVoucher(v); err != nil {
			log.Printf("Skipping voucher %s: %v", v.ID, err)
			continue
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

func (s *PostgresSeedSource) reviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, food_id, COALESCE(order_id, ''), COALESCE(user_id, ''), rating,
		       COALESCE(comment, ''), images, created_at
		FROM reviews
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var r domain.Review
		var images pq.StringArray
		if err := rows.Scan(&r.ID, &r.FoodID, &r.OrderID, &r.UserID, &r.Rating,
			&r.Comment, &images, &r.CreatedAt); err != nil {
			log.Printf("Skipping review row: %v", err)
			continue
		}
		if len(images) > 0 {
			r.Images = []string(images)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *PostgresSeedSource) users(ctx context.Context) ([]domain.User, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(address, ''), COALESCE(balance, 0), role, status
		FROM users
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.Balance, &u.Role, &u.Status); err != nil {
			log.Printf("Skipping user row: %v", err)
			continue
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// orders reads the legacy layout: a status column plus an is_reviewed flag
// and the display-formatted order_time.
func (s *PostgresSeedSource) orders(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, COALESCE(customer_name, ''), food_id, COALESCE(restaurant_id, ''),
		       COALESCE(restaurant_name, ''), COALESCE(description, ''), COALESCE(image_url, ''),
		       quantity, subtotal, delivery_fee, discount, COALESCE(voucher_code, ''), total_amount,
		       status, is_reviewed, COALESCE(order_time, '')
		FROM orders
		ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var rawStatus, orderTime string
		var isReviewed bool
		if err := rows.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.FoodID, &o.RestaurantID,
			&o.RestaurantName, &o.Description, &o.ImageURL,
			&o.Quantity, &o.Subtotal, &o.DeliveryFee, &o.Discount, &o.VoucherCode, &o.TotalAmount,
			&rawStatus, &isReviewed, &orderTime); err != nil {
			log.Printf("Skipping order row: %v", err)
			continue
		}
		order, err := legacyOrder(o, rawStatus, isReviewed, orderTime, s.Location)
		if err != nil {
			log.Printf("Skipping order %s: %v", o.ID, err)
			continue
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// legacyOrder fills the typed status and timestamps of an order read from a
// legacy source. A malformed order_time leaves PlacedAt zero.
// checkVoucher rejects seed vouchers that pricing cannot apply safely.
func checkVoucher(v domain.Voucher) error {
	if !v.Type.Valid() {
		return fmt.Errorf("unknown type %q", v.Type)
	}
	if v.DiscountValue < 0 || v.MinOrderValue < 0 {
		return fmt.Errorf("negative amount (discount %d, min order %d)", v.DiscountValue, v.MinOrderValue)
	}
	return nil
}

func legacyOrder(o domain.Order, rawStatus string, isReviewed bool, orderTime string, loc *time.Location) (domain.Order, error) {
	status, err := domain.ParseOrderStatus(rawStatus, isReviewed)
	if err != nil {
		return domain.Order{}, err
	}
	o.Status = status

	placedAt, err := timefmt.Parse(orderTime, loc)
	if err != nil {
		log.Printf("Order %s has an unreadable order time: %v", o.ID, err)
	}
	o.PlacedAt = placedAt
	o.UpdatedAt = placedAt
	return o, nil
}
