package domain

import "time"

type RestaurantStatus string

const (
	RestaurantActive   RestaurantStatus = "Active"
	RestaurantInactive RestaurantStatus = "Inactive"
)

type Restaurant struct {
	ID          string           `json:"id"`
	Name        string           `json:"name" validate:"required"`
	Address     string           `json:"address"`
	Phone       string           `json:"phone,omitempty"`
	Email       string           `json:"email,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Status      RestaurantStatus `json:"status"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"reviews_count"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (r Restaurant) Active() bool {
	return r.Status == RestaurantActive
}

type Food struct {
	ID            string  `json:"id"`
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	Price         int64   `json:"price" validate:"min=0"`
	OriginalPrice *int64  `json:"original_price,omitempty"`
	RestaurantID  string  `json:"restaurant_id"`
	Category      string  `json:"category"`
	PromoTag      string  `json:"promo_tag,omitempty"`
	Rating        float64 `json:"rating"`
}

func (f Food) Clone() Food {
	if f.OriginalPrice != nil {
		p := *f.OriginalPrice
		f.OriginalPrice = &p
	}
	return f
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon,omitempty"`
}

type VoucherType string

const (
	VoucherFreeship VoucherType = "FREESHIP"
	VoucherDiscount VoucherType = "DISCOUNT"
	VoucherPromo    VoucherType = "PROMO"
	VoucherCashback VoucherType = "CASHBACK"
)

func (t VoucherType) Valid() bool {
	switch t {
	case VoucherFreeship, VoucherDiscount, VoucherPromo, VoucherCashback:
		return true
	}
	return false
}

type Voucher struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Code          string      `json:"code" validate:"required"`
	DiscountValue int64       `json:"discount_value" validate:"min=0"`
	MinOrderValue int64       `json:"min_order_value" validate:"min=0"`
	Type          VoucherType `json:"type" validate:"oneof=FREESHIP DISCOUNT PROMO CASHBACK"`
	Condition     string      `json:"condition,omitempty"`
	Expired       bool        `json:"is_expired,omitempty"`
}

type Review struct {
	ID        string    `json:"id"`
	FoodID    string    `json:"food_id"`
	OrderID   string    `json:"order_id,omitempty"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Review) Clone() Review {
	if r.Images != nil {
		r.Images = append([]string(nil), r.Images...)
	}
	return r
}

type Role string

const (
	RoleUser    Role = "user"
	RoleShipper Role = "shipper"
	RoleAdmin   Role = "admin"
)

type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
	UserBanned   UserStatus = "Banned"
)

type User struct {
	ID      string     `json:"id"`
	Name    string     `json:"name" validate:"required"`
	Email   string     `json:"email" validate:"required,email"`
	Phone   string     `json:"phone,omitempty"`
	Address string     `json:"address,omitempty"`
	Balance int64      `json:"balance" validate:"min=0"`
	Role    Role       `json:"role"`
	Status  UserStatus `json:"status"`
}

type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	CustomerName   string      `json:"customer,omitempty"`
	FoodID         string      `json:"food_id"`
	RestaurantID   string      `json:"restaurant_id,omitempty"`
	RestaurantName string      `json:"restaurant_name"`
	Description    string      `json:"description"`
	ImageURL       string      `json:"image_url,omitempty"`
	Quantity       int         `json:"quantity"`
	Subtotal       int64       `json:"subtotal"`
	DeliveryFee    int64       `json:"delivery_fee"`
	Discount       int64       `json:"discount"`
	VoucherCode    string      `json:"voucher_code,omitempty"`
	TotalAmount    int64       `json:"total_amount"`
	Status         OrderStatus `json:"status"`
	PlacedAt       time.Time   `json:"placed_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NeedsReview mirrors the legacy needsReview flag.
func (o Order) NeedsReview() bool {
	return o.Status == OrderCompleted
}

// IsReviewed mirrors the legacy isReviewed flag.
func (o Order) IsReviewed() bool {
	return o.Status == OrderReviewed
}

// Seed is the initial state handed to the catalog store at construction.
type Seed struct {
	Restaurants []Restaurant
	Foods       []Food
	Categories  []Category
	Vouchers    []Voucher
	Reviews     []Review
	Users       []User
	Orders      []Order
}
