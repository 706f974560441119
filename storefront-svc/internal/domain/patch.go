package domain

// Patch types carry the fields of a partial update; nil means "keep".

// RestaurantPatch deliberately has no Status: availability changes go through
// the explicit activate/deactivate operations.
type RestaurantPatch struct {
	Name     *string  `json:"name"`
	Address  *string  `json:"address"`
	Phone    *string  `json:"phone"`
	Email    *string  `json:"email"`
	ImageURL *string  `json:"image_url"`
	Rating   *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
}

func (p RestaurantPatch) Apply(r *Restaurant) {
	setIf(&r.Name, p.Name)
	setIf(&r.Address, p.Address)
	setIf(&r.Phone, p.Phone)
	setIf(&r.Email, p.Email)
	setIf(&r.ImageURL, p.ImageURL)
	setIf(&r.Rating, p.Rating)
}

type FoodPatch struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"image_url"`
	Price         *int64   `json:"price" validate:"omitempty,min=0"`
	OriginalPrice *int64   `json:"original_price" validate:"omitempty,min=0"`
	RestaurantID  *string  `json:"restaurant_id"`
	Category      *string  `json:"category"`
	PromoTag      *string  `json:"promo_tag"`
	Rating        *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
}

func (p FoodPatch) Apply(f *Food) {
	setIf(&f.Name, p.Name)
	setIf(&f.Description, p.Description)
	setIf(&f.ImageURL, p.ImageURL)
	setIf(&f.Price, p.Price)
	setIf(&f.RestaurantID, p.RestaurantID)
	setIf(&f.Category, p.Category)
	setIf(&f.PromoTag, p.PromoTag)
	setIf(&f.Rating, p.Rating)
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		f.OriginalPrice = &v
	}
}

type VoucherPatch struct {
	Title         *string      `json:"title"`
	Code          *string      `json:"code"`
	DiscountValue *int64       `json:"discount_value" validate:"omitempty,min=0"`
	MinOrderValue *int64       `json:"min_order_value" validate:"omitempty,min=0"`
	Type          *VoucherType `json:"type" validate:"omitempty,oneof=FREESHIP DISCOUNT PROMO CASHBACK"`
	Condition     *string      `json:"condition"`
	Expired       *bool        `json:"is_expired"`
}

func (p VoucherPatch) Apply(v *Voucher) {
	setIf(&v.Title, p.Title)
	setIf(&v.Code, p.Code)
	setIf(&v.DiscountValue, p.DiscountValue)
	setIf(&v.MinOrderValue, p.MinOrderValue)
	setIf(&v.Type, p.Type)
	setIf(&v.Condition, p.Condition)
	setIf(&v.Expired, p.Expired)
}

type UserPatch struct {
	Name    *string     `json:"name"`
	Email   *string     `json:"email" validate:"omitempty,email"`
	Phone   *string     `json:"phone"`
	Address *string     `json:"address"`
	Balance *int64      `json:"balance" validate:"omitempty,min=0"`
	Role    *Role       `json:"role" validate:"omitempty,oneof=user shipper admin"`
	Status  *UserStatus `json:"status" validate:"omitempty,oneof=Active Inactive Banned"`
}

func (p UserPatch) Apply(u *User) {
	setIf(&u.Name, p.Name)
	setIf(&u.Email, p.Email)
	setIf(&u.Phone, p.Phone)
	setIf(&u.Address, p.Address)
	setIf(&u.Balance, p.Balance)
	setIf(&u.Role, p.Role)
	setIf(&u.Status, p.Status)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
