package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartEntry is a pending quantity of one menu item. (user, item) is unique.
type CartEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_item" json:"user_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_item" json:"item_id"`
	MenuItem   *MenuItem `gorm:"constraint:OnDelete:CASCADE;" json:"item,omitempty"`
	Quantity   int       `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Order is a finalized purchase of one menu item. Price is the unit price
// captured at checkout.
type Order struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	MenuItem   *MenuItem       `gorm:"constraint:OnDelete:CASCADE;" json:"item,omitempty"`
	Quantity   int             `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	OrderDate  time.Time       `gorm:"not null;index" json:"order_date"`
	Delivered  bool            `gorm:"not null;default:false" json:"delivered"`
	PaidFor    bool            `gorm:"not null;default:false" json:"paid_for"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Subtotal is price times quantity.
func (o Order) Subtotal() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// CartSummary is the caller's cart with its running total.
type CartSummary struct {
	Items []CartEntry     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CheckoutResult lists the orders created by one checkout.
type CheckoutResult struct {
	Orders []Order         `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}
