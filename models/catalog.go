package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Location is a vendor outlet. (vendor, street, city, state) is unique.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_location" json:"vendor_id"`
	Street    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_vendor_location" json:"street"`
	City      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_vendor_location" json:"city"`
	State     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_vendor_location" json:"state"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Category is reference data; ParentID builds an unbounded tree.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Parent      *Category  `gorm:"constraint:OnDelete:SET NULL;" json:"-"`
}

// MenuItem is a priced dish owned by one vendor.
type MenuItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"vendor_id"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:RESTRICT;" json:"-"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(8,2);not null;check:price >= 0" json:"price"`
	ImageKey    string          `gorm:"type:varchar(512)" json:"image,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
