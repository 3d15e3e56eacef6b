package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountKind separates the user and vendor identity namespaces.
type AccountKind string

const (
	AccountUser   AccountKind = "user"
	AccountVendor AccountKind = "vendor"
)

// Verification holds the one-time code state shared by users and vendors.
type Verification struct {
	HashedVerificationCode string     `gorm:"type:varchar(100)" json:"-"`
	CodeExpiresAt          *time.Time `json:"-"`
	IsVerified             bool       `gorm:"not null;default:false" json:"is_verified"`
	IsLogin                bool       `gorm:"not null;default:false" json:"is_login"`
}

// User is an end-user account.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email       string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PhoneNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone_number"`
	Verification
	ImageKey  string    `gorm:"type:varchar(512)" json:"image,omitempty"`
	Address   *Address  `gorm:"constraint:OnDelete:CASCADE;" json:"address,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	CartEntries []CartEntry `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Orders      []Order     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// Address is the single delivery address of a user.
type Address struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	Street string    `gorm:"type:varchar(255)" json:"street"`
	City   string    `gorm:"type:varchar(100)" json:"city"`
	State  string    `gorm:"type:varchar(100)" json:"state"`
}

// Vendor is a food vendor account and catalog owner.
type Vendor struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ContactInfo string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"contact_info"`
	Email       string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Verification
	IsActive         bool      `gorm:"not null;default:false" json:"is_active"`
	ImageKey         string    `gorm:"type:varchar(512)" json:"image,omitempty"`
	RegistrationDate time.Time `gorm:"autoCreateTime" json:"registration_date"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Locations []Location `gorm:"constraint:OnDelete:CASCADE;" json:"locations,omitempty"`
	MenuItems []MenuItem `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
