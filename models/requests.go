package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterUserRequest is the payload for POST /users/register.
type RegisterUserRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// RegisterVendorRequest is the payload for POST /vendors/register.
type RegisterVendorRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	ContactInfo string `json:"contact_info" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

// EmailRequest carries an email address (login, resend code, update email).
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyCodeRequest exchanges a verification code for a session.
type VerifyCodeRequest struct {
	Email            string `json:"email" binding:"required,email"`
	VerificationCode string `json:"verification_code" binding:"required,len=6,numeric"`
}

type UpdatePhoneRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type UpdateContactInfoRequest struct {
	ContactInfo string `json:"contact_info" binding:"required"`
}

type UpdateNameRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
}

// UpdateVendorRequest updates name and/or description.
type UpdateVendorRequest struct {
	Name        string  `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

type AddressRequest struct {
	Street string `json:"street" binding:"omitempty,max=255"`
	City   string `json:"city" binding:"omitempty,max=100"`
	State  string `json:"state" binding:"omitempty,max=100"`
}

type LocationRequest struct {
	Street string `json:"street" binding:"required,max=255"`
	City   string `json:"city" binding:"required,max=100"`
	State  string `json:"state" binding:"required,max=100"`
}

type CreateMenuItemRequest struct {
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"gte=0"`
}

// UpdateMenuItemRequest is a partial update; nil fields are left unchanged.
type UpdateMenuItemRequest struct {
	CategoryID  *uuid.UUID       `json:"category_id"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty,gte=0"`
}

type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ImageUpload is returned to the client to PUT the image bytes directly.
type ImageUpload struct {
	UploadURL string            `json:"upload_url"`
	Headers   map[string]string `json:"headers,omitempty"`
	ImageKey  string            `json:"image_key"`
}

// Pagination describes a page of results.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination computes page counts for total rows.
func NewPagination(total int64, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}
