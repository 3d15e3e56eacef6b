package repository

import (
	"context"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows a user's order listing.
type OrderFilter struct {
	UserID   uuid.UUID
	VendorID *uuid.UUID
	Page     int
	Limit    int
}

// OrderRepository defines read and quantity-update access to the order ledger.
type OrderRepository interface {
	FindByUser(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	UpdateQuantity(ctx context.Context, id, userID uuid.UUID, quantity int) (*models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByUser pages through the user's orders, newest first. With VendorID
// set only orders for that vendor's items are returned.
func (r *GormOrderRepository) FindByUser(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("orders.user_id = ?", filter.UserID)
	if filter.VendorID != nil {
		query = query.
			Joins("JOIN menu_items ON menu_items.id = orders.menu_item_id").
			Where("menu_items.vendor_id = ?", *filter.VendorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Select("orders.*").
		Offset(offset).Limit(filter.Limit).
		Order("orders.order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormOrderRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateQuantity changes the quantity in place. The price snapshot is kept.
func (r *GormOrderRepository) UpdateQuantity(ctx context.Context, id, userID uuid.UUID, quantity int) (*models.Order, error) {
	var o models.Order
	result := r.db.WithContext(ctx).
		Model(&o).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &o, nil
}
