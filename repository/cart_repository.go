package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines data-access operations for cart entries. All
// operations are scoped to one user.
type CartRepository interface {
	AddOrIncrement(ctx context.Context, userID, itemID uuid.UUID) (*models.CartEntry, error)
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
	Checkout(ctx context.Context, userID uuid.UUID, orderedAt time.Time) ([]models.Order, error)
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// AddOrIncrement inserts the (user, item) entry with quantity 1, or adds 1
// to the existing entry, in a single statement.
func (r *GormCartRepository) AddOrIncrement(ctx context.Context, userID, itemID uuid.UUID) (*models.CartEntry, error) {
	entry := models.CartEntry{UserID: userID, MenuItemID: itemID, Quantity: 1}
	err := r.db.WithContext(ctx).
		Omit("MenuItem").
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity":   gorm.Expr("cart_entries.quantity + 1"),
					"updated_at": time.Now(),
				}),
			},
			clause.Returning{},
		).
		Create(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SetQuantity overwrites the quantity of an existing entry.
func (r *GormCartRepository) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartEntry, error) {
	var entry models.CartEntry
	result := r.db.WithContext(ctx).
		Model(&entry).
		Clauses(clause.Returning{}).
		Where("user_id = ? AND menu_item_id = ?", userID, itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &entry, nil
}

// ListByUser returns the user's entries with their menu items.
func (r *GormCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	if err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, itemID).
		Delete(&models.CartEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormCartRepository) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartEntry{})
	return result.RowsAffected, result.Error
}

// Checkout converts the user's cart into orders inside one transaction.
// Cart rows are locked, each order takes the item's current price, and
// exactly the converted rows are deleted. An empty cart commits nothing.
func (r *GormCartRepository) Checkout(ctx context.Context, userID uuid.UUID, orderedAt time.Time) ([]models.Order, error) {
	var orders []models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entries []models.CartEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		entryIDs := make([]uuid.UUID, 0, len(entries))
		itemIDs := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			entryIDs = append(entryIDs, e.ID)
			itemIDs = append(itemIDs, e.MenuItemID)
		}

		var items []models.MenuItem
		if err := tx.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return err
		}
		prices := make(map[uuid.UUID]decimal.Decimal, len(items))
		for _, item := range items {
			prices[item.ID] = item.Price
		}

		orders = make([]models.Order, 0, len(entries))
		for _, e := range entries {
			price, ok := prices[e.MenuItemID]
			if !ok {
				return fmt.Errorf("menu item %s: %w", e.MenuItemID, gorm.ErrRecordNotFound)
			}
			orders = append(orders, models.Order{
				UserID:     userID,
				MenuItemID: e.MenuItemID,
				Quantity:   e.Quantity,
				Price:      price,
				OrderDate:  orderedAt,
				Delivered:  false,
				PaidFor:    true,
			})
		}

		if err := tx.Omit("MenuItem").Create(&orders).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", entryIDs).Delete(&models.CartEntry{}).Error
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
