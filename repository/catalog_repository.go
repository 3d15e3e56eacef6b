package repository

import (
	"context"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository reads category reference data.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

// MenuItemRepository defines data-access operations for menu items. Every
// mutation is scoped by the owning vendor.
type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	FindByIDAndVendor(ctx context.Context, id, vendorID uuid.UUID) (*models.MenuItem, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem, columns ...string) error
	DeleteByIDAndVendor(ctx context.Context, id, vendorID uuid.UUID) error
}

// GormCategoryRepository implements CategoryRepository using GORM.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository.
func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GormMenuItemRepository implements MenuItemRepository using GORM.
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository.
func NewGormMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

func (r *GormMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Omit("Category").Create(item).Error
}

func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormMenuItemRepository) FindByIDAndVendor(ctx context.Context, id, vendorID uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByVendor returns the vendor's menu, optionally narrowed to one category.
func (r *GormMenuItemRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error) {
	var items []models.MenuItem
	query := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes only the named columns of the item row.
func (r *GormMenuItemRepository) Update(ctx context.Context, item *models.MenuItem, columns ...string) error {
	return updateColumns(r.db.WithContext(ctx), item, columns)
}

// DeleteByIDAndVendor removes the item only when vendorID owns it.
func (r *GormMenuItemRepository) DeleteByIDAndVendor(ctx context.Context, id, vendorID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		Delete(&models.MenuItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
