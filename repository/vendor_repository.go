package repository

import (
	"context"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VendorRepository defines data-access operations for vendor accounts.
type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindByEmail(ctx context.Context, email string) (*models.Vendor, error)
	FindByName(ctx context.Context, name string) (*models.Vendor, error)
	FindByContactInfo(ctx context.Context, contact string) (*models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor, columns ...string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context, page, limit int) ([]models.Vendor, int64, error)
	ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Vendor, error)
}

// GormVendorRepository implements VendorRepository using GORM.
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository.
func NewGormVendorRepository(db *gorm.DB) VendorRepository {
	return &GormVendorRepository{db: db}
}

func (r *GormVendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(vendor).Error
}

// FindByID loads the vendor with its locations.
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.db.WithContext(ctx).Preload("Locations").First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormVendorRepository) FindByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	return r.findBy(ctx, "email = ?", email)
}

func (r *GormVendorRepository) FindByName(ctx context.Context, name string) (*models.Vendor, error) {
	return r.findBy(ctx, "name = ?", name)
}

func (r *GormVendorRepository) FindByContactInfo(ctx context.Context, contact string) (*models.Vendor, error) {
	return r.findBy(ctx, "contact_info = ?", contact)
}

func (r *GormVendorRepository) findBy(ctx context.Context, query string, arg interface{}) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.db.WithContext(ctx).Where(query, arg).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Update writes only the named columns. is_active is dropped from the list:
// the vendor is activated by LocationRepository.AddAndActivate alone.
func (r *GormVendorRepository) Update(ctx context.Context, vendor *models.Vendor, columns ...string) error {
	return updateColumns(r.db.WithContext(ctx), vendor, without(columns, "is_active"))
}

// Delete hard-deletes the vendor; locations and menu items cascade.
func (r *GormVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListActive returns a page of active vendors ordered by name.
func (r *GormVendorRepository) ListActive(ctx context.Context, page, limit int) ([]models.Vendor, int64, error) {
	var vendors []models.Vendor
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Vendor{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		return nil, 0, err
	}
	return vendors, total, nil
}

// ListActiveByCategory returns active vendors with at least one item in the category.
func (r *GormVendorRepository) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Vendor, error) {
	var vendors []models.Vendor
	sub := r.db.Model(&models.MenuItem{}).Select("vendor_id").Where("category_id = ?", categoryID)
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND id IN (?)", true, sub).
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}
