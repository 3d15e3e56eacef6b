package repository

import (
	"context"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationRepository defines data-access operations for vendor locations.
type LocationRepository interface {
	Exists(ctx context.Context, vendorID uuid.UUID, street, city, state string) (bool, error)
	AddAndActivate(ctx context.Context, location *models.Location) error
	DeleteForVendor(ctx context.Context, id, vendorID uuid.UUID) error
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Location, error)
}

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository.
func NewGormLocationRepository(db *gorm.DB) LocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Exists(ctx context.Context, vendorID uuid.UUID, street, city, state string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("vendor_id = ? AND street = ? AND city = ? AND state = ?", vendorID, street, city, state).
		Count(&count).Error
	return count > 0, err
}

// AddAndActivate inserts the location and marks its vendor active in one
// transaction. A duplicate tuple surfaces as gorm.ErrDuplicatedKey.
func (r *GormLocationRepository) AddAndActivate(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(location).Error; err != nil {
			return err
		}
		return tx.Model(&models.Vendor{}).
			Where("id = ? AND is_active = ?", location.VendorID, false).
			Update("is_active", true).Error
	})
}

// DeleteForVendor removes a location only when vendorID owns it.
func (r *GormLocationRepository) DeleteForVendor(ctx context.Context, id, vendorID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		Delete(&models.Location{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormLocationRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
