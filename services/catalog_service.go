package services

import (
	"context"
	"strings"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/models"
	aws_pkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService covers vendor-managed locations and menu items and the
// public browsing views.
type CatalogService interface {
	AddLocation(ctx context.Context, vendorID uuid.UUID, req *models.LocationRequest) (*models.Location, error)
	DeleteLocation(ctx context.Context, vendorID, locationID uuid.UUID) error

	AddMenuItem(ctx context.Context, vendorID uuid.UUID, req *models.CreateMenuItemRequest) (*models.MenuItem, error)
	ListOwnMenu(ctx context.Context, vendorID uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, vendorID, itemID uuid.UUID, req *models.UpdateMenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, vendorID, itemID uuid.UUID) error
	MenuItemImageUploadURL(ctx context.Context, vendorID, itemID uuid.UUID, contentType string) (*models.ImageUpload, error)

	ListVendors(ctx context.Context, page, limit int) ([]models.Vendor, models.Pagination, error)
	GetVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error)
	VendorMenu(ctx context.Context, vendorID uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	VendorsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Vendor, error)
}

const (
	msgLocationExists   = "Location already exists for this vendor"
	msgLocationNotFound = "Location not found or does not belong to the vendor"
	msgItemNotOwned     = "Item not found or does not belong to the vendor"
	msgCategoryNotFound = "Category not found"
)

// maxPrice is the first value that no longer fits numeric(8,2).
var maxPrice = decimal.NewFromInt(1_000_000)

type catalogServiceImpl struct {
	vendors    repository.VendorRepository
	locations  repository.LocationRepository
	categories repository.CategoryRepository
	items      repository.MenuItemRepository
	images     aws_pkg.UploadPresigner
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService. images may be nil.
func NewCatalogService(
	vendors repository.VendorRepository,
	locations repository.LocationRepository,
	categories repository.CategoryRepository,
	items repository.MenuItemRepository,
	images aws_pkg.UploadPresigner,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{
		vendors:    vendors,
		locations:  locations,
		categories: categories,
		items:      items,
		images:     images,
		logger:     logger,
	}
}

// AddLocation stores a new location and activates the vendor.
func (s *catalogServiceImpl) AddLocation(ctx context.Context, vendorID uuid.UUID, req *models.LocationRequest) (*models.Location, error) {
	loc := &models.Location{
		VendorID: vendorID,
		Street:   strings.TrimSpace(req.Street),
		City:     strings.TrimSpace(req.City),
		State:    strings.TrimSpace(req.State),
	}
	if loc.Street == "" || loc.City == "" || loc.State == "" {
		return nil, apperrors.Validation("Street, city and state are required")
	}

	exists, err := s.locations.Exists(ctx, vendorID, loc.Street, loc.City, loc.State)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict(msgLocationExists)
	}
	if err := s.locations.AddAndActivate(ctx, loc); err != nil {
		return nil, writeErr(err, msgLocationExists)
	}

	s.logger.Info("Location added",
		zap.String("vendor_id", vendorID.String()),
		zap.String("location_id", loc.ID.String()),
	)
	return loc, nil
}

func (s *catalogServiceImpl) DeleteLocation(ctx context.Context, vendorID, locationID uuid.UUID) error {
	if err := s.locations.DeleteForVendor(ctx, locationID, vendorID); err != nil {
		return storeErr(err, msgLocationNotFound)
	}
	return nil
}

// validatePrice enforces price >= 0 with at most two decimals and returns
// the value as stored.
func validatePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, apperrors.Validation("Price must be greater than or equal to 0")
	}
	if !price.Equal(price.Round(2)) {
		return decimal.Zero, apperrors.Validation("Price must have at most 2 decimal places")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, apperrors.Validation("Price must be less than 1000000")
	}
	return price.Round(2), nil
}

func (s *catalogServiceImpl) ensureCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return storeErr(err, msgCategoryNotFound)
	}
	return nil
}

func (s *catalogServiceImpl) AddMenuItem(ctx context.Context, vendorID uuid.UUID, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("Name is required")
	}
	price, err := validatePrice(req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		VendorID:    vendorID,
		CategoryID:  req.CategoryID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       price,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("Menu item added",
		zap.String("vendor_id", vendorID.String()),
		zap.String("item_id", item.ID.String()),
	)
	return item, nil
}

func (s *catalogServiceImpl) ListOwnMenu(ctx context.Context, vendorID uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error) {
	items, err := s.items.ListByVendor(ctx, vendorID, categoryID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return items, nil
}

// UpdateMenuItem applies the non-nil fields. Orders keep their own price.
func (s *catalogServiceImpl) UpdateMenuItem(ctx context.Context, vendorID, itemID uuid.UUID, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, err := s.items.FindByIDAndVendor(ctx, itemID, vendorID)
	if err != nil {
		return nil, storeErr(err, msgItemNotOwned)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation("Name cannot be empty")
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		price, err := validatePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		item.Price = price
	}
	if req.CategoryID != nil && *req.CategoryID != item.CategoryID {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *req.CategoryID
	}

	if err := s.items.Update(ctx, item, "name", "description", "price", "category_id"); err != nil {
		return nil, apperrors.Internal(err)
	}
	return item, nil
}

func (s *catalogServiceImpl) DeleteMenuItem(ctx context.Context, vendorID, itemID uuid.UUID) error {
	if err := s.items.DeleteByIDAndVendor(ctx, itemID, vendorID); err != nil {
		return storeErr(err, msgItemNotOwned)
	}
	return nil
}

func (s *catalogServiceImpl) MenuItemImageUploadURL(ctx context.Context, vendorID, itemID uuid.UUID, contentType string) (*models.ImageUpload, error) {
	item, err := s.items.FindByIDAndVendor(ctx, itemID, vendorID)
	if err != nil {
		return nil, storeErr(err, msgItemNotOwned)
	}
	upload, err := presignImage(ctx, s.images, "menu-items", item.ID, contentType)
	if err != nil {
		return nil, err
	}
	item.ImageKey = upload.ImageKey
	if err := s.items.Update(ctx, item, "image_key"); err != nil {
		return nil, apperrors.Internal(err)
	}
	return upload, nil
}

func (s *catalogServiceImpl) ListVendors(ctx context.Context, page, limit int) ([]models.Vendor, models.Pagination, error) {
	page, limit = normalizePage(page, limit)
	vendors, total, err := s.vendors.ListActive(ctx, page, limit)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	return vendors, models.NewPagination(total, page, limit), nil
}

// GetVendor returns an active vendor with its locations.
func (s *catalogServiceImpl) GetVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, storeErr(err, msgVendorNotFound)
	}
	if !vendor.IsActive {
		return nil, apperrors.NotFound(msgVendorNotFound)
	}
	return vendor, nil
}

func (s *catalogServiceImpl) VendorMenu(ctx context.Context, vendorID uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error) {
	if _, err := s.GetVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByVendor(ctx, vendorID, categoryID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return items, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

func (s *catalogServiceImpl) VendorsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Vendor, error) {
	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	vendors, err := s.vendors.ListActiveByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return vendors, nil
}
