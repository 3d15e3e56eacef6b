package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memLocationRepo struct {
	vendors   *memVendorRepo
	locations map[uuid.UUID]models.Location
}

func (r *memLocationRepo) Exists(_ context.Context, vendorID uuid.UUID, street, city, state string) (bool, error) {
	for _, l := range r.locations {
		if l.VendorID == vendorID && l.Street == street && l.City == city && l.State == state {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLocationRepo) AddAndActivate(_ context.Context, loc *models.Location) error {
	loc.ID = uuid.New()
	r.locations[loc.ID] = *loc
	return r.vendors.activate(loc.VendorID)
}

func (r *memLocationRepo) DeleteForVendor(_ context.Context, id, vendorID uuid.UUID) error {
	l, ok := r.locations[id]
	if !ok || l.VendorID != vendorID {
		return gorm.ErrRecordNotFound
	}
	delete(r.locations, id)
	return nil
}

func (r *memLocationRepo) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]models.Location, error) {
	var out []models.Location
	for _, l := range r.locations {
		if l.VendorID == vendorID {
			out = append(out, l)
		}
	}
	return out, nil
}

type memCategoryRepo struct {
	categories []models.Category
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCategoryRepo) List(_ context.Context) ([]models.Category, error) {
	return r.categories, nil
}

type memMenuItemRepo struct {
	items map[uuid.UUID]models.MenuItem
}

func newMemMenuItemRepo() *memMenuItemRepo {
	return &memMenuItemRepo{items: map[uuid.UUID]models.MenuItem{}}
}

func (r *memMenuItemRepo) Create(_ context.Context, item *models.MenuItem) error {
	item.ID = uuid.New()
	r.items[item.ID] = *item
	return nil
}

func (r *memMenuItemRepo) FindByID(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memMenuItemRepo) FindByIDAndVendor(_ context.Context, id, vendorID uuid.UUID) (*models.MenuItem, error) {
	item, ok := r.items[id]
	if !ok || item.VendorID != vendorID {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memMenuItemRepo) ListByVendor(_ context.Context, vendorID uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range r.items {
		if item.VendorID != vendorID {
			continue
		}
		if categoryID != nil && item.CategoryID != *categoryID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *memMenuItemRepo) Update(_ context.Context, item *models.MenuItem, columns ...string) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, c := range columns {
		switch c {
		case "name":
			stored.Name = item.Name
		case "description":
			stored.Description = item.Description
		case "price":
			stored.Price = item.Price
		case "category_id":
			stored.CategoryID = item.CategoryID
		case "image_key":
			stored.ImageKey = item.ImageKey
		default:
			return fmt.Errorf("unknown menu item column %q", c)
		}
	}
	r.items[item.ID] = stored
	return nil
}

func (r *memMenuItemRepo) DeleteByIDAndVendor(_ context.Context, id, vendorID uuid.UUID) error {
	item, ok := r.items[id]
	if !ok || item.VendorID != vendorID {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

type catalogFixture struct {
	svc       services.CatalogService
	vendors   *memVendorRepo
	items     *memMenuItemRepo
	vendorA   *models.Vendor
	vendorB   *models.Vendor
	soups     models.Category
	swallow   models.Category
	presigner *fakePresigner
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	vendors := newMemVendorRepo()
	a := &models.Vendor{Name: "A", Email: "a@example.com", ContactInfo: "+2348030000001"}
	b := &models.Vendor{Name: "B", Email: "b@example.com", ContactInfo: "+2348030000002"}
	require.NoError(t, vendors.Create(context.Background(), a))
	require.NoError(t, vendors.Create(context.Background(), b))

	soups := models.Category{ID: uuid.New(), Name: "Soups"}
	swallow := models.Category{ID: uuid.New(), Name: "Swallow"}
	items := newMemMenuItemRepo()
	presigner := &fakePresigner{}

	svc := services.NewCatalogService(
		vendors,
		&memLocationRepo{vendors: vendors, locations: map[uuid.UUID]models.Location{}},
		&memCategoryRepo{categories: []models.Category{soups, swallow}},
		items,
		presigner,
		testLogger(),
	)
	return &catalogFixture{
		svc: svc, vendors: vendors, items: items,
		vendorA: a, vendorB: b, soups: soups, swallow: swallow,
		presigner: presigner,
	}
}

func TestAddLocation_ActivatesVendor(t *testing.T) {
	f := newCatalogFixture(t)

	loc, err := f.svc.AddLocation(context.Background(), f.vendorA.ID, &models.LocationRequest{Street: "1 Allen Ave", City: "Ikeja", State: "Lagos"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, loc.ID)

	vendor, err := f.svc.GetVendor(context.Background(), f.vendorA.ID)
	require.NoError(t, err)
	assert.True(t, vendor.IsActive)
}

func TestAddLocation_DuplicateConflict(t *testing.T) {
	f := newCatalogFixture(t)
	req := &models.LocationRequest{Street: "1 Allen Ave", City: "Ikeja", State: "Lagos"}

	_, err := f.svc.AddLocation(context.Background(), f.vendorA.ID, req)
	require.NoError(t, err)

	_, err = f.svc.AddLocation(context.Background(), f.vendorA.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	assert.Equal(t, "Location already exists for this vendor", err.Error())

	_, err = f.svc.AddLocation(context.Background(), f.vendorB.ID, req)
	assert.NoError(t, err)
}

func TestDeleteLocation_OtherVendorIsNotFound(t *testing.T) {
	f := newCatalogFixture(t)
	loc, err := f.svc.AddLocation(context.Background(), f.vendorA.ID, &models.LocationRequest{Street: "1 Allen Ave", City: "Ikeja", State: "Lagos"})
	require.NoError(t, err)

	err = f.svc.DeleteLocation(context.Background(), f.vendorB.ID, loc.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	assert.NoError(t, f.svc.DeleteLocation(context.Background(), f.vendorA.ID, loc.ID))
}

func TestGetVendor_InactiveIsNotFound(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.svc.GetVendor(context.Background(), f.vendorA.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestAddMenuItem_PriceValidation(t *testing.T) {
	f := newCatalogFixture(t)

	tests := []struct {
		name    string
		price   string
		wantErr bool
	}{
		{"zero", "0", false},
		{"two decimals", "2500.50", false},
		{"negative", "-1", true},
		{"three decimals", "1.005", true},
		{"too large", "1000000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := f.svc.AddMenuItem(context.Background(), f.vendorA.ID, &models.CreateMenuItemRequest{
				CategoryID: f.soups.ID,
				Name:       "Egusi",
				Price:      decimal.RequireFromString(tt.price),
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.True(t, item.Price.Equal(decimal.RequireFromString(tt.price)))
		})
	}
}

func TestAddMenuItem_UnknownCategory(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.svc.AddMenuItem(context.Background(), f.vendorA.ID, &models.CreateMenuItemRequest{
		CategoryID: uuid.New(),
		Name:       "Egusi",
		Price:      decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Category not found", err.Error())
}

func TestMenuItems_ScopedToOwner(t *testing.T) {
	f := newCatalogFixture(t)
	item, err := f.svc.AddMenuItem(context.Background(), f.vendorA.ID, &models.CreateMenuItemRequest{
		CategoryID: f.soups.ID, Name: "Egusi", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("12.50")
	_, err = f.svc.UpdateMenuItem(context.Background(), f.vendorB.ID, item.ID, &models.UpdateMenuItemRequest{Price: &newPrice})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Item not found or does not belong to the vendor", err.Error())

	err = f.svc.DeleteMenuItem(context.Background(), f.vendorB.ID, item.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = f.svc.MenuItemImageUploadURL(context.Background(), f.vendorB.ID, item.ID, "image/png")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	updated, err := f.svc.UpdateMenuItem(context.Background(), f.vendorA.ID, item.ID, &models.UpdateMenuItemRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "12.5", updated.Price.String())
	assert.Equal(t, "Egusi", updated.Name)
}

func TestUpdateMenuItem_ChangesCategory(t *testing.T) {
	f := newCatalogFixture(t)
	item, err := f.svc.AddMenuItem(context.Background(), f.vendorA.ID, &models.CreateMenuItemRequest{
		CategoryID: f.soups.ID, Name: "Amala", Price: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	unknown := uuid.New()
	_, err = f.svc.UpdateMenuItem(context.Background(), f.vendorA.ID, item.ID, &models.UpdateMenuItemRequest{CategoryID: &unknown})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = f.svc.UpdateMenuItem(context.Background(), f.vendorA.ID, item.ID, &models.UpdateMenuItemRequest{CategoryID: &f.swallow.ID})
	require.NoError(t, err)

	swallow, err := f.svc.ListOwnMenu(context.Background(), f.vendorA.ID, &f.swallow.ID)
	require.NoError(t, err)
	require.Len(t, swallow, 1)
	assert.Equal(t, "Amala", swallow[0].Name)
}

func TestMenuItemImageUploadURL(t *testing.T) {
	f := newCatalogFixture(t)
	item, err := f.svc.AddMenuItem(context.Background(), f.vendorA.ID, &models.CreateMenuItemRequest{
		CategoryID: f.soups.ID, Name: "Egusi", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	upload, err := f.svc.MenuItemImageUploadURL(context.Background(), f.vendorA.ID, item.ID, "image/webp")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.ImageKey, "menu-items/"+item.ID.String()+"/"))
	assert.Equal(t, upload.ImageKey, f.presigner.key)
	assert.Equal(t, upload.ImageKey, f.items.items[item.ID].ImageKey)
}

func TestVendorMenu_RequiresActiveVendor(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.svc.AddMenuItem(context.Background(), f.vendorA.ID, &models.CreateMenuItemRequest{
		CategoryID: f.soups.ID, Name: "Egusi", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = f.svc.VendorMenu(context.Background(), f.vendorA.ID, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = f.svc.AddLocation(context.Background(), f.vendorA.ID, &models.LocationRequest{Street: "1 Allen Ave", City: "Ikeja", State: "Lagos"})
	require.NoError(t, err)

	menu, err := f.svc.VendorMenu(context.Background(), f.vendorA.ID, nil)
	require.NoError(t, err)
	assert.Len(t, menu, 1)
}

func TestListVendors_DefaultsPaging(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.svc.AddLocation(context.Background(), f.vendorA.ID, &models.LocationRequest{Street: "1 Allen Ave", City: "Ikeja", State: "Lagos"})
	require.NoError(t, err)

	vendors, page, err := f.svc.ListVendors(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
	assert.Equal(t, models.Pagination{Total: 1, Page: 1, Limit: 20, Pages: 1}, page)
}

func TestVendorsByCategory_UnknownCategory(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.svc.VendorsByCategory(context.Background(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	categories, err := f.svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
