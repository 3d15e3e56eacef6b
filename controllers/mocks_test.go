package controllers_test

import (
	"context"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/google/uuid"
)

// ---- concrete mock implementing services.UserService ----

type mockUserSvc struct {
	user      *models.User
	session   *services.Session
	err       error
	lastEmail string
	lastCode  string
	loggedOut *services.SessionClaims
}

func (m *mockUserSvc) Register(_ context.Context, req *models.RegisterUserRequest) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastEmail = req.Email
	return m.user, nil
}

func (m *mockUserSvc) RequestLogin(_ context.Context, email string) error {
	m.lastEmail = email
	return m.err
}

func (m *mockUserSvc) ResendCode(_ context.Context, email string) error {
	m.lastEmail = email
	return m.err
}

func (m *mockUserSvc) Verify(_ context.Context, email, code string) (*models.User, *services.Session, error) {
	m.lastEmail, m.lastCode = email, code
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.user, m.session, nil
}

func (m *mockUserSvc) Profile(context.Context, uuid.UUID) (*models.User, error) {
	return m.user, m.err
}

func (m *mockUserSvc) Logout(_ context.Context, _ uuid.UUID, claims *services.SessionClaims) error {
	m.loggedOut = claims
	return m.err
}

func (m *mockUserSvc) UpdateEmail(context.Context, uuid.UUID, string) (*models.User, error) {
	return m.user, m.err
}

func (m *mockUserSvc) UpdatePhone(context.Context, uuid.UUID, string) (*models.User, error) {
	return m.user, m.err
}

func (m *mockUserSvc) UpdateName(context.Context, uuid.UUID, *models.UpdateNameRequest) (*models.User, error) {
	return m.user, m.err
}

func (m *mockUserSvc) UpdateAddress(context.Context, uuid.UUID, *models.AddressRequest) (*models.User, error) {
	return m.user, m.err
}

func (m *mockUserSvc) ImageUploadURL(context.Context, uuid.UUID, string) (*models.ImageUpload, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.ImageUpload{UploadURL: "https://example.com/upload", ImageKey: "users/x/y.png"}, nil
}

func (m *mockUserSvc) Delete(context.Context, uuid.UUID, *services.SessionClaims) error {
	return m.err
}

// ---- concrete mock implementing services.CatalogService ----

type mockCatalogSvc struct {
	item       *models.MenuItem
	items      []models.MenuItem
	vendors    []models.Vendor
	pagination models.Pagination
	err        error
	lastCreate *models.CreateMenuItemRequest
	lastCat    *uuid.UUID
	lastPage   [2]int
}

func (m *mockCatalogSvc) AddLocation(_ context.Context, vendorID uuid.UUID, req *models.LocationRequest) (*models.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Location{ID: uuid.New(), VendorID: vendorID, Street: req.Street, City: req.City, State: req.State}, nil
}

func (m *mockCatalogSvc) DeleteLocation(context.Context, uuid.UUID, uuid.UUID) error { return m.err }

func (m *mockCatalogSvc) AddMenuItem(_ context.Context, _ uuid.UUID, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	m.lastCreate = req
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}

func (m *mockCatalogSvc) ListOwnMenu(_ context.Context, _ uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error) {
	m.lastCat = categoryID
	return m.items, m.err
}

func (m *mockCatalogSvc) UpdateMenuItem(context.Context, uuid.UUID, uuid.UUID, *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	return m.item, m.err
}

func (m *mockCatalogSvc) DeleteMenuItem(context.Context, uuid.UUID, uuid.UUID) error { return m.err }

func (m *mockCatalogSvc) MenuItemImageUploadURL(context.Context, uuid.UUID, uuid.UUID, string) (*models.ImageUpload, error) {
	return &models.ImageUpload{}, m.err
}

func (m *mockCatalogSvc) ListVendors(_ context.Context, page, limit int) ([]models.Vendor, models.Pagination, error) {
	m.lastPage = [2]int{page, limit}
	return m.vendors, m.pagination, m.err
}

func (m *mockCatalogSvc) GetVendor(context.Context, uuid.UUID) (*models.Vendor, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.vendors[0], nil
}

func (m *mockCatalogSvc) VendorMenu(_ context.Context, _ uuid.UUID, categoryID *uuid.UUID) ([]models.MenuItem, error) {
	m.lastCat = categoryID
	return m.items, m.err
}

func (m *mockCatalogSvc) ListCategories(context.Context) ([]models.Category, error) {
	return nil, m.err
}

func (m *mockCatalogSvc) VendorsByCategory(context.Context, uuid.UUID) ([]models.Vendor, error) {
	return m.vendors, m.err
}

// ---- concrete mock implementing services.CartService ----

type mockCartSvc struct {
	entry    *models.CartEntry
	summary  *models.CartSummary
	checkout *models.CheckoutResult
	err      error
	lastQty  int
}

func (m *mockCartSvc) AddItem(context.Context, uuid.UUID, uuid.UUID) (*models.CartEntry, error) {
	return m.entry, m.err
}

func (m *mockCartSvc) UpdateQuantity(_ context.Context, _, _ uuid.UUID, quantity int) (*models.CartEntry, error) {
	m.lastQty = quantity
	return m.entry, m.err
}

func (m *mockCartSvc) List(context.Context, uuid.UUID) (*models.CartSummary, error) {
	return m.summary, m.err
}

func (m *mockCartSvc) RemoveItem(context.Context, uuid.UUID, uuid.UUID) error { return m.err }

func (m *mockCartSvc) Clear(context.Context, uuid.UUID) error { return m.err }

func (m *mockCartSvc) Checkout(context.Context, uuid.UUID) (*models.CheckoutResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.checkout, nil
}

// ---- concrete mock implementing services.OrderService ----

type mockOrderSvc struct {
	orders     []models.Order
	err        error
	lastVendor *uuid.UUID
}

func (m *mockOrderSvc) List(_ context.Context, _ uuid.UUID, vendorID *uuid.UUID, page, limit int) ([]models.Order, models.Pagination, error) {
	m.lastVendor = vendorID
	return m.orders, models.NewPagination(int64(len(m.orders)), page, limit), m.err
}

func (m *mockOrderSvc) Get(context.Context, uuid.UUID, uuid.UUID) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.orders[0], nil
}

func (m *mockOrderSvc) UpdateQuantity(context.Context, uuid.UUID, uuid.UUID, int) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.orders[0], nil
}
