package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLocationAddAndActivate_ActivatesVendor(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormLocationRepository(gormDB)

	loc := &models.Location{VendorID: uuid.New(), Street: "12 Allen Ave", City: "Ikeja", State: "Lagos"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "locations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "vendors" SET "is_active"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AddAndActivate(context.Background(), loc)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, loc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationAddAndActivate_InsertFailureRollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormLocationRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "locations"`)).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))
	mock.ExpectRollback()

	err := repo.AddAndActivate(context.Background(), &models.Location{VendorID: uuid.New()})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationExists(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormLocationRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "locations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.Exists(context.Background(), uuid.New(), "12 Allen Ave", "Ikeja", "Lagos")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocationDeleteForVendor_NotOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormLocationRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "locations"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DeleteForVendor(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMenuItemCreate(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormMenuItemRepository(gormDB)

	item := &models.MenuItem{
		VendorID:   uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Suya",
		Price:      decimal.RequireFromString("8.50"),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "menu_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), item))
	assert.NotEqual(t, uuid.Nil, item.ID)
}

func TestMenuItemFindByIDAndVendor_WrongOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormMenuItemRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "menu_items" WHERE id = $1 AND vendor_id = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	item, err := repo.FindByIDAndVendor(context.Background(), uuid.New(), uuid.New())
	assert.Nil(t, item)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMenuItemListByVendor_CategoryFilter(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormMenuItemRepository(gormDB)

	vendorID, categoryID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "menu_items" WHERE vendor_id = $1 AND category_id = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor_id", "category_id", "name", "price"}).
			AddRow(uuid.NewString(), vendorID.String(), categoryID.String(), "Pepper Soup", "6.00"))

	items, err := repo.ListByVendor(context.Background(), vendorID, &categoryID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pepper Soup", items[0].Name)
}

func TestMenuItemDeleteByIDAndVendor_NotOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormMenuItemRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "menu_items"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DeleteByIDAndVendor(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryList(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCategoryRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.NewString(), "Grills").
			AddRow(uuid.NewString(), "Soups"))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
