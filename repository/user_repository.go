package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines data-access operations for end-user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, user *models.User, columns ...string) error
	SaveAddress(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

// FindByID loads the user together with the address.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Preload("Address").First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Update writes only the named columns of the user row. The address is
// saved separately.
func (r *GormUserRepository) Update(ctx context.Context, user *models.User, columns ...string) error {
	return updateColumns(r.db.WithContext(ctx), user, columns)
}

// SaveAddress creates the user's address or updates it in place.
func (r *GormUserRepository) SaveAddress(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"street", "city", "state"}),
	}).Create(address).Error
}

// Delete hard-deletes the user; cart entries, orders and address cascade.
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ErrNoColumns is returned by the column-scoped updates when nothing is named.
var ErrNoColumns = errors.New("no columns to update")

// updateColumns issues UPDATE ... SET <columns> WHERE id = <model id>.
// Zero values in the named columns are written.
func updateColumns(db *gorm.DB, model interface{}, columns []string) error {
	if len(columns) == 0 {
		return ErrNoColumns
	}
	result := db.Model(model).Select(columns).Omit(clause.Associations).Updates(model)
	if result.Error != nil {
		return fmt.Errorf("update %v: %w", columns, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func without(columns []string, drop string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != drop {
			out = append(out, c)
		}
	}
	return out
}
