package models

import "gorm.io/gorm"

// Migrate creates or updates all tables in foreign-key order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Vendor{},
		&Location{},
		&MenuItem{},
		&User{},
		&Address{},
		&CartEntry{},
		&Order{},
	)
}
