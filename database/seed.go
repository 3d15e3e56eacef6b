package database

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategorySeed is one node of the category reference tree.
type CategorySeed struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Children    []CategorySeed `yaml:"children"`
}

type categoryFile struct {
	Categories []CategorySeed `yaml:"categories"`
}

// ParseCategorySeed decodes a YAML category tree.
func ParseCategorySeed(r io.Reader) ([]CategorySeed, error) {
	var f categoryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid category file: %w", err)
	}
	if err := validateSeed(f.Categories, map[string]bool{}); err != nil {
		return nil, err
	}
	return f.Categories, nil
}

func validateSeed(nodes []CategorySeed, seen map[string]bool) error {
	for _, n := range nodes {
		name := strings.TrimSpace(n.Name)
		if name == "" {
			return fmt.Errorf("category with empty name")
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("duplicate category %q", name)
		}
		seen[key] = true
		if err := validateSeed(n.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

// SeedCategoriesFromFile loads path and upserts every category by name.
func SeedCategoriesFromFile(ctx context.Context, db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open category file: %w", err)
	}
	defer f.Close()

	seeds, err := ParseCategorySeed(f)
	if err != nil {
		return 0, err
	}

	count := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var walk func(nodes []CategorySeed, parent *uuid.UUID) error
		walk = func(nodes []CategorySeed, parent *uuid.UUID) error {
			for _, n := range nodes {
				c := models.Category{
					Name:        strings.TrimSpace(n.Name),
					Description: n.Description,
					ParentID:    parent,
				}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "name"}},
					DoUpdates: clause.AssignmentColumns([]string{"description", "parent_id"}),
				}).Create(&c).Error; err != nil {
					return fmt.Errorf("seed category %q: %w", c.Name, err)
				}
				count++
				id := c.ID
				if err := walk(n.Children, &id); err != nil {
					return err
				}
			}
			return nil
		}
		return walk(seeds, nil)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
