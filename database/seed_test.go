package database_test

import (
	"strings"
	"testing"

	"github.com/EkeneDeProgram/909ineFoods/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategorySeed(t *testing.T) {
	doc := `
categories:
  - name: Rice Dishes
    description: Jollof, fried rice and friends
    children:
      - name: Jollof
      - name: Fried Rice
  - name: Soups
`
	seeds, err := database.ParseCategorySeed(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "Rice Dishes", seeds[0].Name)
	assert.Len(t, seeds[0].Children, 2)
	assert.Equal(t, "Fried Rice", seeds[0].Children[1].Name)
	assert.Empty(t, seeds[1].Children)
}

func TestParseCategorySeed_Duplicate(t *testing.T) {
	doc := `
categories:
  - name: Soups
    children:
      - name: soups
`
	_, err := database.ParseCategorySeed(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestParseCategorySeed_UnknownField(t *testing.T) {
	_, err := database.ParseCategorySeed(strings.NewReader("categories:\n  - title: Soups\n"))
	assert.Error(t, err)
}

func TestParseCategorySeed_Empty(t *testing.T) {
	seeds, err := database.ParseCategorySeed(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, seeds)
}

func TestPostgresConfigDSN(t *testing.T) {
	cfg := database.PostgresConfig{Host: "db", Port: "5432", User: "app", Password: "pw", DBName: "food", SSLMode: "disable", TimeZone: "Africa/Lagos"}
	assert.Equal(t, "host=db user=app password=pw dbname=food port=5432 sslmode=disable TimeZone=Africa/Lagos", cfg.DSN())
}
