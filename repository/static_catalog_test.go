package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modern-stitch/models"
)

func TestStaticCatalogLoadsSeed(t *testing.T) {
	catalog, err := NewStaticCatalogRepository().LoadCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, catalog.Products, 6)
	first := catalog.Products[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Oversized Midnight Tee", first.Name)
	assert.True(t, decimal.NewFromInt(45).Equal(first.Price))
	assert.Equal(t, models.CategoryStreetwear, first.Category)
	assert.Equal(t, []string{"S", "M", "L", "XL"}, first.Sizes)
	assert.Equal(t, []string{"Midnight Black", "Slate Grey", "Off-White"}, first.Colors)

	assert.Equal(t, []string{"30", "32", "34", "36"}, catalog.Products[1].Sizes)
	assert.Len(t, catalog.Categories, 4)
	assert.Len(t, catalog.Testimonials, 3)
	assert.Len(t, catalog.Lookbook, 4)
	assert.NotEmpty(t, catalog.BrandStoryImage)
}

func TestStaticCatalogRejectsUnknownCategory(t *testing.T) {
	doc := []byte(`
products:
  - id: "x"
    name: Mystery
    price: "10"
    category: Kids
    sizes: [S]
    colors: [Red]
`)
	_, err := NewStaticCatalogRepositoryFromYAML(doc).LoadCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Kids")
}

func TestStaticCatalogRejectsEmpty(t *testing.T) {
	_, err := NewStaticCatalogRepositoryFromYAML([]byte("products: []\n")).LoadCatalog(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestStaticCatalogRejectsUnknownFields(t *testing.T) {
	doc := []byte(`
products:
  - id: "x"
    name: Mystery
    price: "10"
    category: Men
    discount: 5
`)
	_, err := NewStaticCatalogRepositoryFromYAML(doc).LoadCatalog(context.Background())
	require.Error(t, err)
}
