package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modern-stitch/models"
)

func TestNavigationDefaults(t *testing.T) {
	view := NewNavigation().View()
	assert.Equal(t, models.PageHome, view.Page)
	assert.Equal(t, models.CategoryAll, view.SelectedCategory)
	assert.Nil(t, view.SelectedProduct)
	assert.Zero(t, view.ScrollY)
}

func TestNavigationSelectProduct(t *testing.T) {
	nav := NewNavigation()
	nav.RecordScroll(900)
	nav.SelectProduct(product("3", "120", models.CategoryWomen, "XS"))

	view := nav.View()
	assert.Equal(t, models.PageProduct, view.Page)
	require.NotNil(t, view.SelectedProduct)
	assert.Equal(t, "3", view.SelectedProduct.ID)
	assert.Zero(t, view.ScrollY)
}

func TestNavigationSelectCategory(t *testing.T) {
	nav := NewNavigation()
	nav.RecordScroll(400)
	nav.SelectCategory(models.CategoryMen)

	view := nav.View()
	assert.Equal(t, models.PageShop, view.Page)
	assert.Equal(t, models.CategoryMen, view.SelectedCategory)
	assert.Zero(t, view.ScrollY)
}

func TestNavigationSetPageKeepsSelection(t *testing.T) {
	nav := NewNavigation()
	nav.SelectProduct(product("1", "45", models.CategoryStreetwear, "S"))
	nav.SetPage(models.PageWardrobe)

	assert.Equal(t, models.PageWardrobe, nav.Page())
	p, ok := nav.SelectedProduct()
	require.True(t, ok)
	assert.Equal(t, "1", p.ID)
}

func TestNavigationFilterAndScroll(t *testing.T) {
	nav := NewNavigation()
	nav.SetPage(models.PageShop)
	nav.SetCategoryFilter(models.CategoryWomen)
	nav.RecordScroll(-20)

	assert.Equal(t, models.CategoryWomen, nav.Category())
	assert.Equal(t, models.PageShop, nav.Page())
	assert.Zero(t, nav.View().ScrollY)

	nav.RecordScroll(120)
	assert.Equal(t, 120, nav.View().ScrollY)
}
