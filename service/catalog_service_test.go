package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"modern-stitch/models"
	"modern-stitch/repository"
)

type stubCatalogRepo struct {
	catalog *models.Catalog
	err     error
}

func (s stubCatalogRepo) LoadCatalog(context.Context) (*models.Catalog, error) {
	return s.catalog, s.err
}

func TestCatalogServiceFromSeed(t *testing.T) {
	svc, err := NewCatalogService(context.Background(), repository.NewStaticCatalogRepository(), zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, svc.Products(), 6)
	p, err := svc.Product("5")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryModern, p.Category)
	assert.NotEmpty(t, svc.Lookbook())
	assert.NotEmpty(t, svc.Testimonials())
	assert.NotEmpty(t, svc.BrandStoryImage())
}

func TestCatalogServiceLoadError(t *testing.T) {
	_, err := NewCatalogService(context.Background(), stubCatalogRepo{err: repository.ErrEmptyCatalog}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrEmptyCatalog))
}

func TestCatalogServiceRejectsDuplicateIDs(t *testing.T) {
	catalog := testCatalog()
	catalog.Products = append(catalog.Products, catalog.Products[0])
	_, err := NewCatalogServiceFromCatalog(catalog)
	assert.Error(t, err)
}

func TestCatalogServiceProductNotFound(t *testing.T) {
	svc, err := NewCatalogServiceFromCatalog(testCatalog())
	require.NoError(t, err)

	_, err = svc.Product("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFilterProducts(t *testing.T) {
	svc, err := NewCatalogServiceFromCatalog(testCatalog())
	require.NoError(t, err)

	all := svc.FilterProducts(models.CategoryAll)
	require.Len(t, all, 4)
	for i, p := range svc.Products() {
		assert.Equal(t, p.ID, all[i].ID)
	}

	street := svc.FilterProducts(models.CategoryStreetwear)
	require.Len(t, street, 2)
	assert.Equal(t, "1", street[0].ID)
	assert.Equal(t, "4", street[1].ID)

	assert.Empty(t, svc.FilterProducts(models.CategoryModern))
}

func TestCatalogServiceReturnsCopies(t *testing.T) {
	svc, err := NewCatalogServiceFromCatalog(testCatalog())
	require.NoError(t, err)

	products := svc.Products()
	products[0].Sizes[0] = "changed"
	products[0].Name = "changed"

	p, err := svc.Product("1")
	require.NoError(t, err)
	assert.Equal(t, "S", p.Sizes[0])
	assert.Equal(t, "Product 1", p.Name)
}
