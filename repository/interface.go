package repository

import (
	"context"
	"errors"

	"modern-stitch/models"
)

// ErrEmptyCatalog is returned when a source yields no products
var ErrEmptyCatalog = errors.New("catalog has no products")

// CatalogRepositoryInterface defines the contract for loading the static catalog
type CatalogRepositoryInterface interface {
	LoadCatalog(ctx context.Context) (*models.Catalog, error)
}
