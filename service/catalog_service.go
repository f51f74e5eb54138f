package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"modern-stitch/models"
	"modern-stitch/repository"
)

// CatalogService is the read-only catalog store. It is loaded once at startup and never
// mutated afterwards, so it is safe for concurrent use without locking.
type CatalogService struct {
	catalog models.Catalog
	byID    map[string]int
}

// NewCatalogService loads the catalog from the repository and indexes it
func NewCatalogService(ctx context.Context, repo repository.CatalogRepositoryInterface, logger *zap.Logger) (*CatalogService, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog service: repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	loaded, err := repo.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	s, err := newCatalogService(*loaded)
	if err != nil {
		return nil, err
	}

	logger.Info("catalog ready",
		zap.Int("products", len(s.catalog.Products)),
		zap.Int("lookbook", len(s.catalog.Lookbook)),
	)
	return s, nil
}

// NewCatalogServiceFromCatalog builds a store over an in-memory catalog
func NewCatalogServiceFromCatalog(catalog models.Catalog) (*CatalogService, error) {
	return newCatalogService(catalog)
}

func newCatalogService(catalog models.Catalog) (*CatalogService, error) {
	byID := make(map[string]int, len(catalog.Products))
	for i, p := range catalog.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: product %q has an empty id", p.Name)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &CatalogService{catalog: catalog, byID: byID}, nil
}

// Products returns every product in catalog order
func (s *CatalogService) Products() []models.Product {
	out := make([]models.Product, len(s.catalog.Products))
	for i, p := range s.catalog.Products {
		out[i] = p.Clone()
	}
	return out
}

// Product looks a product up by id
func (s *CatalogService) Product(id string) (models.Product, error) {
	idx, ok := s.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return s.catalog.Products[idx].Clone(), nil
}

// FilterProducts returns the products of the given category, or the whole catalog for All
func (s *CatalogService) FilterProducts(category models.Category) []models.Product {
	return FilterProducts(s.catalog.Products, category)
}

// FilterProducts is the pure category filter: All returns everything in order, any other
// category returns the matching subset in catalog order
func FilterProducts(products []models.Product, category models.Category) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category == models.CategoryAll || p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Categories returns the category spotlight cards
func (s *CatalogService) Categories() []models.CategoryCard {
	return append([]models.CategoryCard(nil), s.catalog.Categories...)
}

// Testimonials returns the customer quotes
func (s *CatalogService) Testimonials() []models.Testimonial {
	return append([]models.Testimonial(nil), s.catalog.Testimonials...)
}

// Lookbook returns the lookbook entries
func (s *CatalogService) Lookbook() []models.LookbookItem {
	return append([]models.LookbookItem(nil), s.catalog.Lookbook...)
}

// BrandStoryImage returns the about page hero image
func (s *CatalogService) BrandStoryImage() string {
	return s.catalog.BrandStoryImage
}
