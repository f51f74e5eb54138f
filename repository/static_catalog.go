package repository

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"modern-stitch/models"
)

//go:embed seed/catalog.yaml
var seedCatalog []byte

// StaticCatalogRepository serves the catalog from a YAML document, by default the seed
// compiled into the binary
type StaticCatalogRepository struct {
	data []byte
}

// NewStaticCatalogRepository creates a repository over the embedded seed
func NewStaticCatalogRepository() *StaticCatalogRepository {
	return &StaticCatalogRepository{data: seedCatalog}
}

// NewStaticCatalogRepositoryFromYAML creates a repository over the given YAML document
func NewStaticCatalogRepositoryFromYAML(data []byte) *StaticCatalogRepository {
	return &StaticCatalogRepository{data: data}
}

// Ensure StaticCatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*StaticCatalogRepository)(nil)

// LoadCatalog decodes and validates the YAML document
func (r *StaticCatalogRepository) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(r.data))
	dec.KnownFields(true)

	var catalog models.Catalog
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(catalog.Products) == 0 {
		return nil, ErrEmptyCatalog
	}

	for i, p := range catalog.Products {
		category, err := models.ParseCategory(string(p.Category), false)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.ID, err)
		}
		catalog.Products[i].Category = category
	}
	for i, c := range catalog.Categories {
		category, err := models.ParseCategory(string(c.Name), false)
		if err != nil {
			return nil, fmt.Errorf("category card: %w", err)
		}
		catalog.Categories[i].Name = category
	}

	return &catalog, nil
}
