package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"modern-stitch/models"
)

// CatalogRepository loads the catalog from PostgreSQL
type CatalogRepository struct {
	db     *sql.DB
	logger *zap.Logger
	types  *pgtype.Map
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB, logger *zap.Logger) *CatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogRepository{
		db:     db,
		logger: logger,
		types:  pgtype.NewMap(),
	}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// LoadCatalog reads products, category cards, testimonials and lookbook entries
func (r *CatalogRepository) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	if r.db == nil {
		return nil, fmt.Errorf("catalog repository: database is not initialised")
	}

	products, err := r.getProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	categories, err := r.getCategoryCards(ctx)
	if err != nil {
		return nil, err
	}
	testimonials, err := r.getTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	lookbook, err := r.getLookbook(ctx)
	if err != nil {
		return nil, err
	}
	brandStory, err := scanBrandStoryImage(r.db.QueryRowContext(ctx, `SELECT value FROM storefront_settings WHERE key = 'brand_story_image'`))
	if err != nil {
		return nil, err
	}

	r.logger.Info("catalog loaded from database",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
		zap.Int("testimonials", len(testimonials)),
		zap.Int("lookbook", len(lookbook)),
	)

	return &models.Catalog{
		Products:        products,
		Categories:      categories,
		Testimonials:    testimonials,
		Lookbook:        lookbook,
		BrandStoryImage: brandStory,
	}, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBrandStoryImage reads the optional brand story setting; a missing row is not an error
func scanBrandStoryImage(row rowScanner) (string, error) {
	var value sql.NullString
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query brand story image: %w", err)
	}
	return value.String, nil
}

func (r *CatalogRepository) getProducts(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT
			id,
			name,
			price,
			category,
			COALESCE(description, '') AS description,
			COALESCE(long_description, '') AS long_description,
			COALESCE(image, '') AS image,
			rating,
			reviews,
			features,
			sizes,
			colors
		FROM products
		WHERE is_active = true
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, ok, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			products = append(products, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// scanProduct maps one products row. ok is false for rows whose category is unknown.
// features, sizes and colors are text[] columns.
func (r *CatalogRepository) scanProduct(row rowScanner) (p models.Product, ok bool, err error) {
	var category string
	err = row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&category,
		&p.Description,
		&p.LongDescription,
		&p.Image,
		&p.Rating,
		&p.Reviews,
		r.types.SQLScanner(&p.Features),
		r.types.SQLScanner(&p.Sizes),
		r.types.SQLScanner(&p.Colors),
	)
	if err != nil {
		return models.Product{}, false, fmt.Errorf("failed to scan product: %w", err)
	}

	parsed, err := models.ParseCategory(category, false)
	if err != nil {
		r.logger.Warn("skipping product with unknown category",
			zap.String("product_id", p.ID),
			zap.String("category", category),
		)
		return models.Product{}, false, nil
	}
	p.Category = parsed
	return p, true, nil
}

func (r *CatalogRepository) getCategoryCards(ctx context.Context) ([]models.CategoryCard, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, image, item_count FROM category_cards ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category cards: %w", err)
	}
	defer rows.Close()

	var cards []models.CategoryCard
	for rows.Next() {
		card, ok, err := r.scanCategoryCard(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			cards = append(cards, card)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category cards: %w", err)
	}
	return cards, nil
}

func (r *CatalogRepository) scanCategoryCard(row rowScanner) (card models.CategoryCard, ok bool, err error) {
	var name string
	if err := row.Scan(&name, &card.Image, &card.Count); err != nil {
		return models.CategoryCard{}, false, fmt.Errorf("failed to scan category card: %w", err)
	}
	parsed, err := models.ParseCategory(name, false)
	if err != nil {
		r.logger.Warn("skipping category card with unknown category", zap.String("category", name))
		return models.CategoryCard{}, false, nil
	}
	card.Name = parsed
	return card, true, nil
}

func (r *CatalogRepository) getTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, role, content, avatar FROM testimonials ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer rows.Close()

	var out []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Role, &t.Content, &t.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate testimonials: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) getLookbook(ctx context.Context) ([]models.LookbookItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, image_url, location, product_name FROM lookbook_items ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookbook items: %w", err)
	}
	defer rows.Close()

	var out []models.LookbookItem
	for rows.Next() {
		var item models.LookbookItem
		if err := rows.Scan(&item.ID, &item.ImageURL, &item.Location, &item.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan lookbook item: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lookbook items: %w", err)
	}
	return out, nil
}
