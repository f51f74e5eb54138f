package controller

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modern-stitch/logger"
	"modern-stitch/models"
	"modern-stitch/service"
)

// CatalogController serves the read-only catalog and the printable lookbook
type CatalogController struct {
	catalog  *service.CatalogService
	lookbook *service.LookbookService
	logger   *zap.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *service.CatalogService, lookbook *service.LookbookService, logger *zap.Logger) *CatalogController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogController{catalog: catalog, lookbook: lookbook, logger: logger}
}

// ListProducts handles GET /api/catalog/products?category=Streetwear
// A missing category or "All" returns the whole catalog.
// Example response:
// {
//   "category": "Streetwear",
//   "products": [{"id": "1", "name": "Oversized Midnight Tee", "price": "45", ...}]
// }
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := models.CategoryAll
	if raw := r.URL.Query().Get("category"); raw != "" {
		parsed, err := models.ParseCategory(raw, true)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_category", err.Error())
			return
		}
		category = parsed
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"products": c.catalog.FilterProducts(category),
	})
}

// GetProduct handles GET /api/catalog/products/{productID}
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := c.catalog.Product(chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListCategories handles GET /api/catalog/categories
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": c.catalog.Categories()})
}

// ListTestimonials handles GET /api/catalog/testimonials
func (c *CatalogController) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"testimonials": c.catalog.Testimonials()})
}

// ListLookbook handles GET /api/catalog/lookbook
func (c *CatalogController) ListLookbook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"lookbook":        c.catalog.Lookbook(),
		"brandStoryImage": c.catalog.BrandStoryImage(),
	})
}

// ExportLookbook handles GET /api/lookbook?format=html|pdf (html by default)
func (c *CatalogController) ExportLookbook(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	log := logger.FromContext(r.Context(), c.logger)

	switch format {
	case "html":
		html, err := c.lookbook.RenderHTML(r.Context())
		if err != nil {
			writeServiceError(w, r, c.logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	case "pdf":
		pdf, err := c.lookbook.GeneratePDF(r.Context())
		if err != nil {
			log.Error("lookbook pdf failed", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "pdf_unavailable", "failed to generate lookbook PDF")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="modern-stitch-lookbook.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	default:
		writeError(w, http.StatusBadRequest, "invalid_format", "format must be html or pdf")
	}
}
