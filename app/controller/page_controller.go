package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modern-stitch/content"
)

// PageController serves the static informational pages
type PageController struct {
	pages  *content.Store
	logger *zap.Logger
}

// NewPageController creates a new PageController
func NewPageController(pages *content.Store, logger *zap.Logger) *PageController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageController{pages: pages, logger: logger}
}

// ListPages handles GET /api/pages
func (c *PageController) ListPages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"pages": c.pages.Slugs()})
}

// GetPage handles GET /api/pages/{slug}
func (c *PageController) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := c.pages.Page(chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
