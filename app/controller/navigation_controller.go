package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modern-stitch/models"
	"modern-stitch/service"
)

// NavigationController handles page and selection changes plus the full session view
type NavigationController struct {
	front  *service.Storefront
	logger *zap.Logger
}

// NewNavigationController creates a new NavigationController
func NewNavigationController(front *service.Storefront, logger *zap.Logger) *NavigationController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationController{front: front, logger: logger}
}

// GetSession handles GET /api/session
func (c *NavigationController) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.front.SessionView(s))
}

// GetNavigation handles GET /api/navigation
func (c *NavigationController) GetNavigation(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.front.NavigationView(s))
}

// ShopProducts handles GET /api/navigation/shop: the catalog under the session's filter
func (c *NavigationController) ShopProducts(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	view := c.front.NavigationView(s)
	writeJSON(w, http.StatusOK, map[string]any{
		"category": view.SelectedCategory,
		"products": c.front.ShopProducts(s),
	})
}

// SetPage handles PUT /api/navigation/page
// Example request: {"page": "wardrobe"}
func (c *NavigationController) SetPage(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req models.SetPageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	page, err := models.ParsePage(req.Page)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_page", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c.front.SetPage(s, page))
}

// SelectCategory handles PUT /api/navigation/category
// Example request: {"category": "Women"}
// Opens the shop filtered by the category and resets scroll.
func (c *NavigationController) SelectCategory(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	category, ok := c.decodeCategory(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.front.SelectCategory(s, category))
}

// SetFilter handles PUT /api/navigation/filter
// Example request: {"category": "All"}
func (c *NavigationController) SetFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	category, ok := c.decodeCategory(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.front.SetCategoryFilter(s, category))
}

func (c *NavigationController) decodeCategory(w http.ResponseWriter, r *http.Request) (models.Category, bool) {
	var req models.SetCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return "", false
	}
	category, err := models.ParseCategory(req.Category, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_category", err.Error())
		return "", false
	}
	return category, true
}

// SelectProduct handles POST /api/navigation/product/{productID}
func (c *NavigationController) SelectProduct(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	view, err := c.front.SelectProduct(s, chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// RecordScroll handles PUT /api/navigation/scroll
// Example request: {"y": 640}
func (c *NavigationController) RecordScroll(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req models.ScrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c.front.RecordScroll(s, req.Y))
}
