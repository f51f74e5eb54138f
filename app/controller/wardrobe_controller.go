package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modern-stitch/service"
)

// WardrobeController handles the saved-products list
type WardrobeController struct {
	front  *service.Storefront
	logger *zap.Logger
}

// NewWardrobeController creates a new WardrobeController
func NewWardrobeController(front *service.Storefront, logger *zap.Logger) *WardrobeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WardrobeController{front: front, logger: logger}
}

// GetWardrobe handles GET /api/wardrobe
func (c *WardrobeController) GetWardrobe(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.front.WardrobeView(s))
}

// Toggle handles POST /api/wardrobe/{productID}/toggle
// Example response:
// {"productId": "4", "saved": true, "wardrobe": {"items": [...], "count": 1}}
func (c *WardrobeController) Toggle(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	resp, err := c.front.ToggleWardrobe(s, chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
