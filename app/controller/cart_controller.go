package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"modern-stitch/models"
	"modern-stitch/service"
)

// CartController handles the cart drawer and the checkout stub
type CartController struct {
	front  *service.Storefront
	logger *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(front *service.Storefront, logger *zap.Logger) *CartController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartController{front: front, logger: logger}
}

// GetCart handles GET /api/cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.front.CartView(s))
}

// AddItem handles POST /api/cart/items
// Example request:
// POST /api/cart/items
// {
//   "productId": "1",
//   "size": "M",
//   "color": "Slate Grey"
// }
// size and color default to the product's first option. Adding the same product and size
// again increments the existing line. The cart drawer opens.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "productId is required")
		return
	}

	view, err := c.front.AddToCart(r.Context(), s, req)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateItem handles PATCH /api/cart/items/{productID}
// Example request: {"delta": -1}
// Every line of the product is adjusted and quantities never drop below 1.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	view, err := c.front.UpdateQuantity(s, chi.URLParam(r, "productID"), req.Delta)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/items/{productID}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	view, err := c.front.RemoveFromCart(s, chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetVisibility handles PUT /api/cart/visibility
// Example request: {"open": false}
func (c *CartController) SetVisibility(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req models.CartVisibilityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c.front.SetCartOpen(s, req.Open))
}

// Checkout handles POST /api/checkout
// Example response:
// {
//   "status": "redirecting",
//   "message": "Moving to secure payment gateway...",
//   "totals": {"subtotal": "165", "shipping": "0", "shippingLabel": "Complimentary", ...}
// }
func (c *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	resp, err := c.front.Checkout(r.Context(), s)
	if err != nil {
		writeServiceError(w, r, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
