package models

import "github.com/shopspring/decimal"

// CartItem is a cart line: the product fields plus the chosen variant and quantity
type CartItem struct {
	Product
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

// LineTotal returns price * quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddToCartRequest represents the request body for adding a product to the cart
// Example: {"productId": "1", "size": "M", "color": "Slate Grey"}
// size and color are optional and default to the product's first listed option
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// UpdateQuantityRequest represents the request body for changing a line quantity
// Example: {"delta": -1}
type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

// CartVisibilityRequest opens or closes the cart drawer
type CartVisibilityRequest struct {
	Open bool `json:"open"`
}

// CartLineView is a cart line as rendered to the client
type CartLineView struct {
	CartItem
	LineTotal          decimal.Decimal `json:"lineTotal"`
	LineTotalFormatted string          `json:"lineTotalFormatted"`
}

// CartTotals holds the derived monetary totals of a cart
type CartTotals struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	Shipping          decimal.Decimal `json:"shipping"`
	ShippingLabel     string          `json:"shippingLabel"`
	Total             decimal.Decimal `json:"total"`
	SubtotalFormatted string          `json:"subtotalFormatted"`
	TotalFormatted    string          `json:"totalFormatted"`
}

// CartView is the cart drawer view
type CartView struct {
	Open      bool           `json:"open"`
	Lines     []CartLineView `json:"lines"`
	LineCount int            `json:"lineCount"`
	ItemCount int            `json:"itemCount"`
	Totals    CartTotals     `json:"totals"`
}

// CheckoutResponse is returned by the checkout stub
type CheckoutResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Totals  CartTotals `json:"totals"`
}
