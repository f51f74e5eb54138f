package pricing

import (
	"github.com/shopspring/decimal"

	"modern-stitch/models"
	"modern-stitch/utils"
)

// ShippingLabelComplimentary is shown for every order: global shipping is free
const ShippingLabelComplimentary = "Complimentary"

// Engine derives cart totals. There is no tax or discount logic and shipping is always
// complimentary, so the total equals the subtotal.
type Engine struct{}

// NewEngine creates a new pricing engine
func NewEngine() *Engine {
	return &Engine{}
}

// Summarize computes the totals for the cart drawer from the cart's subtotal
func (e *Engine) Summarize(subtotal decimal.Decimal) models.CartTotals {
	shipping := decimal.Zero
	total := subtotal.Add(shipping)

	return models.CartTotals{
		Subtotal:          subtotal,
		Shipping:          shipping,
		ShippingLabel:     ShippingLabelComplimentary,
		Total:             total,
		SubtotalFormatted: utils.FormatUSD(subtotal),
		TotalFormatted:    utils.FormatUSD(total),
	}
}

// Lines builds the per-line view with formatted extensions
func (e *Engine) Lines(items []models.CartItem) []models.CartLineView {
	lines := make([]models.CartLineView, 0, len(items))
	for _, item := range items {
		lineTotal := item.LineTotal()
		lines = append(lines, models.CartLineView{
			CartItem:           item,
			LineTotal:          lineTotal,
			LineTotalFormatted: utils.FormatUSD(lineTotal),
		})
	}
	return lines
}
