package service

import (
	"github.com/shopspring/decimal"

	"modern-stitch/models"
)

// MaxLineQuantity caps the quantity of a single cart line
const MaxLineQuantity = 999

// Cart is the cart engine: an ordered list of lines where insertion order is display order.
//
// Lines merge on (product id, size) when added, but quantity updates and removals match on
// product id alone, so they touch every size of that product. Color never takes part in
// either key. Both quirks are kept on purpose; see DESIGN.md.
//
// Cart is not safe for concurrent use; the owning Session serialises access.
type Cart struct {
	items []models.CartItem
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of product into the cart. An empty size or color resolves to the
// product's first listed option. The returned line is the one that was created or bumped.
func (c *Cart) Add(product models.Product, size, color string) models.CartItem {
	if size == "" {
		size = product.DefaultSize()
	}
	if color == "" {
		color = product.DefaultColor()
	}

	for i := range c.items {
		if c.items[i].ID == product.ID && c.items[i].SelectedSize == size {
			c.items[i].Quantity = clampQuantity(c.items[i].Quantity, 1)
			return c.items[i]
		}
	}

	item := models.CartItem{
		Product:       product.Clone(),
		Quantity:      1,
		SelectedSize:  size,
		SelectedColor: color,
	}
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity applies delta to every line of the product, keeping the quantity within
// [1, MaxLineQuantity]. It reports whether any line matched.
func (c *Cart) UpdateQuantity(productID string, delta int) bool {
	matched := false
	for i := range c.items {
		if c.items[i].ID != productID {
			continue
		}
		matched = true
		c.items[i].Quantity = clampQuantity(c.items[i].Quantity, delta)
	}
	return matched
}

// clampQuantity adds delta to q without overflowing; q is already within bounds
func clampQuantity(q, delta int) int {
	switch {
	case delta > MaxLineQuantity-q:
		return MaxLineQuantity
	case delta < 1-q:
		return 1
	default:
		return q + delta
	}
}

// Remove deletes every line of the product and reports how many were removed
func (c *Cart) Remove(productID string) int {
	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if item.ID == productID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	// zero the tail so dropped lines are not retained by the backing array
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = models.CartItem{}
	}
	c.items = kept
	return removed
}

// Subtotal returns the exact sum of price * quantity
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Items returns a copy of the lines in display order
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	for i, item := range c.items {
		out[i] = item
		out[i].Product = item.Product.Clone()
	}
	return out
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.items)
}

// Count returns the total number of units across all lines
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}
