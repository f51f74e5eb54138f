package service

import "modern-stitch/models"

// Wardrobe is the saved-products set. Membership is keyed by product id and display
// order is insertion order.
type Wardrobe struct {
	items []models.Product
	index map[string]struct{}
}

// NewWardrobe returns an empty wardrobe
func NewWardrobe() *Wardrobe {
	return &Wardrobe{index: make(map[string]struct{})}
}

// Toggle removes the product if it is saved, otherwise appends it.
// It returns true when the product is saved after the call.
func (w *Wardrobe) Toggle(product models.Product) bool {
	if _, ok := w.index[product.ID]; ok {
		for i, p := range w.items {
			if p.ID == product.ID {
				w.items = append(w.items[:i], w.items[i+1:]...)
				break
			}
		}
		delete(w.index, product.ID)
		return false
	}

	w.items = append(w.items, product.Clone())
	w.index[product.ID] = struct{}{}
	return true
}

// Contains reports whether the product is saved
func (w *Wardrobe) Contains(productID string) bool {
	_, ok := w.index[productID]
	return ok
}

// Items returns the saved products in insertion order
func (w *Wardrobe) Items() []models.Product {
	out := make([]models.Product, len(w.items))
	for i, p := range w.items {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of saved products
func (w *Wardrobe) Len() int {
	return len(w.items)
}
