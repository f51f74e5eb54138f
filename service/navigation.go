package service

import "modern-stitch/models"

// Navigation holds the current page, category filter and selected product.
type Navigation struct {
	page     models.Page
	category models.Category
	product  *models.Product
	scrollY  int
}

// NewNavigation starts on the home page with no filter
func NewNavigation() *Navigation {
	return &Navigation{
		page:     models.PageHome,
		category: models.CategoryAll,
	}
}

// SetPage switches page without touching the selection
func (n *Navigation) SetPage(page models.Page) {
	n.page = page
}

// SelectProduct opens the product page and resets scroll to the top
func (n *Navigation) SelectProduct(product models.Product) {
	p := product.Clone()
	n.product = &p
	n.page = models.PageProduct
	n.scrollY = 0
}

// SelectCategory opens the shop filtered by category and resets scroll to the top
func (n *Navigation) SelectCategory(category models.Category) {
	n.category = category
	n.page = models.PageShop
	n.scrollY = 0
}

// SetCategoryFilter changes the shop filter in place
func (n *Navigation) SetCategoryFilter(category models.Category) {
	n.category = category
}

// RecordScroll stores the client's reported scroll offset
func (n *Navigation) RecordScroll(y int) {
	if y < 0 {
		y = 0
	}
	n.scrollY = y
}

// Category returns the active filter
func (n *Navigation) Category() models.Category {
	return n.category
}

// Page returns the current page
func (n *Navigation) Page() models.Page {
	return n.page
}

// SelectedProduct returns the product shown on the product page, if any
func (n *Navigation) SelectedProduct() (models.Product, bool) {
	if n.product == nil {
		return models.Product{}, false
	}
	return n.product.Clone(), true
}

// View renders the navigation state
func (n *Navigation) View() models.NavigationView {
	view := models.NavigationView{
		Page:             n.page,
		SelectedCategory: n.category,
		ScrollY:          n.scrollY,
	}
	if n.product != nil {
		p := n.product.Clone()
		view.SelectedProduct = &p
	}
	return view
}
