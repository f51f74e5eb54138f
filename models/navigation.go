package models

import (
	"fmt"
	"strings"
)

// Page identifies the storefront page currently shown
type Page string

const (
	PageHome     Page = "home"
	PageShop     Page = "shop"
	PageWardrobe Page = "wardrobe"
	PageAbout    Page = "about"
	PageProduct  Page = "product"
)

// ParsePage resolves a case-insensitive page name
func ParsePage(raw string) (Page, error) {
	switch p := Page(strings.ToLower(strings.TrimSpace(raw))); p {
	case PageHome, PageShop, PageWardrobe, PageAbout, PageProduct:
		return p, nil
	default:
		return "", fmt.Errorf("unknown page %q", raw)
	}
}

// NavigationView is the current page and selection
type NavigationView struct {
	Page             Page     `json:"page"`
	SelectedCategory Category `json:"selectedCategory"`
	SelectedProduct  *Product `json:"selectedProduct"`
	ScrollY          int      `json:"scrollY"`
}

// SetPageRequest example: {"page": "shop"}
type SetPageRequest struct {
	Page string `json:"page"`
}

// SetCategoryRequest example: {"category": "Streetwear"}
type SetCategoryRequest struct {
	Category string `json:"category"`
}

// ScrollRequest example: {"y": 640}
type ScrollRequest struct {
	Y int `json:"y"`
}

// WardrobeView lists the saved products in insertion order
type WardrobeView struct {
	Items []Product `json:"items"`
	Count int       `json:"count"`
}

// WardrobeToggleResponse reports the membership after a toggle
type WardrobeToggleResponse struct {
	ProductID string       `json:"productId"`
	Saved     bool         `json:"saved"`
	Wardrobe  WardrobeView `json:"wardrobe"`
}

// SessionView is the full state of one storefront session
type SessionView struct {
	SessionID  string         `json:"sessionId"`
	Navigation NavigationView `json:"navigation"`
	Cart       CartView       `json:"cart"`
	Wardrobe   WardrobeView   `json:"wardrobe"`
}
