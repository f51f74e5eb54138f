package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the closed set of catalog categories
type Category string

const (
	CategoryMen        Category = "Men"
	CategoryWomen      Category = "Women"
	CategoryStreetwear Category = "Streetwear"
	CategoryEssentials Category = "Essentials"
	CategoryModern     Category = "Modern"

	// CategoryAll is the filter pseudo-value that matches every product
	CategoryAll Category = "All"
)

// Categories lists the real categories in display order
var Categories = []Category{
	CategoryMen,
	CategoryWomen,
	CategoryStreetwear,
	CategoryEssentials,
	CategoryModern,
}

// ParseCategory resolves a case-insensitive category name.
// "all" is accepted only when allowAll is true.
func ParseCategory(raw string, allowAll bool) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	if allowAll && strings.EqualFold(trimmed, string(CategoryAll)) {
		return CategoryAll, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// Product represents a single catalog product. Products are immutable once loaded.
type Product struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Price           decimal.Decimal `json:"price" yaml:"price"`
	Category        Category        `json:"category" yaml:"category"`
	Description     string          `json:"description" yaml:"description"`
	LongDescription string          `json:"longDescription" yaml:"longDescription"`
	Image           string          `json:"image" yaml:"image"`
	Rating          float64         `json:"rating" yaml:"rating"`
	Reviews         int             `json:"reviews" yaml:"reviews"`
	Features        []string        `json:"features" yaml:"features"`
	Sizes           []string        `json:"sizes" yaml:"sizes"`
	Colors          []string        `json:"colors" yaml:"colors"`
}

// HasSize reports whether size is one of the product's offered sizes
func (p Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// HasColor reports whether color is one of the product's offered colors
func (p Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

// DefaultSize returns the first listed size, or "" when the product has none
func (p Product) DefaultSize() string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return p.Sizes[0]
}

// DefaultColor returns the first listed color, or "" when the product has none
func (p Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

// Clone returns a deep copy so callers cannot mutate catalog slices
func (p Product) Clone() Product {
	out := p
	out.Features = append([]string(nil), p.Features...)
	out.Sizes = append([]string(nil), p.Sizes...)
	out.Colors = append([]string(nil), p.Colors...)
	return out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Testimonial is a customer quote shown on the home page
type Testimonial struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
	Avatar  string `json:"avatar" yaml:"avatar"`
}

// LookbookItem is a street-style photo tied to a product by name
type LookbookItem struct {
	ID          string `json:"id" yaml:"id"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
	Location    string `json:"location" yaml:"location"`
	ProductName string `json:"productName" yaml:"productName"`
}

// CategoryCard is a category spotlight tile
type CategoryCard struct {
	Name  Category `json:"name" yaml:"name"`
	Image string   `json:"image" yaml:"image"`
	Count int      `json:"count" yaml:"count"`
}

// Catalog is the full static data set loaded at startup
type Catalog struct {
	Products        []Product      `json:"products" yaml:"products"`
	Categories      []CategoryCard `json:"categories" yaml:"categories"`
	Testimonials    []Testimonial  `json:"testimonials" yaml:"testimonials"`
	Lookbook        []LookbookItem `json:"lookbook" yaml:"lookbook"`
	BrandStoryImage string         `json:"brandStoryImage" yaml:"brandStoryImage"`
}
