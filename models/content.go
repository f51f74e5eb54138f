package models

import "time"

// ContentPage is a static informational page (about, shipping, returns)
type ContentPage struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	HTML      string    `json:"html"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
