package models

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	Category    string    `json:"category"`
	Ingredients string    `json:"ingredients,omitempty"`
	ServingSize string    `json:"serving_size,omitempty"`
	DietaryInfo string    `json:"dietary_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryOption is one entry of the category selector, including the
// synthetic "ALL" option the backend prepends.
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
