package api

import (
	"context"
	"fmt"

	"tastebite/internal/models"
)

// Toggle statuses reported by the backend.
const (
	FavoriteAdded   = "added to favorites"
	FavoriteRemoved = "removed from favorites"
)

type FavoriteToggleResult struct {
	Status string `json:"status"`
}

// ToggleFavorite flips the favorite state of a product server-side and
// reports which direction the toggle took.
func (c *Client) ToggleFavorite(ctx context.Context, productID int64) (*FavoriteToggleResult, error) {
	var result FavoriteToggleResult
	path := fmt.Sprintf("/favorites/toggle/%d/", productID)
	if err := c.postJSON(ctx, path, struct{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) FavoritesList(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/favorites/favorites_list/", &products); err != nil {
		return nil, err
	}
	return products, nil
}
