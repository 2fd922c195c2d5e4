package api

import (
	"context"
	"fmt"

	"tastebite/internal/models"
)

type addToCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (c *Client) CartItems(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.getJSON(ctx, "/cart/", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart adds quantity of a product; if the product is already in the
// cart the backend merges by adding to the existing quantity and returns the
// merged item.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	payload := addToCartRequest{ProductID: productID, Quantity: quantity}
	if err := c.postJSON(ctx, "/cart/add/", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID int64) error {
	return c.deleteReq(ctx, fmt.Sprintf("/cart/remove/%d/", productID))
}
