package api

import (
	"context"
	"fmt"

	"tastebite/internal/models"
)

// CreateOrder places an order with no payload: the backend builds it from
// the current cart and empties the cart.
func (c *Client) CreateOrder(ctx context.Context) (*models.Order, error) {
	var order models.Order
	if err := c.postJSON(ctx, "/orders/create/", struct{}{}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.getJSON(ctx, "/orders/", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) OrderDetail(ctx context.Context, orderID int64) (*models.Order, error) {
	var order models.Order
	if err := c.getJSON(ctx, fmt.Sprintf("/orders/%d/", orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}
