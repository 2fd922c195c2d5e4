package api

import (
	"context"
	"fmt"
	"net/url"

	"tastebite/internal/models"
)

func (c *Client) Categories(ctx context.Context) ([]models.CategoryOption, error) {
	var categories []models.CategoryOption
	if err := c.getJSON(ctx, "/categories/", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ProductsByCategory lists available products for a category; the backend
// treats "ALL" as no filter.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	path := fmt.Sprintf("/products/category/%s/", url.PathEscape(category))
	if err := c.getJSON(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	var products []models.Product
	path := "/products/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}
