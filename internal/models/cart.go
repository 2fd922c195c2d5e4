package models

// CartItem associates a product with a quantity. The product display fields
// are denormalized by the backend so the cart can render without a second
// product lookup. The backend guarantees at most one item per product.
type CartItem struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	ProductImage string  `json:"product_image,omitempty"`
	Quantity     int     `json:"quantity"`
}
