package store

import (
	"context"
	"log"
	"sync"

	"tastebite/internal/api"
	"tastebite/internal/models"
)

// Orders holds the order history. Orders are append-only from the client's
// perspective: created once from the server's response, never mutated.
type Orders struct {
	mu      sync.Mutex
	api     *api.Client
	orders  []models.Order
	loading bool
	err     string
}

func NewOrders(client *api.Client) *Orders {
	return &Orders{api: client}
}

// Orders returns a copy of the history, newest first.
func (o *Orders) Orders() []models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]models.Order(nil), o.orders...)
}

func (o *Orders) IsLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

func (o *Orders) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

func (o *Orders) ClearError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = ""
}

// CreateOrder places an order from the current cart (the backend derives the
// contents) and prepends the result to the local history.
func (o *Orders) CreateOrder(ctx context.Context) {
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()

	order, err := o.api.CreateOrder(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.loading = false
	if err != nil {
		o.err = displayError(err, "Failed to create order")
		log.Println("[ORDERS] [ERROR] create failed:", err)
		return
	}
	o.orders = append([]models.Order{*order}, o.orders...)
}

// OrderDetail fetches a single order. The result is returned rather than
// cached: the detail view always shows the server's current copy.
func (o *Orders) OrderDetail(ctx context.Context, orderID int64) *models.Order {
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()

	order, err := o.api.OrderDetail(ctx, orderID)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.loading = false
	if err != nil {
		o.err = displayError(err, "Failed to fetch order")
		log.Println("[ORDERS] [ERROR] detail fetch failed:", err)
		return nil
	}
	return order
}

// FetchOrders replaces the full history; on failure the history is emptied
// rather than left stale.
func (o *Orders) FetchOrders(ctx context.Context) {
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()

	orders, err := o.api.Orders(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.loading = false
	if err != nil {
		o.orders = nil
		o.err = displayError(err, "Failed to fetch orders")
		log.Println("[ORDERS] [ERROR] fetch failed:", err)
		return
	}
	o.orders = orders
}
