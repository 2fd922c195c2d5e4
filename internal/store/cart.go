package store

import (
	"context"
	"log"
	"sync"

	"tastebite/internal/api"
	"tastebite/internal/models"
)

// Cart mirrors the server-side cart. Every mutation is a server round trip;
// local state is only ever replaced with what the server returned, never
// computed optimistically. Mutations for the same product are serialized
// through a per-product gate so the two-call quantity update cannot
// interleave with another mutation of that product; mutations for different
// products run concurrently. The in-flight set is exposed so a view can
// disable controls for a product while its mutation is pending.
type Cart struct {
	mu       sync.Mutex
	api      *api.Client
	items    []models.CartItem
	loading  bool
	err      string
	inflight map[int64]int
	gates    map[int64]*sync.Mutex
}

func NewCart(client *api.Client) *Cart {
	return &Cart{
		api:      client,
		inflight: make(map[int64]int),
		gates:    make(map[int64]*sync.Mutex),
	}
}

// Items returns a copy of the current cart contents.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.items...)
}

func (c *Cart) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Cart) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// InFlight reports whether a mutation for the product is pending.
func (c *Cart) InFlight(productID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[productID] > 0
}

// TotalItems is the sum of quantities, computed on read.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity, computed on read.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, item := range c.items {
		total += item.ProductPrice * float64(item.Quantity)
	}
	return total
}

// FetchCart replaces the full item list with the server's cart.
func (c *Cart) FetchCart(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	items, err := c.api.CartItems(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = displayError(err, "Failed to fetch cart")
		log.Println("[CART] [ERROR] fetch failed:", err)
		return
	}
	c.items = items
}

// AddItem adds quantity of a product. The server merges into an existing
// entry when there is one; the returned item replaces or extends local state
// accordingly, keeping at most one entry per product.
func (c *Cart) AddItem(ctx context.Context, productID int64, quantity int) {
	gate := c.productGate(productID)
	gate.Lock()
	defer gate.Unlock()

	c.beginProduct(productID)
	defer c.endProduct(productID)

	c.doAdd(ctx, productID, quantity)
}

func (c *Cart) RemoveItem(ctx context.Context, productID int64) {
	gate := c.productGate(productID)
	gate.Lock()
	defer gate.Unlock()

	c.beginProduct(productID)
	defer c.endProduct(productID)

	c.doRemove(ctx, productID)
}

// UpdateQuantity sets the quantity for a product. Zero or below removes the
// item. The backend has no atomic quantity endpoint, so a positive update is
// a remove followed by a re-add; the product gate held for the whole pair is
// what keeps concurrent updates for the same product from interleaving. A 404
// on the remove step means the item was never in the cart, and the update
// degrades to a plain add.
func (c *Cart) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	gate := c.productGate(productID)
	gate.Lock()
	defer gate.Unlock()

	c.beginProduct(productID)
	defer c.endProduct(productID)

	if quantity <= 0 {
		c.doRemove(ctx, productID)
		return
	}

	if err := c.api.RemoveFromCart(ctx, productID); err != nil && !api.IsNotFound(err) {
		c.mu.Lock()
		c.err = displayError(err, "Failed to update item quantity")
		c.mu.Unlock()
		log.Println("[CART] [ERROR] quantity update remove step failed:", err)
		return
	}
	c.mu.Lock()
	c.dropLocked(productID)
	c.mu.Unlock()

	c.doAdd(ctx, productID, quantity)
}

func (c *Cart) doAdd(ctx context.Context, productID int64, quantity int) {
	item, err := c.api.AddToCart(ctx, productID, quantity)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = displayError(err, "Failed to add item to cart")
		log.Println("[CART] [ERROR] add failed:", err)
		return
	}
	c.upsertLocked(*item)
}

func (c *Cart) doRemove(ctx context.Context, productID int64) {
	err := c.api.RemoveFromCart(ctx, productID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = displayError(err, "Failed to remove item from cart")
		log.Println("[CART] [ERROR] remove failed:", err)
		return
	}
	c.dropLocked(productID)
}

func (c *Cart) upsertLocked(item models.CartItem) {
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

func (c *Cart) dropLocked(productID int64) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

func (c *Cart) productGate(productID int64) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	gate, ok := c.gates[productID]
	if !ok {
		gate = &sync.Mutex{}
		c.gates[productID] = gate
	}
	return gate
}

func (c *Cart) beginProduct(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = ""
	c.inflight[productID]++
}

func (c *Cart) endProduct(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[productID]--
	if c.inflight[productID] <= 0 {
		delete(c.inflight, productID)
	}
}
