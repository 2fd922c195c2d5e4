package store

import (
	"context"
	"log"
	"sync"

	"tastebite/internal/api"
	"tastebite/internal/models"
)

// Section is the coarse UI section the view is showing.
type Section string

const (
	SectionHome    Section = "home"
	SectionProfile Section = "profile"
)

// DefaultCategory is the synthetic category matching every product.
const DefaultCategory = "ALL"

// Catalog holds the browsing state: the category selector, the product list
// for the selected category or search query, and the active UI section.
type Catalog struct {
	mu         sync.Mutex
	api        *api.Client
	categories []models.CategoryOption
	selected   string
	products   []models.Product
	section    Section
	loading    bool
	err        string
}

func NewCatalog(client *api.Client) *Catalog {
	return &Catalog{
		api:      client,
		selected: DefaultCategory,
		section:  SectionHome,
	}
}

func (c *Catalog) Categories() []models.CategoryOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CategoryOption(nil), c.categories...)
}

func (c *Catalog) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Product(nil), c.products...)
}

func (c *Catalog) SelectedCategory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Catalog) Section() Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.section
}

func (c *Catalog) SetSection(section Section) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.section = section
}

func (c *Catalog) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Catalog) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Catalog) FetchCategories(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	categories, err := c.api.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = displayError(err, "Failed to fetch categories")
		log.Println("[CATALOG] [ERROR] categories fetch failed:", err)
		return
	}
	c.categories = categories
}

// SelectCategory switches the selector and loads that category's products.
func (c *Catalog) SelectCategory(ctx context.Context, category string) {
	c.mu.Lock()
	c.selected = category
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	products, err := c.api.ProductsByCategory(ctx, category)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = displayError(err, "Failed to fetch products")
		log.Println("[CATALOG] [ERROR] products fetch failed:", err)
		return
	}
	c.products = products
}

// Search replaces the product list with matches for the query; the category
// selector is left where it was.
func (c *Catalog) Search(ctx context.Context, query string) {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()

	products, err := c.api.SearchProducts(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = displayError(err, "Search failed")
		log.Println("[CATALOG] [ERROR] search failed:", err)
		return
	}
	c.products = products
}

// Reset puts the selector back to the default category.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = DefaultCategory
	c.products = nil
}
