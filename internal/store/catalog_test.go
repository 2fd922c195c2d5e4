package store

import (
	"context"
	"testing"
)

func TestCatalogBrowsing(t *testing.T) {
	env := newTestEnv(t)
	env.addProduct("Tapsilog", "AGAHAN", 7.50)
	env.addProduct("Champorado", "AGAHAN", 4.25)
	env.addProduct("Chicken Adobo", "TANGHALIAN", 9.00)

	catalog := NewCatalog(env.client)
	ctx := context.Background()

	catalog.FetchCategories(ctx)
	if catalog.Err() != "" {
		t.Fatalf("unexpected error: %q", catalog.Err())
	}
	categories := catalog.Categories()
	if len(categories) == 0 || categories[0].Value != "ALL" {
		t.Fatalf("expected ALL first, got %+v", categories)
	}

	catalog.SelectCategory(ctx, "AGAHAN")
	if got := len(catalog.Products()); got != 2 {
		t.Fatalf("got %d products for AGAHAN, want 2", got)
	}
	if catalog.SelectedCategory() != "AGAHAN" {
		t.Fatalf("selected = %q, want AGAHAN", catalog.SelectedCategory())
	}

	catalog.SelectCategory(ctx, DefaultCategory)
	if got := len(catalog.Products()); got != 3 {
		t.Fatalf("got %d products for ALL, want 3", got)
	}
}

func TestCatalogSearchKeepsSelector(t *testing.T) {
	env := newTestEnv(t)
	env.addProduct("Chicken Adobo", "TANGHALIAN", 9.00)
	env.addProduct("Turon", "MERIENDA", 2.50)

	catalog := NewCatalog(env.client)
	ctx := context.Background()

	catalog.SelectCategory(ctx, "MERIENDA")
	catalog.Search(ctx, "adobo")

	products := catalog.Products()
	if len(products) != 1 || products[0].Name != "Chicken Adobo" {
		t.Fatalf("search results = %+v", products)
	}
	if catalog.SelectedCategory() != "MERIENDA" {
		t.Fatalf("selected = %q, want MERIENDA unchanged by search", catalog.SelectedCategory())
	}
}

func TestCatalogReset(t *testing.T) {
	env := newTestEnv(t)
	env.addProduct("Turon", "MERIENDA", 2.50)

	catalog := NewCatalog(env.client)
	catalog.SelectCategory(context.Background(), "MERIENDA")
	catalog.Reset()

	if catalog.SelectedCategory() != DefaultCategory {
		t.Fatalf("selected = %q, want %q", catalog.SelectedCategory(), DefaultCategory)
	}
	if len(catalog.Products()) != 0 {
		t.Fatal("expected cleared product list")
	}
}
