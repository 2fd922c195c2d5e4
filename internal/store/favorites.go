package store

import (
	"context"
	"log"
	"sync"

	"tastebite/internal/api"
	"tastebite/internal/models"
	"tastebite/internal/storage"
)

// Favorites tracks the products the active user has marked. The list and the
// owning user id are the only store state that survives a restart, persisted
// through the local storage blob; a persisted list whose user id no longer
// matches the signed-in user is discarded.
type Favorites struct {
	mu       sync.Mutex
	api      *api.Client
	local    *storage.Store
	userID   int64
	products []models.Product
	loading  bool
	err      string
}

// NewFavorites restores whatever blob the previous run persisted. Whether it
// is still valid is settled when the session listener first fires.
func NewFavorites(client *api.Client, local *storage.Store) *Favorites {
	f := &Favorites{api: client, local: local}
	if blob, ok := local.Favorites(); ok {
		f.userID = blob.UserID
		f.products = blob.Products
	}
	return f
}

// SessionChanged implements SessionListener for the auth store.
func (f *Favorites) SessionChanged(ctx context.Context, userID int64) {
	f.SetUserID(ctx, userID)
}

// SetUserID scopes the store to a user. The same id is a no-op; a different
// id discards the current (possibly persisted) list and, for a real user,
// fetches that user's favorites.
func (f *Favorites) SetUserID(ctx context.Context, userID int64) {
	f.mu.Lock()
	if f.userID == userID {
		f.mu.Unlock()
		return
	}
	f.userID = userID
	f.products = nil
	f.persistLocked()
	f.mu.Unlock()

	if userID != 0 {
		f.FetchFavorites(ctx)
	}
}

func (f *Favorites) UserID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userID
}

// Products returns a copy of the favorite list.
func (f *Favorites) Products() []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Product(nil), f.products...)
}

func (f *Favorites) IsLoading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Favorites) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// IsFavorite is a pure local membership check.
func (f *Favorites) IsFavorite(productID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.containsLocked(productID)
}

// FetchFavorites replaces the list with the server's authoritative copy.
func (f *Favorites) FetchFavorites(ctx context.Context) {
	f.mu.Lock()
	f.loading = true
	f.err = ""
	f.mu.Unlock()

	products, err := f.api.FavoritesList(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.err = displayError(err, "Failed to fetch favorites")
		log.Println("[FAVORITES] [ERROR] fetch failed:", err)
		return
	}
	f.products = products
	f.persistLocked()
}

// ToggleFavorite flips the product's favorite state optimistically in both
// directions, then reconciles against the direction the server reports. A
// failed call rolls the local change back; a direction mismatch falls back to
// an authoritative refetch.
func (f *Favorites) ToggleFavorite(ctx context.Context, product models.Product) {
	f.mu.Lock()
	wasFavorite := f.containsLocked(product.ID)
	if wasFavorite {
		f.dropLocked(product.ID)
	} else {
		f.products = append(f.products, product)
	}
	f.err = ""
	f.persistLocked()
	f.mu.Unlock()

	result, err := f.api.ToggleFavorite(ctx, product.ID)
	if err != nil {
		f.mu.Lock()
		if wasFavorite {
			f.products = append(f.products, product)
		} else {
			f.dropLocked(product.ID)
		}
		f.err = displayError(err, "Failed to toggle favorite")
		f.persistLocked()
		f.mu.Unlock()
		log.Println("[FAVORITES] [ERROR] toggle failed:", err)
		return
	}

	expected := api.FavoriteRemoved
	if !wasFavorite {
		expected = api.FavoriteAdded
	}
	if result.Status != expected {
		log.Println("[FAVORITES] [ERROR] server toggle direction disagreed, refetching")
		f.FetchFavorites(ctx)
	}
}

func (f *Favorites) containsLocked(productID int64) bool {
	for _, product := range f.products {
		if product.ID == productID {
			return true
		}
	}
	return false
}

func (f *Favorites) dropLocked(productID int64) {
	kept := f.products[:0]
	for _, product := range f.products {
		if product.ID != productID {
			kept = append(kept, product)
		}
	}
	f.products = kept
}

// persistLocked mirrors the current list into durable storage. Callers hold
// the mutex. A signed-out store clears the blob entirely.
func (f *Favorites) persistLocked() {
	if f.userID == 0 {
		f.local.ClearFavorites()
		return
	}
	f.local.SetFavorites(storage.FavoritesBlob{
		UserID:   f.userID,
		Products: append([]models.Product(nil), f.products...),
	})
}
