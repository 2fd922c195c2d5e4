package stubserver

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"tastebite/internal/models"
)

// ToggleFavorite flips the favorite mark for a product and reports which
// direction the toggle took.
func ToggleFavorite(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		db.mu.Lock()
		defer db.mu.Unlock()

		if _, ok := db.products[productID]; !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		favorites := db.favoritesFor(currentUserID(c))
		if favorites[productID] {
			delete(favorites, productID)
			c.JSON(http.StatusOK, gin.H{"status": "removed from favorites"})
			return
		}
		favorites[productID] = true
		c.JSON(http.StatusCreated, gin.H{"status": "added to favorites"})
	}
}

func FavoritesList(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		db.mu.Lock()
		favorites := db.favoritesFor(currentUserID(c))
		products := make([]models.Product, 0, len(favorites))
		for productID := range favorites {
			if product, ok := db.products[productID]; ok {
				products = append(products, product)
			}
		}
		db.mu.Unlock()

		sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
		c.JSON(http.StatusOK, products)
	}
}
