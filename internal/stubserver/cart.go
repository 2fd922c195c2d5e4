package stubserver

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"tastebite/internal/models"
)

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

func cartItemJSON(entry *cartEntry, product models.Product, quantity int) models.CartItem {
	return models.CartItem{
		ID:           entry.ID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		ProductImage: product.ImageURL,
		Quantity:     quantity,
	}
}

func GetCart(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		db.mu.Lock()
		cart := db.cartFor(currentUserID(c))
		items := make([]models.CartItem, 0, len(cart))
		for productID, entry := range cart {
			product, ok := db.products[productID]
			if !ok {
				continue
			}
			items = append(items, cartItemJSON(entry, product, entry.Quantity))
		}
		db.mu.Unlock()

		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
		c.JSON(http.StatusOK, items)
	}
}

// AddToCart adds a product or merges into the existing entry by adding the
// quantities, keeping at most one cart item per product.
func AddToCart(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}

		db.mu.Lock()
		defer db.mu.Unlock()

		product, ok := db.products[req.ProductID]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		cart := db.cartFor(currentUserID(c))
		entry, exists := cart[req.ProductID]
		if exists {
			entry.Quantity += req.Quantity
		} else {
			entry = &cartEntry{ID: db.seq(), Quantity: req.Quantity}
			cart[req.ProductID] = entry
		}

		c.JSON(http.StatusCreated, cartItemJSON(entry, product, entry.Quantity))
	}
}

func RemoveFromCart(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		db.mu.Lock()
		defer db.mu.Unlock()

		cart := db.cartFor(currentUserID(c))
		if _, exists := cart[productID]; !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}
		delete(cart, productID)

		c.Status(http.StatusNoContent)
	}
}
