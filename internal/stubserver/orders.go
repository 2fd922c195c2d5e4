package stubserver

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tastebite/internal/models"
)

// CreateOrder builds an order from the user's current cart, empties the
// cart, and answers with the created order. The client sends no payload.
func CreateOrder(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)

		db.mu.Lock()
		defer db.mu.Unlock()

		cart := db.cartFor(userID)
		if len(cart) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			return
		}

		order := models.Order{
			ID:        db.seq(),
			Status:    "Pending",
			CreatedAt: time.Now().UTC(),
		}
		productIDs := make([]int64, 0, len(cart))
		for productID := range cart {
			productIDs = append(productIDs, productID)
		}
		sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

		for _, productID := range productIDs {
			entry := cart[productID]
			product, ok := db.products[productID]
			if !ok {
				continue
			}
			order.Items = append(order.Items, models.OrderItem{
				ID:          db.seq(),
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    entry.Quantity,
				Price:       product.Price,
			})
			order.TotalAmount += product.Price * float64(entry.Quantity)
		}

		db.carts[userID] = make(map[int64]*cartEntry)
		db.orders[userID] = append([]models.Order{order}, db.orders[userID]...)

		log.Println("[ORDERS] [INFO] order created:", order.ID)
		c.JSON(http.StatusCreated, order)
	}
}

// GetOrders lists the user's orders, newest first.
func GetOrders(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		db.mu.Lock()
		orders := append([]models.Order(nil), db.orders[currentUserID(c)]...)
		db.mu.Unlock()

		c.JSON(http.StatusOK, orders)
	}
}

func GetOrderDetail(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		db.mu.Lock()
		defer db.mu.Unlock()

		for _, order := range db.orders[currentUserID(c)] {
			if order.ID == orderID {
				c.JSON(http.StatusOK, order)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	}
}
