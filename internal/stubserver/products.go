package stubserver

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"tastebite/internal/models"
)

// GetCategories lists the categories in use, with the synthetic ALL entry
// first.
func GetCategories(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		db.mu.Lock()
		used := make(map[string]bool)
		for _, product := range db.products {
			used[product.Category] = true
		}
		db.mu.Unlock()

		values := make([]string, 0, len(used))
		for value := range used {
			values = append(values, value)
		}
		sort.Strings(values)

		categories := []models.CategoryOption{{Value: "ALL", Label: "All"}}
		for _, value := range values {
			if value == "ALL" {
				continue
			}
			label, ok := categoryLabels[value]
			if !ok {
				label = strings.ToLower(value)
			}
			categories = append(categories, models.CategoryOption{Value: value, Label: label})
		}

		c.JSON(http.StatusOK, categories)
	}
}

func GetProductsByCategory(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := strings.ToUpper(strings.TrimSpace(c.Param("category")))

		db.mu.Lock()
		products := db.productList(category)
		db.mu.Unlock()

		c.JSON(http.StatusOK, products)
	}
}

// SearchProducts matches the query case-insensitively against product names
// and descriptions.
func SearchProducts(db *DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.ToLower(strings.TrimSpace(c.Query("q")))

		db.mu.Lock()
		all := db.productList("")
		db.mu.Unlock()

		matches := make([]models.Product, 0)
		for _, product := range all {
			if query == "" ||
				strings.Contains(strings.ToLower(product.Name), query) ||
				strings.Contains(strings.ToLower(product.Description), query) {
				matches = append(matches, product)
			}
		}

		c.JSON(http.StatusOK, matches)
	}
}
