// Package stubserver is an in-memory implementation of the ordering
// backend's REST contract. It backs the integration tests and can be run as a
// local development server; it is not the production backend.
package stubserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"tastebite/internal/models"
)

type userRecord struct {
	models.User
	PasswordHash string
}

type cartEntry struct {
	ID       int64
	Quantity int
}

type refreshRecord struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	Revoked   bool
}

// DB is the in-memory data store shared by all handlers.
type DB struct {
	mu        sync.Mutex
	users     map[int64]*userRecord
	emails    map[string]int64
	products  map[int64]models.Product
	carts     map[int64]map[int64]*cartEntry
	favorites map[int64]map[int64]bool
	orders    map[int64][]models.Order
	refresh   map[string]*refreshRecord
	nextID    int64
}

func NewDB() *DB {
	return &DB{
		users:     make(map[int64]*userRecord),
		emails:    make(map[string]int64),
		products:  make(map[int64]models.Product),
		carts:     make(map[int64]map[int64]*cartEntry),
		favorites: make(map[int64]map[int64]bool),
		orders:    make(map[int64][]models.Order),
		refresh:   make(map[string]*refreshRecord),
	}
}

// seq hands out ids across all entity kinds. Callers hold the mutex.
func (db *DB) seq() int64 {
	db.nextID++
	return db.nextID
}

func (db *DB) cartFor(userID int64) map[int64]*cartEntry {
	cart, ok := db.carts[userID]
	if !ok {
		cart = make(map[int64]*cartEntry)
		db.carts[userID] = cart
	}
	return cart
}

func (db *DB) favoritesFor(userID int64) map[int64]bool {
	favs, ok := db.favorites[userID]
	if !ok {
		favs = make(map[int64]bool)
		db.favorites[userID] = favs
	}
	return favs
}

// productList returns available products, optionally filtered by category,
// in id order.
func (db *DB) productList(category string) []models.Product {
	products := make([]models.Product, 0, len(db.products))
	for _, product := range db.products {
		if !product.Available {
			continue
		}
		if category != "" && category != "ALL" && product.Category != category {
			continue
		}
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

var categoryLabels = map[string]string{
	"ALL":        "all",
	"AGAHAN":     "agahan",
	"TANGHALIAN": "tanghalian",
	"HAPUNAN":    "hapunan",
	"MERIENDA":   "merienda",
}

// AddProduct inserts a product and returns it with its assigned id.
func (db *DB) AddProduct(product models.Product) models.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	product.ID = db.seq()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	product.Category = strings.ToUpper(product.Category)
	db.products[product.ID] = product
	return product
}

// Seed loads a small menu so the dev server is browsable out of the box.
func Seed(db *DB) {
	menu := []models.Product{
		{Name: "Tapsilog", Description: "Beef tapa, garlic rice, fried egg", Price: 7.50, Category: "AGAHAN", Available: true, ServingSize: "1 plate"},
		{Name: "Champorado", Description: "Chocolate rice porridge", Price: 4.25, Category: "AGAHAN", Available: true, DietaryInfo: "vegetarian"},
		{Name: "Chicken Adobo", Description: "Chicken braised in soy and vinegar", Price: 9.00, Category: "TANGHALIAN", Available: true, Ingredients: "chicken, soy sauce, vinegar, garlic"},
		{Name: "Sinigang na Baboy", Description: "Pork in sour tamarind broth", Price: 10.50, Category: "TANGHALIAN", Available: true},
		{Name: "Kare-Kare", Description: "Oxtail stew in peanut sauce", Price: 12.00, Category: "HAPUNAN", Available: true},
		{Name: "Bangus Sisig", Description: "Sizzling milkfish sisig", Price: 8.75, Category: "HAPUNAN", Available: true, DietaryInfo: "pescatarian"},
		{Name: "Turon", Description: "Caramelized banana spring roll", Price: 2.50, Category: "MERIENDA", Available: true, DietaryInfo: "vegan"},
		{Name: "Halo-Halo", Description: "Shaved ice with sweet preserves", Price: 5.00, Category: "MERIENDA", Available: true, DietaryInfo: "vegetarian"},
	}
	for _, product := range menu {
		db.AddProduct(product)
	}
}
