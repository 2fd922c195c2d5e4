package stubserver

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Options carries the auth settings the handlers need.
type Options struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Router wires the full REST contract onto a gin engine.
func Router(db *DB, opts Options) *gin.Engine {
	r := gin.Default()

	r.POST("/register/", Register(db, opts.JWTSecret, opts.AccessTokenTTL, opts.RefreshTokenTTL))
	r.POST("/login/", Login(db, opts.JWTSecret, opts.AccessTokenTTL, opts.RefreshTokenTTL))
	r.POST("/token/refresh/", Refresh(db, opts.JWTSecret, opts.AccessTokenTTL))

	r.GET("/categories/", GetCategories(db))
	r.GET("/products/category/:category/", GetProductsByCategory(db))
	r.GET("/products/search", SearchProducts(db))

	auth := UserAuth(opts.JWTSecret)
	r.POST("/logout/", auth, Logout(db))
	r.GET("/user/", auth, GetMe(db))
	r.PUT("/profile/update/", auth, UpdateProfile(db))
	r.PUT("/profile/picture/", auth, UpdateProfilePicture(db))
	r.PUT("/profile/dietary-preferences/", auth, UpdateDietaryPreferences(db))

	r.GET("/cart/", auth, GetCart(db))
	r.POST("/cart/add/", auth, AddToCart(db))
	r.DELETE("/cart/remove/:productId/", auth, RemoveFromCart(db))

	r.POST("/favorites/toggle/:productId/", auth, ToggleFavorite(db))
	r.GET("/favorites/favorites_list/", auth, FavoritesList(db))

	r.POST("/orders/create/", auth, CreateOrder(db))
	r.GET("/orders/", auth, GetOrders(db))
	r.GET("/orders/:id/", auth, GetOrderDetail(db))

	return r
}
