package main

import (
	"log"

	"tastebite/internal/config"
	"tastebite/internal/stubserver"
)

func main() {
	cfg := config.Load()

	db := stubserver.NewDB()
	stubserver.Seed(db)

	r := stubserver.Router(db, stubserver.Options{
		JWTSecret:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	})

	log.Println("[STUB] [INFO] serving on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
