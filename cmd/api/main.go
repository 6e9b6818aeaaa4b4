package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/motoshop/motoshop-golang/internal/auth"
	"github.com/motoshop/motoshop-golang/internal/cache"
	"github.com/motoshop/motoshop-golang/internal/cart"
	"github.com/motoshop/motoshop-golang/internal/database"
	"github.com/motoshop/motoshop-golang/internal/handlers"
	"github.com/motoshop/motoshop-golang/internal/routes"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Database Connection (retries internally, fatal when exhausted) ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// --- Redis Connection (cart storage) ---
	redisCache, err := cache.OpenRedis()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// --- Application Setup ---
	// All dependencies are injected into the Handlers struct. The admin
	// session store is process-scoped: restarting drops every admin session.
	app := &handlers.Handlers{
		DB:       db,
		Cart:     cart.NewStore(redisCache),
		Sessions: auth.NewSessionStore(),

		AdminUsername: envOr("ADMIN_USERNAME", "admin"),
		AdminPassword: envOr("ADMIN_PASSWORD", "admin123"),

		ImagesPath:     envOr("IMAGES_PATH", "./frontend-images"),
		MaxFileSize:    envInt64("MAX_FILE_SIZE", 5*1024*1024),
		MaxImagesCount: int(envInt64("MAX_IMAGES_COUNT", 10)),
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := envOr("PORT", "3000")
	log.Printf("Starting motoshop API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
