package handlers

import (
	"database/sql"

	"github.com/motoshop/motoshop-golang/internal/auth"
	"github.com/motoshop/motoshop-golang/internal/cart"
)

// Handlers holds all dependencies for the HTTP handlers.
type Handlers struct {
	DB       *sql.DB
	Cart     *cart.Store
	Sessions *auth.SessionStore

	// Admin panel credentials (single configurable pair).
	AdminUsername string
	AdminPassword string

	// Image upload configuration.
	ImagesPath     string // on-disk root served under /images
	MaxFileSize    int64  // bytes, per uploaded file
	MaxImagesCount int    // files per product upload request
}
