package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-golang/internal/models"
)

//
// --- Category Handlers ---
//

// GetAllCategories is the handler for GET /api/categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	rows, err := h.DB.Query("SELECT id, name, image_path FROM categories ORDER BY name")
	if err != nil {
		log.Printf("Categories query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ImagePath); err != nil {
			log.Printf("Category scan error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategoryNames is the handler for GET /api/categories/names
func (h *Handlers) GetCategoryNames(c *gin.Context) {
	rows, err := h.DB.Query("SELECT name FROM categories ORDER BY name")
	if err != nil {
		log.Printf("Category names query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Printf("Category name scan error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		names = append(names, name)
	}

	c.JSON(http.StatusOK, names)
}

// GetCategoryByID is the handler for GET /api/categories/:id
func (h *Handlers) GetCategoryByID(c *gin.Context) {
	id := c.Param("id")

	var cat models.Category
	err := h.DB.QueryRow("SELECT id, name, image_path FROM categories WHERE id = ?", id).
		Scan(&cat.ID, &cat.Name, &cat.ImagePath)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Printf("Category lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	c.JSON(http.StatusOK, cat)
}

// CreateCategory is the handler for POST /api/categories (admin)
// Multipart: required "name" field, optional single "image" file.
func (h *Handlers) CreateCategory(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	var existingID int64
	err := h.DB.QueryRow("SELECT id FROM categories WHERE name = ?", name).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A category with that name already exists"})
		return
	}
	if err != sql.ErrNoRows {
		log.Printf("Category lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	var imagePath *string
	if file, err := c.FormFile("image"); err == nil {
		filename, err := h.saveImageFile(c, file, filepath.Join(h.ImagesPath, "categories"))
		if err != nil {
			log.Printf("Category image save error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		path := "/images/categories/" + filename
		imagePath = &path
	}

	result, err := h.DB.Exec("INSERT INTO categories (name, image_path) VALUES (?, ?)", name, imagePath)
	if err != nil {
		log.Printf("Category insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	id, _ := result.LastInsertId()
	c.JSON(http.StatusCreated, models.Category{ID: id, Name: name, ImagePath: imagePath})
}

// UpdateCategory is the handler for PUT /api/categories/:id (admin)
// Renaming a category does not rewrite products that reference the old name.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	var existing models.Category
	err := h.DB.QueryRow("SELECT id, name, image_path FROM categories WHERE id = ?", id).
		Scan(&existing.ID, &existing.Name, &existing.ImagePath)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Printf("Category lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	imagePath := existing.ImagePath
	if file, err := c.FormFile("image"); err == nil {
		if existing.ImagePath != nil {
			h.removeImageFile(*existing.ImagePath)
		}

		filename, err := h.saveImageFile(c, file, filepath.Join(h.ImagesPath, "categories"))
		if err != nil {
			log.Printf("Category image save error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		path := "/images/categories/" + filename
		imagePath = &path
	}

	_, err = h.DB.Exec("UPDATE categories SET name = ?, image_path = ? WHERE id = ?", name, imagePath, existing.ID)
	if err != nil {
		log.Printf("Category update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, models.Category{ID: existing.ID, Name: name, ImagePath: imagePath})
}

// DeleteCategory is the handler for DELETE /api/categories/:id (admin)
// Deletion is blocked while any product still references the category name.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	var existing models.Category
	err := h.DB.QueryRow("SELECT id, name, image_path FROM categories WHERE id = ?", id).
		Scan(&existing.ID, &existing.Name, &existing.ImagePath)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		log.Printf("Category lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	var productCount int
	err = h.DB.QueryRow("SELECT COUNT(*) FROM products WHERE category = ?", existing.Name).Scan(&productCount)
	if err != nil {
		log.Printf("Category usage query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if productCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot delete category: %d product(s) still reference it", productCount),
		})
		return
	}

	if existing.ImagePath != nil {
		h.removeImageFile(*existing.ImagePath)
	}

	if _, err := h.DB.Exec("DELETE FROM categories WHERE id = ?", existing.ID); err != nil {
		log.Printf("Category delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
