package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-golang/internal/models"
)

//
// --- Product Handlers ---
//

// productImages loads a product's gallery ordered by display_order, so the
// first entry is the primary image.
func (h *Handlers) productImages(productID int64) ([]models.ProductImage, error) {
	rows, err := h.DB.Query(
		"SELECT id, product_id, image_path, display_order FROM product_images WHERE product_id = ? ORDER BY display_order",
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.ProductImage{}
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImagePath, &img.DisplayOrder); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// attachImages fills in a product's Images slice and derived ImageURL.
func (h *Handlers) attachImages(p *models.Product) error {
	images, err := h.productImages(p.ID)
	if err != nil {
		return err
	}
	p.Images = images
	if len(images) > 0 {
		p.ImageURL = &images[0].ImagePath
	}
	return nil
}

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	var description, category, interest sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Price, &description, &category, &interest)
	p.Description = description.String
	p.Category = category.String
	p.Interest = interest.String
	return p, err
}

// GetAllProducts is the handler for GET /api/products[?category=]
func (h *Handlers) GetAllProducts(c *gin.Context) {
	query := "SELECT id, product_name, price, description, category, interest FROM products"
	args := []any{}

	if category := c.Query("category"); category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY id"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		log.Printf("Products query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Printf("Product scan error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Products iteration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	for i := range products {
		if err := h.attachImages(&products[i]); err != nil {
			log.Printf("Product images error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
	}

	c.JSON(http.StatusOK, products)
}

// GetProductByID is the handler for GET /api/products/:id
func (h *Handlers) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	row := h.DB.QueryRow(
		"SELECT id, product_name, price, description, category, interest FROM products WHERE id = ?", id,
	)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("Product lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	if err := h.attachImages(&p); err != nil {
		log.Printf("Product images error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetProductCategories is the handler for GET /api/products/categories
// It returns the lightweight name + image pairs the storefront landing
// page renders.
func (h *Handlers) GetProductCategories(c *gin.Context) {
	rows, err := h.DB.Query("SELECT name, image_path FROM categories ORDER BY name")
	if err != nil {
		log.Printf("Categories query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	type categoryTile struct {
		Name      string  `json:"name"`
		ImagePath *string `json:"image_path"`
	}

	tiles := []categoryTile{}
	for rows.Next() {
		var t categoryTile
		if err := rows.Scan(&t.Name, &t.ImagePath); err != nil {
			log.Printf("Category scan error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		tiles = append(tiles, t)
	}

	c.JSON(http.StatusOK, tiles)
}

type ProductInput struct {
	Name        string  `json:"product_name" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Interest    string  `json:"interest"`
}

// CreateProduct is the handler for POST /api/products (admin)
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(
		"INSERT INTO products (product_name, price, description, category, interest) VALUES (?, ?, ?, ?, ?)",
		input.Name, input.Price, input.Description, input.Category, input.Interest,
	)
	if err != nil {
		log.Printf("Product insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Printf("Product insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, models.Product{
		ID:          id,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		Interest:    input.Interest,
		Images:      []models.ProductImage{},
	})
}

// UpdateProduct is the handler for PUT /api/products/:id (admin)
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check existence first: MySQL reports zero affected rows for a no-op
	// update, so RowsAffected can't distinguish "missing" from "unchanged".
	var productID int64
	err := h.DB.QueryRow("SELECT id FROM products WHERE id = ?", id).Scan(&productID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("Product lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	_, err = h.DB.Exec(
		"UPDATE products SET product_name = ?, price = ?, description = ?, category = ?, interest = ? WHERE id = ?",
		input.Name, input.Price, input.Description, input.Category, input.Interest, productID,
	)
	if err != nil {
		log.Printf("Product update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	p := models.Product{
		ID:          productID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Category:    input.Category,
		Interest:    input.Interest,
	}
	if err := h.attachImages(&p); err != nil {
		log.Printf("Product images error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteProduct is the handler for DELETE /api/products/:id (admin)
// Image files are removed from disk best-effort before the rows go away.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	rows, err := h.DB.Query("SELECT image_path FROM product_images WHERE product_id = ?", id)
	if err != nil {
		log.Printf("Product images query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	imagePaths := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			log.Printf("Image path scan error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		imagePaths = append(imagePaths, path)
	}
	rows.Close()

	for _, path := range imagePaths {
		h.removeImageFile(path)
	}

	if _, err := h.DB.Exec("DELETE FROM product_images WHERE product_id = ?", id); err != nil {
		log.Printf("Image rows delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	result, err := h.DB.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		log.Printf("Product delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// UploadProductImages is the handler for POST /api/products/:id/images (admin)
// It accepts multipart "images" files and stores them under a directory
// derived from the product name; display order follows upload order.
func (h *Handlers) UploadProductImages(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var productName string
	err = h.DB.QueryRow("SELECT product_name FROM products WHERE id = ?", productID).Scan(&productName)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("Product lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload images"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	if len(files) > h.MaxImagesCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many files"})
		return
	}

	dirName := safeProductName(productName)
	dir := filepath.Join(h.ImagesPath, "bikes", dirName)

	uploaded := []models.ProductImage{}
	for i, file := range files {
		filename, err := h.saveImageFile(c, file, dir)
		if err != nil {
			log.Printf("Image save error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		imagePath := "/images/bikes/" + dirName + "/" + filename
		result, err := h.DB.Exec(
			"INSERT INTO product_images (product_id, image_path, display_order) VALUES (?, ?, ?)",
			productID, imagePath, i,
		)
		if err != nil {
			log.Printf("Image insert error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload images"})
			return
		}

		imageID, _ := result.LastInsertId()
		uploaded = append(uploaded, models.ProductImage{
			ID:           imageID,
			ProductID:    productID,
			ImagePath:    imagePath,
			DisplayOrder: i,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Images uploaded",
		"imagesCount": len(uploaded),
		"images":      uploaded,
	})
}

// GetProductImages is the handler for GET /api/products/:id/images
func (h *Handlers) GetProductImages(c *gin.Context) {
	id := c.Param("id")

	var productID int64
	err := h.DB.QueryRow("SELECT id FROM products WHERE id = ?", id).Scan(&productID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("Product lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}

	images, err := h.productImages(productID)
	if err != nil {
		log.Printf("Product images error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}

// DeleteProductImage is the handler for DELETE /api/products/images/:imageId (admin)
func (h *Handlers) DeleteProductImage(c *gin.Context) {
	imageID := c.Param("imageId")

	var imagePath string
	err := h.DB.QueryRow("SELECT image_path FROM product_images WHERE id = ?", imageID).Scan(&imagePath)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		log.Printf("Image lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	h.removeImageFile(imagePath)

	if _, err := h.DB.Exec("DELETE FROM product_images WHERE id = ?", imageID); err != nil {
		log.Printf("Image delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
