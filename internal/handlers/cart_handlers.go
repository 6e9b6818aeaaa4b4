package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-golang/internal/models"
)

//
// --- Cart Handlers (bearer-protected) ---
//
// The cart is a single JSON document per user in Redis with a 24-hour TTL
// reset on every write. Mutations are read-modify-write: the last writer
// wins when two requests for the same user race.
//

// GetCart is the handler for GET /api/cart
func (h *Handlers) GetCart(c *gin.Context) {
	userID := c.GetInt64("userID")

	cart, _, err := h.Cart.Get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Cart retrieval error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

type AddToCartInput struct {
	ProductID   int64   `json:"productId" binding:"required"`
	ProductName string  `json:"productName" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"omitempty,gte=0"`
}

// AddToCart is the handler for POST /api/cart/add
// Adding a product already in the cart increments its quantity.
func (h *Handlers) AddToCart(c *gin.Context) {
	userID := c.GetInt64("userID")

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	cart, _, err := h.Cart.Get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Cart retrieval error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	cart.AddItem(models.CartItem{
		ProductID:   input.ProductID,
		ProductName: input.ProductName,
		Price:       input.Price,
		Quantity:    input.Quantity,
	})

	if err := h.Cart.Save(c.Request.Context(), userID, cart); err != nil {
		log.Printf("Cart save error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": cart})
}

type UpdateCartInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  *int  `json:"quantity" binding:"required"`
}

// UpdateCartItem is the handler for PUT /api/cart/update
// Quantity 0 removes the line; removing the last line deletes the document.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userID := c.GetInt64("userID")

	var input UpdateCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity cannot be negative"})
		return
	}

	cart, found, err := h.Cart.Get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Cart retrieval error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart is empty"})
		return
	}

	cart.SetQuantity(input.ProductID, *input.Quantity)

	if err := h.Cart.Save(c.Request.Context(), userID, cart); err != nil {
		log.Printf("Cart save error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	if cart.IsEmpty() {
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": models.NewCart()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart})
}

// RemoveFromCart is the handler for DELETE /api/cart/:productId
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	userID := c.GetInt64("userID")

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	cart, found, err := h.Cart.Get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Cart retrieval error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart is empty"})
		return
	}

	cart.RemoveItem(productID)

	if err := h.Cart.Save(c.Request.Context(), userID, cart); err != nil {
		log.Printf("Cart save error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	if cart.IsEmpty() {
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": models.NewCart()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "cart": cart})
}

// ClearCart is the handler for DELETE /api/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	userID := c.GetInt64("userID")

	if err := h.Cart.Delete(c.Request.Context(), userID); err != nil {
		log.Printf("Cart delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
