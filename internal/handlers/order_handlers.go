package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-golang/internal/models"
)

//
// --- Order Handlers ---
//

// orderItems loads the immutable item snapshots for one order.
func (h *Handlers) orderItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := h.DB.Query(
		"SELECT id, order_id, product_id, product_name, price, quantity FROM order_items WHERE order_id = ?",
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Checkout is the handler for POST /api/orders
//
// It converts the caller's cart into a persisted order:
//  1. read the cart document; absent or empty means 400 and nothing written
//  2. inside one transaction, insert the order row and one item snapshot
//     per cart line
//  3. commit, then delete the cart document
//
// The cache delete deliberately happens after commit: a crash in between
// leaves at most a stale cart next to a completed order, never a lost or
// duplicated order.
func (h *Handlers) Checkout(c *gin.Context) {
	userID := c.GetInt64("userID")

	cart, found, err := h.Cart.Get(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Cart retrieval error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	if !found || cart.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		log.Printf("Transaction begin error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.Exec(
		"INSERT INTO orders (user_id, total_amount, status, created_at) VALUES (?, ?, ?, ?)",
		userID, cart.Total, models.OrderStatusCompleted, now,
	)
	if err != nil {
		log.Printf("Order insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		log.Printf("Order insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	for _, item := range cart.Items {
		_, err := tx.Exec(
			"INSERT INTO order_items (order_id, product_id, product_name, price, quantity) VALUES (?, ?, ?, ?, ?)",
			orderID, item.ProductID, item.ProductName, item.Price, item.Quantity,
		)
		if err != nil {
			log.Printf("Order item insert error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Transaction commit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	if err := h.Cart.Delete(c.Request.Context(), userID); err != nil {
		// The order is committed; a leftover cart is the accepted residue.
		log.Printf("Cart delete after checkout failed for user %d: %v", userID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created",
		"order": gin.H{
			"id":          orderID,
			"totalAmount": cart.Total,
			"status":      models.OrderStatusCompleted,
			"createdAt":   now,
			"items":       cart.Items,
		},
	})
}

type orderResponse struct {
	models.Order
	Items []models.OrderItem `json:"items"`
}

// GetMyOrders is the handler for GET /api/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID := c.GetInt64("userID")

	rows, err := h.DB.Query(
		"SELECT id, user_id, total_amount, status, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		log.Printf("Orders query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			log.Printf("Order scan error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		orders = append(orders, o)
	}

	responses := []orderResponse{}
	for _, o := range orders {
		items, err := h.orderItems(o.ID)
		if err != nil {
			log.Printf("Order items error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		responses = append(responses, orderResponse{Order: o, Items: items})
	}

	c.JSON(http.StatusOK, gin.H{"orders": responses})
}

// GetOrderByID is the handler for GET /api/orders/:id
// Ownership is enforced in the query itself.
func (h *Handlers) GetOrderByID(c *gin.Context) {
	userID := c.GetInt64("userID")
	orderID := c.Param("id")

	var o models.Order
	err := h.DB.QueryRow(
		"SELECT id, user_id, total_amount, status, created_at FROM orders WHERE id = ? AND user_id = ?",
		orderID, userID,
	).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("Order lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	items, err := h.orderItems(o.ID)
	if err != nil {
		log.Printf("Order items error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": orderResponse{Order: o, Items: items}})
}

// adminOrderRow is the admin listing shape: raw column names plus the
// owning username.
type adminOrderRow struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id"`
	Username    *string            `json:"username"`
	TotalAmount float64            `json:"total_amount"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []models.OrderItem `json:"items"`
}

// GetAllOrders is the handler for GET /api/orders/admin/all (admin)
func (h *Handlers) GetAllOrders(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT o.id, o.user_id, u.username, o.total_amount, o.status, o.created_at
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		log.Printf("Orders query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []adminOrderRow{}
	for rows.Next() {
		var o adminOrderRow
		if err := rows.Scan(&o.ID, &o.UserID, &o.Username, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			log.Printf("Order scan error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		orders = append(orders, o)
	}

	for i := range orders {
		items, err := h.orderItems(orders[i].ID)
		if err != nil {
			log.Printf("Order items error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		orders[i].Items = items
	}

	c.JSON(http.StatusOK, orders)
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending completed cancelled"`
}

// UpdateOrderStatus is the handler for PUT /api/orders/:id/status (admin)
// Any status may move to any other; there is no transition adjacency.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var o models.Order
	err := h.DB.QueryRow(
		"SELECT id, user_id, total_amount, created_at FROM orders WHERE id = ?", orderID,
	).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("Order lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	if _, err := h.DB.Exec("UPDATE orders SET status = ? WHERE id = ?", input.Status, o.ID); err != nil {
		log.Printf("Status update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}
	o.Status = input.Status

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "order": o})
}
