package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//
// --- Admin Session Handlers ---
//
// The admin panel uses a deliberately simple session model, separate from
// customer JWT auth: one configurable credential pair, opaque tokens held in
// the injected in-process store, everything gone on restart.
//

type AdminLoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin is the handler for POST /api/admin/login
func (h *Handlers) AdminLogin(c *gin.Context) {
	var input AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Username != h.AdminUsername || input.Password != h.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid username or password",
		})
		return
	}

	token := h.Sessions.Issue()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}

// AdminLogout is the handler for POST /api/admin/logout
func (h *Handlers) AdminLogout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		h.Sessions.Revoke(token)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// AdminCheck is the handler for GET /api/admin/check
func (h *Handlers) AdminCheck(c *gin.Context) {
	token := bearerToken(c)
	if token == "" || !h.Sessions.Valid(token) {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      h.AdminUsername,
	})
}

func bearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}
