package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-golang/internal/auth"
)

// AdminMiddleware guards admin routes. Unlike the customer guard it does not
// verify a signed token: it checks the opaque bearer token against the
// injected session store.
func AdminMiddleware(sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || !sessions.Valid(token) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
