package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoshop/motoshop-golang/internal/auth"
	"github.com/motoshop/motoshop-golang/internal/middleware"
)

func newAdminTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	admin := router.Group("/api/admin")
	{
		admin.POST("/login", h.AdminLogin)
		admin.POST("/logout", h.AdminLogout)
		admin.GET("/check", h.AdminCheck)
	}

	// A guarded probe route, standing in for any admin CRUD endpoint.
	router.GET("/api/guarded", middleware.AdminMiddleware(h.Sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func newAdminHandlers() *Handlers {
	return &Handlers{
		Sessions:      auth.NewSessionStore(),
		AdminUsername: "admin",
		AdminPassword: "admin123",
	}
}

func doAuthed(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminLoginWrongCredentials(t *testing.T) {
	h := newAdminHandlers()
	router := newAdminTestRouter(h)

	w := doJSON(t, router, http.MethodPost, "/api/admin/login", gin.H{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSessionLifecycle(t *testing.T) {
	h := newAdminHandlers()
	router := newAdminTestRouter(h)

	// No token: guard rejects.
	assert.Equal(t, http.StatusUnauthorized, doAuthed(router, http.MethodGet, "/api/guarded", "").Code)

	// Login mints a token the guard accepts.
	w := doJSON(t, router, http.MethodPost, "/api/admin/login", gin.H{
		"username": "admin", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)

	assert.Equal(t, http.StatusOK, doAuthed(router, http.MethodGet, "/api/guarded", resp.Token).Code)
	assert.Equal(t, http.StatusOK, doAuthed(router, http.MethodGet, "/api/admin/check", resp.Token).Code)

	// A token the store never issued is rejected.
	assert.Equal(t, http.StatusUnauthorized, doAuthed(router, http.MethodGet, "/api/guarded", "session_forged").Code)

	// Logout revokes the token for both the guard and the check endpoint.
	assert.Equal(t, http.StatusOK, doAuthed(router, http.MethodPost, "/api/admin/logout", resp.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthed(router, http.MethodGet, "/api/guarded", resp.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthed(router, http.MethodGet, "/api/admin/check", resp.Token).Code)
}

func TestAdminCheckWithoutToken(t *testing.T) {
	h := newAdminHandlers()
	router := newAdminTestRouter(h)

	assert.Equal(t, http.StatusUnauthorized, doAuthed(router, http.MethodGet, "/api/admin/check", "").Code)
}

// Restarting the process means a fresh store: previously issued tokens die.
func TestNewStoreInvalidatesOldTokens(t *testing.T) {
	h := newAdminHandlers()
	router := newAdminTestRouter(h)

	w := doJSON(t, router, http.MethodPost, "/api/admin/login", gin.H{
		"username": "admin", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	h.Sessions = auth.NewSessionStore()
	router = newAdminTestRouter(h)
	assert.Equal(t, http.StatusUnauthorized, doAuthed(router, http.MethodGet, "/api/guarded", resp.Token).Code)
}
