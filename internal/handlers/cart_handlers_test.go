package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoshop/motoshop-golang/internal/cache"
	"github.com/motoshop/motoshop-golang/internal/cart"
	"github.com/motoshop/motoshop-golang/internal/models"
)

// memCache is an in-memory cache.Cache so cart handlers can be exercised
// without a Redis server.
type memCache struct {
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	val, ok := m.data[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return val, nil
}

func (m *memCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// asUser stands in for the JWT guard and pins the authenticated user.
func asUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func newCartTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/api/cart")
	group.Use(asUser(1))
	{
		group.GET("", h.GetCart)
		group.POST("/add", h.AddToCart)
		group.PUT("/update", h.UpdateCartItem)
		group.DELETE("/:productId", h.RemoveFromCart)
		group.DELETE("", h.ClearCart)
	}
	return router
}

type cartEnvelope struct {
	Message string      `json:"message"`
	Cart    models.Cart `json:"cart"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetCartWhenEmpty(t *testing.T) {
	h := &Handlers{Cart: cart.NewStore(newMemCache())}
	router := newCartTestRouter(h)

	w := doJSON(t, router, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc models.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Empty(t, doc.Items)
	assert.Equal(t, 0.0, doc.Total)
}

func TestAddToCartMergesSameProduct(t *testing.T) {
	h := &Handlers{Cart: cart.NewStore(newMemCache())}
	router := newCartTestRouter(h)

	w := doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 5, "productName": "CBR", "price": 500000, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 500000.0, resp.Cart.Total)

	w = doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 5, "productName": "CBR", "price": 500000, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 3, resp.Cart.Items[0].Quantity)
	assert.Equal(t, 1500000.0, resp.Cart.Total)
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	h := &Handlers{Cart: cart.NewStore(newMemCache())}
	router := newCartTestRouter(h)

	w := doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 5, "productName": "CBR", "price": 100,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 1, resp.Cart.Items[0].Quantity)
}

// An explicit quantity of 0 behaves like an absent field: the line lands with
// quantity 1, never as a zero-quantity line.
func TestAddToCartExplicitZeroQuantityMeansOne(t *testing.T) {
	h := &Handlers{Cart: cart.NewStore(newMemCache())}
	router := newCartTestRouter(h)

	w := doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 5, "productName": "CBR", "price": 100, "quantity": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 1, resp.Cart.Items[0].Quantity)
	assert.Equal(t, 100.0, resp.Cart.Total)
}

func TestAddToCartMissingFields(t *testing.T) {
	h := &Handlers{Cart: cart.NewStore(newMemCache())}
	router := newCartTestRouter(h)

	w := doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{"productId": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuantityZeroRemovesLastLineAndKey(t *testing.T) {
	mem := newMemCache()
	h := &Handlers{Cart: cart.NewStore(mem)}
	router := newCartTestRouter(h)

	doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 5, "productName": "CBR", "price": 100, "quantity": 2,
	})

	w := doJSON(t, router, http.MethodPut, "/api/cart/update", gin.H{
		"productId": 5, "quantity": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Cart cleared", resp.Message)
	assert.Empty(t, resp.Cart.Items)

	// The cache key must be gone, not holding an empty document.
	assert.NotContains(t, mem.data, "cart:1")
}

func TestUpdateNegativeQuantityRejected(t *testing.T) {
	h := &Handlers{Cart: cart.NewStore(newMemCache())}
	router := newCartTestRouter(h)

	doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 5, "productName": "CBR", "price": 100,
	})

	w := doJSON(t, router, http.MethodPut, "/api/cart/update", gin.H{
		"productId": 5, "quantity": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMissingCartReturns404(t *testing.T) {
	h := &Handlers{Cart: cart.NewStore(newMemCache())}
	router := newCartTestRouter(h)

	w := doJSON(t, router, http.MethodPut, "/api/cart/update", gin.H{
		"productId": 5, "quantity": 2,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFromCartRecomputesTotal(t *testing.T) {
	h := &Handlers{Cart: cart.NewStore(newMemCache())}
	router := newCartTestRouter(h)

	doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 1, "productName": "CBR", "price": 100, "quantity": 2,
	})
	doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 2, "productName": "R1", "price": 50, "quantity": 1,
	})

	w := doJSON(t, router, http.MethodDelete, "/api/cart/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, int64(2), resp.Cart.Items[0].ProductID)
	assert.Equal(t, 50.0, resp.Cart.Total)
}

func TestClearCart(t *testing.T) {
	mem := newMemCache()
	h := &Handlers{Cart: cart.NewStore(mem)}
	router := newCartTestRouter(h)

	doJSON(t, router, http.MethodPost, "/api/cart/add", gin.H{
		"productId": 1, "productName": "CBR", "price": 100,
	})

	w := doJSON(t, router, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, mem.data, "cart:1")
}
