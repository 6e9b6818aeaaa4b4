package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motoshop/motoshop-golang/internal/cache"
	"github.com/motoshop/motoshop-golang/internal/models"
)

// memCache is an in-memory cache.Cache for tests. It records the TTL of the
// last Set so expiry behavior can be asserted without a Redis server.
type memCache struct {
	data    map[string]string
	lastTTL time.Duration
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

func (m *memCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.data[key] = value
	m.lastTTL = ttl
	return nil
}

func (m *memCache) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestGetMissingCartReturnsEmptyDocument(t *testing.T) {
	store := NewStore(newMemCache())

	cart, found, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := NewStore(newMemCache())
	ctx := context.Background()

	cart := models.NewCart()
	cart.AddItem(models.CartItem{ProductID: 5, ProductName: "CBR", Price: 500000, Quantity: 3})
	require.NoError(t, store.Save(ctx, 1, cart))

	loaded, found, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 1500000.0, loaded.Total)
}

func TestSaveResetsTTL(t *testing.T) {
	mem := newMemCache()
	store := NewStore(mem)
	ctx := context.Background()

	cart := models.NewCart()
	cart.AddItem(models.CartItem{ProductID: 1, ProductName: "CBR", Price: 100, Quantity: 1})

	require.NoError(t, store.Save(ctx, 1, cart))
	assert.Equal(t, TTL, mem.lastTTL)

	cart.AddItem(models.CartItem{ProductID: 2, ProductName: "R1", Price: 50, Quantity: 1})
	require.NoError(t, store.Save(ctx, 1, cart))
	assert.Equal(t, TTL, mem.lastTTL)
}

func TestSaveEmptyCartDeletesKey(t *testing.T) {
	mem := newMemCache()
	store := NewStore(mem)
	ctx := context.Background()

	cart := models.NewCart()
	cart.AddItem(models.CartItem{ProductID: 1, ProductName: "CBR", Price: 100, Quantity: 1})
	require.NoError(t, store.Save(ctx, 1, cart))
	assert.Contains(t, mem.data, "cart:1")

	// Removing the last line and saving must delete the key outright, never
	// store an empty document.
	cart.RemoveItem(1)
	require.NoError(t, store.Save(ctx, 1, cart))
	assert.NotContains(t, mem.data, "cart:1")
}

func TestGetCorruptDocumentIsAnError(t *testing.T) {
	mem := newMemCache()
	mem.data["cart:1"] = "{not json"
	store := NewStore(mem)

	_, _, err := store.Get(context.Background(), 1)
	require.Error(t, err)
}

func TestDeleteRemovesDocument(t *testing.T) {
	mem := newMemCache()
	store := NewStore(mem)
	ctx := context.Background()

	cart := models.NewCart()
	cart.AddItem(models.CartItem{ProductID: 1, ProductName: "CBR", Price: 100, Quantity: 1})
	require.NoError(t, store.Save(ctx, 1, cart))

	require.NoError(t, store.Delete(ctx, 1))

	_, found, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}
