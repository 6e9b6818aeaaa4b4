package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/motoshop/motoshop-golang/internal/cache"
	"github.com/motoshop/motoshop-golang/internal/models"
)

// TTL is the sliding expiration window for cart documents. Every Save resets
// it, so a cart survives 24 hours past its last write.
const TTL = 24 * time.Hour

// Store reads and writes the per-user cart document in the cache.
//
// Writes are read-modify-write without locking: two concurrent mutations for
// the same user race and the last writer wins. The store is a single injected
// object, so a serializing wrapper can be layered in front of it without
// touching the handlers.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewStore(c cache.Cache) *Store {
	return &Store{cache: c, ttl: TTL}
}

func cartKey(userID int64) string {
	return fmt.Sprintf("cart:%d", userID)
}

// Get returns the user's cart document. found is false when no document
// exists (or it has expired). A document that fails to decode is an error,
// not an empty cart, so malformed cache content cannot masquerade as state.
func (s *Store) Get(ctx context.Context, userID int64) (*models.Cart, bool, error) {
	raw, err := s.cache.Get(ctx, cartKey(userID))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return models.NewCart(), false, nil
		}
		return nil, false, err
	}

	var c models.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, false, fmt.Errorf("corrupt cart document for user %d: %w", userID, err)
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return &c, true, nil
}

// Save persists the cart with a fresh TTL. An empty cart is never stored:
// the key is deleted outright instead.
func (s *Store) Save(ctx context.Context, userID int64, c *models.Cart) error {
	if c.IsEmpty() {
		return s.cache.Del(ctx, cartKey(userID))
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, cartKey(userID), string(raw), s.ttl)
}

// Delete removes the user's cart document entirely.
func (s *Store) Delete(ctx context.Context, userID int64) error {
	return s.cache.Del(ctx, cartKey(userID))
}
