package auth

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore holds the opaque admin session tokens for the lifetime of the
// process. It is deliberately in-memory only: restarting the server
// invalidates every admin session. The store is injected into the guard and
// handlers rather than living in a package-level variable so the behavior is
// explicit and testable.
type SessionStore struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func NewSessionStore() *SessionStore {
	return &SessionStore{tokens: make(map[string]struct{})}
}

// Issue mints a new opaque session token and records it as valid.
func (s *SessionStore) Issue() string {
	token := "session_" + uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = struct{}{}
	return token
}

// Revoke removes a token. Revoking an unknown token is a no-op.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Valid reports whether the token was issued by this store and not yet revoked.
func (s *SessionStore) Valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok
}
