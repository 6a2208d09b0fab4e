package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// tokenBytes is the entropy per opaque token: 24 bytes, 192 bits.
const tokenBytes = 24

// MemoryStore keeps issued tokens in a process-local set. Tokens have no
// expiry and no revocation path; every session dies with the process. The
// set is touched from concurrently handled requests, hence the lock.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewMemoryStore creates an empty token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]struct{})}
}

// Issue generates a high-entropy opaque token and records it.
func (s *MemoryStore) Issue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()

	return token, nil
}

// Verify checks membership in the issued set.
func (s *MemoryStore) Verify(token string) error {
	s.mu.RLock()
	_, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return ErrInvalidToken
	}
	return nil
}
