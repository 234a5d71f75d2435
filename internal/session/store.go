// Package session holds the single-slot token store that every guarded
// page reads on mount.
package session

import "sync"

// Token is an opaque session credential issued by the remote authority.
type Token string

// Present reports whether t carries a value. An empty token means "no session".
func (t Token) Present() bool {
	return t != ""
}

// Store is a single-slot key-value store for the current session token.
// Operations never fail: implementations log storage problems and report
// an absent token on read.
type Store interface {
	// Get returns the stored token and whether one is present.
	Get() (Token, bool)
	// Set replaces the stored token.
	Set(Token)
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear()
}

// MemoryStore is an in-process Store. The zero value is ready to use.
type MemoryStore struct {
	mu    sync.Mutex
	token Token
}

// NewMemoryStore returns a MemoryStore holding t (which may be empty).
func NewMemoryStore(t Token) *MemoryStore {
	return &MemoryStore{token: t}
}

func (s *MemoryStore) Get() (Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token.Present()
}

func (s *MemoryStore) Set(t Token) {
	s.mu.Lock()
	s.token = t
	s.mu.Unlock()
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}
