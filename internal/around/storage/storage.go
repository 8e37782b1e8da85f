// Package storage defines the durable client state that survives restarts:
// the bearer token and nothing else.
package storage

import (
	"context"
	"sync"
)

// TokenKey is the fixed key the bearer token is stored under.
const TokenKey = "token"

// TokenStore persists the bearer token.
type TokenStore interface {
	// Token returns the stored token and whether one exists.
	Token(ctx context.Context) (string, bool, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Memory is a TokenStore that lives only as long as the process.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Token implements TokenStore.
func (m *Memory) Token(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.values[TokenKey]
	return token, ok && token != "", nil
}

// SetToken implements TokenStore.
func (m *Memory) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[TokenKey] = token
	m.writes++
	return nil
}

// ClearToken implements TokenStore.
func (m *Memory) ClearToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, TokenKey)
	m.writes++
	return nil
}

// Writes counts SetToken and ClearToken calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
