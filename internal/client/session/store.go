package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/metadata"
)

// TokenKey is the metadata key under which the bearer token is persisted.
const TokenKey = "token"

// TokenStore holds at most one bearer token. An empty string means anonymous.
// A value written by Set or removed by Clear is visible to the next Get.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// PersistentStore keeps the token in the local metadata database so it
// survives restarts.
type PersistentStore struct {
	repo metadata.Repository
}

func NewPersistentStore(repo metadata.Repository) *PersistentStore {
	return &PersistentStore{repo: repo}
}

func (s *PersistentStore) Get(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(v), nil
}

// Set stores token, replacing any previous one. An empty token clears the store.
func (s *PersistentStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo.Set(ctx, TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *PersistentStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MemoryStore is a process-local TokenStore, used in tests and as a fallback
// when no database is configured.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
