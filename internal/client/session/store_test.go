package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/stretchr/testify/require"
)

func newPersistentStore(t *testing.T, path string) *PersistentStore {
	t.Helper()
	db, err := storage.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPersistentStore(metadata.NewSQLiteRepository(db))
}

func TestPersistentStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	s := newPersistentStore(t, filepath.Join(t.TempDir(), "s.db"))

	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok, "fresh store is anonymous")

	require.NoError(t, s.Set(ctx, "t1"))
	tok, err = s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "t1", tok)

	require.NoError(t, s.Set(ctx, "t2"))
	tok, _ = s.Get(ctx)
	require.Equal(t, "t2", tok, "at most one token")

	require.NoError(t, s.Clear(ctx))
	tok, err = s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestPersistentStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "s.db")

	first := newPersistentStore(t, path)
	require.NoError(t, first.Set(ctx, "t1"))

	second := newPersistentStore(t, path)
	tok, err := second.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "t1", tok)
}

func TestPersistentStore_SetEmptyClears(t *testing.T) {
	ctx := context.Background()
	s := newPersistentStore(t, filepath.Join(t.TempDir(), "s.db"))

	require.NoError(t, s.Set(ctx, "t1"))
	require.NoError(t, s.Set(ctx, ""))

	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

type failingRepo struct{ err error }

func (f failingRepo) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingRepo) Set(context.Context, string, []byte) error   { return f.err }
func (f failingRepo) Delete(context.Context, string) error        { return f.err }

func TestPersistentStore_ErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	s := NewPersistentStore(failingRepo{err: boom})

	_, err := s.Get(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.Set(ctx, "t1"), boom)
	require.ErrorIs(t, s.Clear(ctx), boom)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("")

	tok, _ := s.Get(ctx)
	require.Empty(t, tok)

	require.NoError(t, s.Set(ctx, "t1"))
	tok, _ = s.Get(ctx)
	require.Equal(t, "t1", tok)

	require.NoError(t, s.Clear(ctx))
	tok, _ = s.Get(ctx)
	require.Empty(t, tok)
}
