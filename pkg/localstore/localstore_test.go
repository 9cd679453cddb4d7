package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Put(ctx, "k", "v1"))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", got)

	require.NoError(t, m.Put(ctx, "k", "v2"))
	got, _, err = m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", got)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Path: filepath.Join(t.TempDir(), "data.db")}

	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(ctx))

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put(ctx, "k", "v1"))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", got)

	// overwrite keeps a single row per key
	require.NoError(t, s.Put(ctx, "k", "v2"))
	got, _, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	// delete of an absent key is not an error
	require.NoError(t, s.Delete(ctx, "missing"))
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Path: filepath.Join(t.TempDir(), "data.db")}

	s, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s2, err := Open(cfg)
	require.NoError(t, err)
	defer s2.Close()

	got, ok, err := s2.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", got)
}
