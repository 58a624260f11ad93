package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"wallcraft/internal/kv"
	"wallcraft/internal/kv/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "@wallcraft_favorites")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "@wallcraft_favorites", []byte(`[{"id":1}]`)))
	require.NoError(t, s.Set(ctx, "@wallcraft_favorites", []byte(`[]`)))

	got, err := s.Get(ctx, "@wallcraft_favorites")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestStorage_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "wallcraft.db")

	s, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = sqlite.New(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
