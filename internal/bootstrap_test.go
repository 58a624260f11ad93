package internal

import (
	"context"
	"path/filepath"
	"testing"

	"wallcraft/internal/config"
	"wallcraft/internal/gallery"
	"wallcraft/internal/kv/memory"
	"wallcraft/internal/kv/sqlite"

	firebase "firebase.google.com/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noApp(t *testing.T) func() (*firebase.App, error) {
	return func() (*firebase.App, error) {
		t.Fatal("firebase should not be initialised")
		return nil, nil
	}
}

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	s, err := OpenStorage(ctx, config.Config{StorageDriver: config.DriverMemory}, noApp(t))
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, s)

	s, err = OpenStorage(ctx, config.Config{
		StorageDriver: config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "db", "wallcraft.db"),
	}, noApp(t))
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Storage{}, s)
	assert.NoError(t, s.Close())
}

func TestOpenGallery_LocalDirectory(t *testing.T) {
	dir := t.TempDir()

	lib, perms, err := openGallery(context.Background(), config.Config{GalleryDir: dir}, noApp(t))
	require.NoError(t, err)
	assert.Equal(t, &gallery.DirLibrary{Dir: dir}, lib)
	assert.Same(t, lib, perms)
}
