package firestore_test

import (
	"context"
	"os"
	"testing"

	"wallcraft/internal/kv"
	kvfirestore "wallcraft/internal/kv/firestore"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newClient talks to the emulator named by FIRESTORE_EMULATOR_HOST; the
// tests are skipped without one.
func newClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "wallcraft-test")
	require.NoError(t, err)
	return client
}

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s := kvfirestore.New("kv-"+uuid.NewString(), newClient(t))
	defer s.Close()

	_, err := s.Get(ctx, "@wallcraft_favorites")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "@wallcraft_favorites", []byte(`[{"id":1}]`)))
	require.NoError(t, s.Set(ctx, "@wallcraft_favorites", []byte(`[]`)))

	got, err := s.Get(ctx, "@wallcraft_favorites")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestStorage_GetRejectsNonBytes(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)
	collection := "kv-" + uuid.NewString()
	s := kvfirestore.New(collection, client)
	defer s.Close()

	_, err := client.Collection(collection).Doc("k").Set(ctx, map[string]any{"value": "not bytes"})
	require.NoError(t, err)

	_, err = s.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, kv.ErrNotFound)
}
