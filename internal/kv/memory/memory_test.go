package memory_test

import (
	"context"
	"testing"

	"wallcraft/internal/kv"
	"wallcraft/internal/kv/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	value := []byte("one")
	require.NoError(t, s.Set(ctx, "k", value))
	value[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), got)

	require.NoError(t, s.Set(ctx, "k", []byte("two")))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}
