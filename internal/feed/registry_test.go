package feed_test

import (
	"context"
	"testing"

	"wallcraft/internal/apperr"
	"wallcraft/internal/feed"
	"wallcraft/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRegistry_OpenGetClose(t *testing.T) {
	l := mocks.NewLister(t)
	l.On("Search", mock.Anything, "space", 1).Return(page(1, 2), nil).Once()

	r := feed.NewRegistry(l, zaptest.NewLogger(t))

	id, c, err := r.Open(feed.ModeSearch, "space")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	c.InitialLoad(context.Background())

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, "space", got.Snapshot().Query)
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Close(id))
	assert.False(t, r.Close(id))
	_, ok = r.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_OpenIndependentFeeds(t *testing.T) {
	r := feed.NewRegistry(mocks.NewLister(t), zaptest.NewLogger(t))

	a, ca, err := r.Open(feed.ModeCurated, "")
	require.NoError(t, err)
	b, cb, err := r.Open(feed.ModeCurated, "")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotSame(t, ca, cb)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_OpenUnknownMode(t *testing.T) {
	r := feed.NewRegistry(mocks.NewLister(t), zaptest.NewLogger(t))

	_, _, err := r.Open(feed.Mode("trending"), "")
	require.Error(t, err)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
	assert.Equal(t, 0, r.Len())
}
