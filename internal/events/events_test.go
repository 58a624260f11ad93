package events

import (
	"context"
	"testing"

	"wallcraft/internal/favorites"
	"wallcraft/internal/model"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestParse(t *testing.T) {
	e, err := Parse([]byte(`{"action":"removed","id":4,"favorites":[{"id":1,"width":2,"height":3,"src":{}}],"extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, favorites.ActionRemoved, e.Action)
	assert.Equal(t, int64(4), e.ID)
	require.Len(t, e.Favorites, 1)
	assert.Equal(t, int64(1), e.Favorites[0].ID)

	e, err = Parse(Event{Action: favorites.ActionAdded, ID: 9, Seq: 1234}.Bytes())
	require.NoError(t, err)
	assert.Equal(t, int64(1234), e.Seq)

	_, err = Parse([]byte(`{"favorites":[]}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestEventBytes_ClearedOmitsID(t *testing.T) {
	b := Event{Action: favorites.ActionCleared}.Bytes()
	assert.JSONEq(t, `{"action":"cleared","seq":0,"favorites":[]}`, string(b))
}

func TestHandle(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()
	data := Event{Action: favorites.ActionAdded, ID: 3}.Bytes()

	var got Event
	ok := handle(ctx, data, func(_ context.Context, e Event) error {
		got = e
		return nil
	}, logger)
	assert.True(t, ok)
	assert.Equal(t, int64(3), got.ID)

	ok = handle(ctx, data, func(context.Context, Event) error {
		return errors.New("firestore unavailable")
	}, logger)
	assert.False(t, ok, "handler failure should nack")

	called := false
	ok = handle(ctx, []byte("{"), func(context.Context, Event) error {
		called = true
		return nil
	}, logger)
	assert.True(t, ok, "malformed message should be dropped")
	assert.False(t, called)
}

func TestPublisher_FavoritesChanged(t *testing.T) {
	ctx := context.Background()

	srv := pstest.NewServer()
	defer srv.Close()

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client, err := pubsub.NewClient(ctx, "wallcraft-test", option.WithGRPCConn(conn))
	require.NoError(t, err)
	defer client.Close()

	p, err := NewPublisher(ctx, client, "favorites", zaptest.NewLogger(t))
	require.NoError(t, err)
	defer p.Stop()

	list := []model.Wallpaper{{ID: 5, Width: 1, Height: 1}}
	require.NoError(t, p.FavoritesChanged(ctx, favorites.Change{Action: favorites.ActionAdded, ID: 5, Seq: 77}, list))

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "added", msgs[0].Attributes["action"])
	assert.Equal(t, favorites.StorageKey, msgs[0].OrderingKey)

	e, err := Parse(msgs[0].Data)
	require.NoError(t, err)
	assert.Equal(t, favorites.ActionAdded, e.Action)
	assert.Equal(t, int64(5), e.ID)
	assert.Equal(t, int64(77), e.Seq)
	assert.Equal(t, list[0].ID, e.Favorites[0].ID)

	// topic already exists on the second open
	_, err = NewPublisher(ctx, client, "favorites", zaptest.NewLogger(t))
	assert.NoError(t, err)
}
