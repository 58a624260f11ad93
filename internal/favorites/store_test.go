package favorites_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"wallcraft/internal/favorites"
	"wallcraft/internal/kv"
	"wallcraft/internal/kv/memory"
	"wallcraft/internal/model"
	"wallcraft/mocks"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func wallpaper(id int64) model.Wallpaper {
	return model.Wallpaper{ID: id, Width: 1080, Height: 1920, Photographer: "p"}
}

func ids(list []model.Wallpaper) []int64 {
	out := make([]int64, 0, len(list))
	for _, w := range list {
		out = append(out, w.ID)
	}
	return out
}

func persisted(t *testing.T, s kv.Storage) []int64 {
	t.Helper()
	blob, err := s.Get(context.Background(), favorites.StorageKey)
	require.NoError(t, err)
	list, err := model.DecodeList(blob)
	require.NoError(t, err)
	return ids(list)
}

func newStore(t *testing.T, storage kv.Storage, opts ...favorites.Option) *favorites.Store {
	t.Helper()
	s := favorites.New(context.Background(), storage, zaptest.NewLogger(t), opts...)
	t.Cleanup(s.Close)
	return s
}

func TestStore_ToggleAddsThenRemoves(t *testing.T) {
	storage := memory.New()
	s := newStore(t, storage)

	assert.True(t, s.Toggle(wallpaper(7)))
	assert.Equal(t, []int64{7}, ids(s.List()))
	assert.True(t, s.IsFavorite(7))

	assert.False(t, s.Toggle(wallpaper(7)))
	assert.Empty(t, s.List())
	assert.False(t, s.IsFavorite(7))

	require.NoError(t, s.Flush(context.Background()))
	assert.Empty(t, persisted(t, storage))
}

func TestStore_ToggleKeepsIDsUnique(t *testing.T) {
	s := newStore(t, memory.New())
	s.Toggle(wallpaper(1))

	for i := 0; i < 9; i++ {
		s.Toggle(wallpaper(2))
	}

	assert.Equal(t, []int64{1, 2}, ids(s.List()))
}

func TestStore_ConcurrentTogglesStayUnique(t *testing.T) {
	s := newStore(t, memory.New())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle(wallpaper(3))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, s.Count())
}

func TestStore_AddDoesNotDeduplicate(t *testing.T) {
	s := newStore(t, memory.New())
	s.Add(wallpaper(5))
	s.Add(wallpaper(5))
	assert.Equal(t, 2, s.Count())

	s.Remove(5)
	assert.Equal(t, 0, s.Count())
}

func TestStore_PreservesInsertionOrder(t *testing.T) {
	storage := memory.New()
	s := newStore(t, storage)

	for _, id := range []int64{30, 4, 17, 9} {
		s.Toggle(wallpaper(id))
	}
	s.Toggle(wallpaper(4))

	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, []int64{30, 17, 9}, ids(s.List()))
	assert.Equal(t, []int64{30, 17, 9}, persisted(t, storage))
}

func TestStore_LoadsPersistedList(t *testing.T) {
	storage := memory.New()
	require.NoError(t, storage.Set(context.Background(), favorites.StorageKey,
		model.EncodeList([]model.Wallpaper{wallpaper(2), wallpaper(1)})))

	s := newStore(t, storage)

	assert.Equal(t, []int64{2, 1}, ids(s.List()))
	got, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "p", got.Photographer)
}

func TestStore_CorruptBlobStartsEmpty(t *testing.T) {
	storage := memory.New()
	require.NoError(t, storage.Set(context.Background(), favorites.StorageKey, []byte(`[{"id":1},{"id":`)))

	core, logs := observer.New(zapcore.InfoLevel)
	s := favorites.New(context.Background(), storage, zap.New(core))
	defer s.Close()

	assert.Empty(t, s.List())
	assert.Equal(t, 1, logs.FilterMessage("error loading favorites").Len())
}

func TestStore_ReadFailureStartsEmpty(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("Get", mock.Anything, favorites.StorageKey).Return(nil, errors.New("locked"))

	s := newStore(t, storage)
	assert.Empty(t, s.List())
}

func TestStore_WriteFailureKeepsMemoryState(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("Get", mock.Anything, favorites.StorageKey).Return(nil, kv.ErrNotFound)
	storage.On("Set", mock.Anything, favorites.StorageKey, mock.Anything).Return(errors.New("disk full"))

	core, logs := observer.New(zapcore.InfoLevel)
	s := favorites.New(context.Background(), storage, zap.New(core))
	defer s.Close()

	assert.True(t, s.Toggle(wallpaper(11)))
	require.NoError(t, s.Flush(context.Background()))

	assert.True(t, s.IsFavorite(11))
	assert.Equal(t, 1, logs.FilterMessage("error saving favorites").Len())
}

func TestStore_WritesInMutationOrder(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("Get", mock.Anything, favorites.StorageKey).Return(nil, kv.ErrNotFound)

	var mu sync.Mutex
	var written [][]int64
	storage.On("Set", mock.Anything, favorites.StorageKey, mock.Anything).
		Run(func(args mock.Arguments) {
			list, err := model.DecodeList(args.Get(2).([]byte))
			require.NoError(t, err)
			mu.Lock()
			written = append(written, ids(list))
			mu.Unlock()
		}).
		Return(nil)

	s := newStore(t, storage)
	s.Toggle(wallpaper(1))
	s.Toggle(wallpaper(2))
	s.Toggle(wallpaper(1))
	require.NoError(t, s.Flush(context.Background()))

	mu.Lock()
	defer mu.Unlock()

	// Pending snapshots may be collapsed, but never reordered.
	snapshots := [][]int64{{1}, {1, 2}, {2}}
	require.NotEmpty(t, written)
	assert.Equal(t, []int64{2}, written[len(written)-1])
	next := 0
	for _, w := range written {
		for next < len(snapshots) && !assert.ObjectsAreEqual(snapshots[next], w) {
			next++
		}
		require.Less(t, next, len(snapshots), "write %v out of order in %v", w, written)
		next++
	}
}

func TestStore_StalledStorageDoesNotBlockMutations(t *testing.T) {
	storage := mocks.NewStorage(t)
	storage.On("Get", mock.Anything, favorites.StorageKey).Return(nil, kv.ErrNotFound)

	release := make(chan struct{})
	var mu sync.Mutex
	var written [][]int64
	storage.On("Set", mock.Anything, favorites.StorageKey, mock.Anything).
		Run(func(args mock.Arguments) {
			<-release
			list, err := model.DecodeList(args.Get(2).([]byte))
			require.NoError(t, err)
			mu.Lock()
			written = append(written, ids(list))
			mu.Unlock()
		}).
		Return(nil)

	s := newStore(t, storage)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := int64(1); i <= 200; i++ {
			s.Toggle(wallpaper(i))
			s.List()
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("mutations blocked behind a stalled write")
	}
	assert.Equal(t, 200, s.Count())

	close(release)
	require.NoError(t, s.Flush(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, len(written), 2)
	assert.Len(t, written[len(written)-1], 200)
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []favorites.Change
}

func (r *recordingNotifier) FavoritesChanged(_ context.Context, change favorites.Change, _ []model.Wallpaper) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change)
	return nil
}

func TestStore_NotifiesAfterWrite(t *testing.T) {
	n := &recordingNotifier{}
	s := newStore(t, memory.New(), favorites.WithNotifier(n))

	s.Toggle(wallpaper(8))
	s.Toggle(wallpaper(8))
	s.Clear()
	require.NoError(t, s.Flush(context.Background()))

	n.mu.Lock()
	defer n.mu.Unlock()
	require.Len(t, n.changes, 3)

	got := make([]favorites.Change, 0, len(n.changes))
	for i, c := range n.changes {
		if i > 0 {
			assert.Greater(t, c.Seq, n.changes[i-1].Seq)
		}
		c.Seq = 0
		got = append(got, c)
	}
	assert.Equal(t, []favorites.Change{
		{Action: favorites.ActionAdded, ID: 8},
		{Action: favorites.ActionRemoved, ID: 8},
		{Action: favorites.ActionCleared},
	}, got)
}

func TestStore_CloseDrainsQueue(t *testing.T) {
	storage := memory.New()
	s := favorites.New(context.Background(), storage, zaptest.NewLogger(t))

	s.Toggle(wallpaper(1))
	s.Toggle(wallpaper(2))
	s.Close()

	assert.Equal(t, []int64{1, 2}, persisted(t, storage))

	s.Toggle(wallpaper(3))
	assert.True(t, s.IsFavorite(3))
	assert.NoError(t, s.Flush(context.Background()))
}
