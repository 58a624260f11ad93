// Package favorites owns the user's saved wallpapers. The in-memory list is
// the source of truth for the running process; every mutation queues a
// snapshot for a single writer goroutine, which saves the newest snapshot
// pending, so storage only ever moves forward in mutation order.
package favorites

import (
	"context"
	"sync"
	"time"

	"wallcraft/internal/apperr"
	"wallcraft/internal/kv"
	"wallcraft/internal/model"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// StorageKey is the single key holding the serialised list.
const StorageKey = "@wallcraft_favorites"

const writeTimeout = 10 * time.Second

type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
	ActionCleared Action = "cleared"
)

type Change struct {
	Action Action `json:"action"`
	ID     int64  `json:"id,omitempty"`
	// Seq increases with every change so consumers can drop stale copies.
	Seq int64 `json:"seq"`
}

// Notifier is told about each change once its write has completed.
type Notifier interface {
	FavoritesChanged(ctx context.Context, change Change, favorites []model.Wallpaper) error
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

type Store struct {
	storage  kv.Storage
	logger   *zap.Logger
	notifier Notifier

	mu        sync.RWMutex
	favorites []model.Wallpaper
	closed    bool
	seq       int64

	qmu      sync.Mutex
	queue    []write
	stopping bool
	wake     chan struct{}
	done     chan struct{}
}

type write struct {
	change  Change
	list    []model.Wallpaper
	flushed chan struct{}
}

// New loads the persisted list and starts the writer. It never fails: a
// missing or unreadable list starts the store empty.
func New(ctx context.Context, storage kv.Storage, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		storage:   storage,
		logger:    logger,
		favorites: make([]model.Wallpaper, 0),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load(ctx)
	go s.run()

	return s
}

func (s *Store) load(ctx context.Context) {
	blob, err := s.storage.Get(ctx, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Error("error loading favorites", zap.Error(apperr.PersistenceError("favorites.load", err)))
		return
	}

	list, err := model.DecodeList(blob)
	if err != nil {
		s.logger.Error("error loading favorites", zap.Error(apperr.PersistenceError("favorites.load", err)))
		return
	}

	s.favorites = list
	s.logger.Info("favorites loaded", zap.Int("count", len(list)))
}

// List returns a copy of the favorites in insertion order.
func (s *Store) List() []model.Wallpaper {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Wallpaper, len(s.favorites))
	copy(out, s.favorites)
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorites)
}

func (s *Store) Get(id int64) (model.Wallpaper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.favorites {
		if w.ID == id {
			return w, true
		}
	}
	return model.Wallpaper{}, false
}

func (s *Store) IsFavorite(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Contains(s.favorites, id)
}

// Add appends w without checking for an existing entry; Toggle is the path
// that keeps ids unique.
func (s *Store) Add(w model.Wallpaper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(w)
}

// Remove drops every entry with id.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// Toggle removes w if it is a favorite and adds it otherwise. It reports
// whether w is a favorite afterwards.
func (s *Store) Toggle(w model.Wallpaper) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if model.Contains(s.favorites, w.ID) {
		s.remove(w.ID)
		return false
	}
	s.add(w)
	return true
}

// Clear removes every favorite.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = make([]model.Wallpaper, 0)
	s.enqueue(Change{Action: ActionCleared})
}

func (s *Store) add(w model.Wallpaper) {
	next := make([]model.Wallpaper, len(s.favorites), len(s.favorites)+1)
	copy(next, s.favorites)
	s.favorites = append(next, w)
	s.enqueue(Change{Action: ActionAdded, ID: w.ID})
}

func (s *Store) remove(id int64) {
	next := make([]model.Wallpaper, 0, len(s.favorites))
	for _, w := range s.favorites {
		if w.ID != id {
			next = append(next, w)
		}
	}
	s.favorites = next
	s.enqueue(Change{Action: ActionRemoved, ID: id})
}

// enqueue must be called with mu held so queue order matches mutation order.
// It never blocks: a stalled storage backend grows the queue, and the writer
// collapses whatever has piled up into a single write of the newest list.
func (s *Store) enqueue(change Change) {
	if s.closed {
		s.logger.Warn("favorites store closed, change not persisted", zap.String("action", string(change.Action)))
		return
	}

	// Seq orders changes across restarts as well as within one process.
	seq := time.Now().UnixNano()
	if seq <= s.seq {
		seq = s.seq + 1
	}
	s.seq = seq
	change.Seq = seq

	s.push(write{change: change, list: s.favorites})
}

func (s *Store) push(w write) {
	s.qmu.Lock()
	s.queue = append(s.queue, w)
	s.qmu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every write queued before the call has completed.
func (s *Store) Flush(ctx context.Context) error {
	flushed := make(chan struct{})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.push(write{flushed: flushed})
	s.mu.Unlock()

	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains pending writes and stops the writer.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.qmu.Lock()
	s.stopping = true
	s.qmu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}

	<-s.done
}

func (s *Store) drain() ([]write, bool) {
	s.qmu.Lock()
	defer s.qmu.Unlock()

	batch := s.queue
	s.queue = nil
	return batch, s.stopping
}

func (s *Store) run() {
	defer close(s.done)

	for range s.wake {
		batch, stopping := s.drain()
		s.persist(batch)
		if stopping {
			return
		}
	}
}

// persist writes the newest list in batch once, then notifies every change
// in order and releases any Flush waiting on the batch.
func (s *Store) persist(batch []write) {
	var (
		changes []write
		flushed []chan struct{}
	)
	for _, w := range batch {
		if w.flushed != nil {
			flushed = append(flushed, w.flushed)
			continue
		}
		changes = append(changes, w)
	}
	defer func() {
		for _, ch := range flushed {
			close(ch)
		}
	}()
	if len(changes) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	last := changes[len(changes)-1]
	if err := s.storage.Set(ctx, StorageKey, model.EncodeList(last.list)); err != nil {
		s.logger.Error("error saving favorites",
			zap.String("action", string(last.change.Action)),
			zap.Int("pending", len(changes)),
			zap.Error(apperr.PersistenceError("favorites.save", err)),
		)
		return
	}
	if len(changes) > 1 {
		s.logger.Debug("favorites writes coalesced", zap.Int("count", len(changes)))
	}

	if s.notifier == nil {
		return
	}
	for _, w := range changes {
		if err := s.notifier.FavoritesChanged(ctx, w.change, w.list); err != nil {
			s.logger.Warn("favorites change notification failed", zap.Error(err))
		}
	}
}
