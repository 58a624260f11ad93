package events

import (
	"context"
	"strconv"
	"sync"

	"wallcraft/internal/apperr"
	"wallcraft/internal/favorites"
	"wallcraft/internal/kv"
	"wallcraft/internal/model"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// SeqKey holds the Seq of the last event written by a Mirror.
const SeqKey = favorites.StorageKey + "_seq"

// Mirror copies favorites snapshots into storage. Pub/Sub may redeliver an
// old message after a newer one was acked, so events at or below the last
// applied Seq are acked without being written.
type Mirror struct {
	storage kv.Storage
	logger  *zap.Logger

	mu sync.Mutex
}

func NewMirror(storage kv.Storage, logger *zap.Logger) *Mirror {
	return &Mirror{storage: storage, logger: logger}
}

// Apply satisfies Handler.
func (m *Mirror) Apply(ctx context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	last, err := m.applied(ctx)
	if err != nil {
		return err
	}
	if e.Seq <= last {
		m.logger.Info("skipping stale favorites event",
			zap.String("action", string(e.Action)),
			zap.Int64("seq", e.Seq),
			zap.Int64("applied", last),
		)
		return nil
	}

	if err := m.storage.Set(ctx, favorites.StorageKey, model.EncodeList(e.Favorites)); err != nil {
		return apperr.PersistenceError("events.Mirror", err)
	}
	if err := m.storage.Set(ctx, SeqKey, strconv.AppendInt(nil, e.Seq, 10)); err != nil {
		return apperr.PersistenceError("events.Mirror", err)
	}

	m.logger.Info("favorites mirrored",
		zap.String("action", string(e.Action)),
		zap.Int64("seq", e.Seq),
		zap.Int("count", len(e.Favorites)),
	)
	return nil
}

func (m *Mirror) applied(ctx context.Context) (int64, error) {
	b, err := m.storage.Get(ctx, SeqKey)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperr.PersistenceError("events.Mirror", err)
	}
	seq, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse applied seq")
	}
	return seq, nil
}
