package feed

import (
	"sync"

	"wallcraft/internal/apperr"
	"wallcraft/internal/pexels"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry holds the controllers of the screens currently open. Closing a
// screen only forgets its controller; a fetch still in flight completes into
// the orphaned controller and nobody observes it.
type Registry struct {
	lister pexels.Lister
	logger *zap.Logger

	mu    sync.RWMutex
	feeds map[string]*Controller
}

func NewRegistry(l pexels.Lister, logger *zap.Logger) *Registry {
	return &Registry{
		lister: l,
		logger: logger,
		feeds:  make(map[string]*Controller),
	}
}

// Open creates a controller for mode and returns its id.
func (r *Registry) Open(mode Mode, query string) (string, *Controller, error) {
	var c *Controller
	switch mode {
	case ModeCurated:
		c = NewCurated(r.lister, r.logger)
	case ModeSearch:
		c = NewSearch(r.lister, query, r.logger)
	default:
		return "", nil, apperr.New(apperr.Invalid, "feed.Open", "unknown feed mode "+string(mode))
	}

	id := uuid.NewString()
	c.logger = c.logger.With(zap.String("feed_id", id))

	r.mu.Lock()
	r.feeds[id] = c
	r.mu.Unlock()

	return id, c, nil
}

func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.feeds[id]
	return c, ok
}

// Close forgets the controller; it reports whether id was open.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.feeds[id]; !ok {
		return false
	}
	delete(r.feeds, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.feeds)
}
