// Package feed drives one listing screen: the curated feed or a search
// session. A Controller owns the page counter, the accumulated items and the
// loading/refreshing flags, and pulls pages from the catalog on demand.
package feed

import (
	"context"
	"strings"
	"sync"

	"wallcraft/internal/apperr"
	"wallcraft/internal/model"
	"wallcraft/internal/pexels"

	"go.uber.org/zap"
)

type Mode string

const (
	ModeCurated Mode = "curated"
	ModeSearch  Mode = "search"
)

type State string

const (
	StateIdle            State = "idle"
	StateLoadingFirst    State = "loading_first_page"
	StateReady           State = "ready"
	StateLoadingNextPage State = "loading_next_page"
	StateRefreshing      State = "refreshing"
)

// Source fetches one page of a listing.
type Source func(ctx context.Context, page int) ([]model.Wallpaper, error)

func CuratedSource(l pexels.Lister) Source {
	return l.Curated
}

func SearchSource(l pexels.Lister, query string) Source {
	return func(ctx context.Context, page int) ([]model.Wallpaper, error) {
		return l.Search(ctx, query, page)
	}
}

// Snapshot is a copy of a controller's state.
type Snapshot struct {
	Mode       Mode              `json:"mode"`
	Query      string            `json:"query,omitempty"`
	State      State             `json:"state"`
	Page       int               `json:"page"`
	Loading    bool              `json:"loading"`
	Refreshing bool              `json:"refreshing"`
	Items      []model.Wallpaper `json:"items"`
}

type Controller struct {
	lister pexels.Lister
	mode   Mode
	logger *zap.Logger

	mu         sync.Mutex
	source     Source
	query      string
	state      State
	page       int
	items      []model.Wallpaper
	loading    bool
	refreshing bool
	// gen is bumped by Refresh and NewQuery; a response carrying an older
	// generation belongs to a superseded listing and is dropped.
	gen uint64
}

func NewCurated(l pexels.Lister, logger *zap.Logger) *Controller {
	return &Controller{
		lister: l,
		mode:   ModeCurated,
		logger: logger.With(zap.String("feed", string(ModeCurated))),
		source: CuratedSource(l),
		state:  StateIdle,
		page:   1,
		items:  make([]model.Wallpaper, 0),
	}
}

func NewSearch(l pexels.Lister, query string, logger *zap.Logger) *Controller {
	return &Controller{
		lister: l,
		mode:   ModeSearch,
		logger: logger.With(zap.String("feed", string(ModeSearch))),
		source: SearchSource(l, query),
		query:  query,
		state:  StateIdle,
		page:   1,
		items:  make([]model.Wallpaper, 0),
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]model.Wallpaper, len(c.items))
	copy(items, c.items)

	return Snapshot{
		Mode:       c.mode,
		Query:      c.query,
		State:      c.state,
		Page:       c.page,
		Loading:    c.loading,
		Refreshing: c.refreshing,
		Items:      items,
	}
}

// InitialLoad fetches page 1. It only runs from the idle state.
func (c *Controller) InitialLoad(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return
	}
	c.state = StateLoadingFirst
	c.loading = true
	gen, source := c.gen, c.source
	c.mu.Unlock()

	c.loadFirstPage(ctx, gen, source, "initial load")
}

// LoadMore fetches the next page and appends it. It is a no-op while any
// fetch is outstanding, so rapid calls dispatch a single request.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.loading || c.state == StateIdle {
		c.mu.Unlock()
		return
	}
	prev := c.page
	c.page++
	page := c.page
	c.state = StateLoadingNextPage
	c.loading = true
	gen, source := c.gen, c.source
	c.mu.Unlock()

	c.logger.Debug("loading wallpapers", zap.Int("page", page))
	data, err := source(ctx, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.loading = false
	c.state = StateReady

	if err != nil {
		// the failed page is requested again by the next LoadMore
		c.page = prev
		c.logger.Error("error loading wallpapers", zap.Int("page", page), zap.Error(err))
		return
	}

	c.items = append(c.items, data...)
	c.logger.Debug("loaded wallpapers", zap.Int("page", page), zap.Int("count", len(data)))
}

// Refresh refetches page 1 and replaces the items. Callers keep at most one
// refresh in flight; a newer refresh supersedes an older one.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.gen++
	c.page = 1
	c.state = StateRefreshing
	c.loading = true
	c.refreshing = true
	gen, source := c.gen, c.source
	c.mu.Unlock()

	c.loadFirstPage(ctx, gen, source, "refresh")
}

// NewQuery restarts a search feed for query. Blank queries are ignored.
func (c *Controller) NewQuery(ctx context.Context, query string) error {
	if c.mode != ModeSearch {
		return apperr.ErrNotSearchable
	}
	if strings.TrimSpace(query) == "" {
		return nil
	}

	c.mu.Lock()
	c.gen++
	c.query = query
	c.source = SearchSource(c.lister, query)
	c.page = 1
	c.items = make([]model.Wallpaper, 0)
	c.state = StateLoadingFirst
	c.loading = true
	c.refreshing = false
	gen, source := c.gen, c.source
	c.mu.Unlock()

	c.loadFirstPage(ctx, gen, source, "new query")
	return nil
}

// loadFirstPage replaces the items with page 1. A failure leaves an empty
// list; it is logged and not retried.
func (c *Controller) loadFirstPage(ctx context.Context, gen uint64, source Source, reason string) {
	c.logger.Debug("loading wallpapers", zap.Int("page", 1), zap.String("reason", reason))
	data, err := source(ctx, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.loading = false
	c.refreshing = false
	c.state = StateReady

	if err != nil {
		c.items = make([]model.Wallpaper, 0)
		c.logger.Error("error loading wallpapers", zap.String("reason", reason), zap.Error(err))
		return
	}

	items := make([]model.Wallpaper, len(data))
	copy(items, data)
	c.items = items
	c.logger.Debug("loaded wallpapers", zap.Int("page", 1), zap.Int("count", len(data)))
}
