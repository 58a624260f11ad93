package server

import (
	"context"
	"net/http"

	"wallcraft/internal/apperr"
	"wallcraft/internal/feed"

	"github.com/go-chi/chi/v5"
)

type openFeedRequest struct {
	Mode  string `json:"mode" validate:"required,oneof=curated search"`
	Query string `json:"query" validate:"required_if=Mode search"`
}

type queryRequest struct {
	Query string `json:"query"`
}

// loadContext keeps request values but not cancellation: a feed is shared
// state, and a client hanging up mid-load must not wipe it for everyone else.
// The Pexels client bounds the load with its own timeout.
func loadContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) OpenFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req openFeedRequest
	if err := decodeAndValidate(r, "server.OpenFeed", &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	id, c, err := s.feeds.Open(feed.Mode(req.Mode), req.Query)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	c.InitialLoad(loadContext(r))

	writeJSON(w, http.StatusCreated, FeedResponse{ID: id, Feed: c.Snapshot()})
}

func (s *Server) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.feed(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, FeedResponse{ID: id, Feed: c.Snapshot()})
}

func (s *Server) LoadMoreHandler(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.feed(w, r)
	if !ok {
		return
	}
	c.LoadMore(loadContext(r))
	writeJSON(w, http.StatusOK, FeedResponse{ID: id, Feed: c.Snapshot()})
}

func (s *Server) RefreshFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.feed(w, r)
	if !ok {
		return
	}
	c.Refresh(loadContext(r))
	writeJSON(w, http.StatusOK, FeedResponse{ID: id, Feed: c.Snapshot()})
}

func (s *Server) NewQueryHandler(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.feed(w, r)
	if !ok {
		return
	}

	var req queryRequest
	if err := decodeAndValidate(r, "server.NewQuery", &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if err := c.NewQuery(loadContext(r), req.Query); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, FeedResponse{ID: id, Feed: c.Snapshot()})
}

func (s *Server) CloseFeedHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.feeds.Close(id) {
		s.writeError(w, r, apperr.New(apperr.NotFound, "server.CloseFeed", "feed not found"), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) feed(w http.ResponseWriter, r *http.Request) (string, *feed.Controller, bool) {
	id := chi.URLParam(r, "id")
	c, ok := s.feeds.Get(id)
	if !ok {
		s.writeError(w, r, apperr.New(apperr.NotFound, "server.Feed", "feed not found"), nil)
		return "", nil, false
	}
	return id, c, true
}
