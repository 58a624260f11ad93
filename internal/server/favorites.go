package server

import (
	"net/http"
	"strconv"

	"wallcraft/internal/apperr"
	"wallcraft/internal/model"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	list := s.favorites.List()
	writeJSON(w, http.StatusOK, ListResponse{Data: list, Count: len(list)})
}

func (s *Server) GetFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.wallpaperID(w, r)
	if !ok {
		return
	}

	wp, found := s.favorites.Get(id)
	if !found {
		s.writeError(w, r, apperr.New(apperr.NotFound, "server.GetFavorite", "wallpaper is not a favorite"), nil)
		return
	}
	writeJSON(w, http.StatusOK, wp)
}

func (s *Server) ToggleFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var wp model.Wallpaper
	if err := decodeAndValidate(r, "server.ToggleFavorite", &wp); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	fav := s.favorites.Toggle(wp)
	writeJSON(w, http.StatusOK, ToggleResponse{ID: wp.ID, Favorite: fav, Count: s.favorites.Count()})
}

func (s *Server) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.wallpaperID(w, r)
	if !ok {
		return
	}
	s.favorites.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ClearFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	s.favorites.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) wallpaperID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, r, apperr.New(apperr.Invalid, "server.WallpaperID", "invalid wallpaper id"), nil)
		return 0, false
	}
	return id, true
}
