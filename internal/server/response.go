package server

import (
	"encoding/json"
	"net/http"

	"wallcraft/internal/apperr"
	"wallcraft/internal/feed"
	"wallcraft/internal/gallery"
	"wallcraft/internal/logger"
	"wallcraft/internal/model"
	"wallcraft/internal/share"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

type ListResponse struct {
	Data  []model.Wallpaper `json:"data"`
	Count int               `json:"count"`
}

type FeedResponse struct {
	ID   string        `json:"id"`
	Feed feed.Snapshot `json:"feed"`
}

type ToggleResponse struct {
	ID       int64 `json:"id"`
	Favorite bool  `json:"favorite"`
	Count    int   `json:"count"`
}

type DownloadResponse struct {
	Notice gallery.Notice `json:"notice"`
	Saved  *gallery.Saved `json:"saved,omitempty"`
}

type ShareResponse struct {
	Payload share.Payload   `json:"payload"`
	Notice  *gallery.Notice `json:"notice,omitempty"`
}

type ErrorResponse struct {
	Error  ErrorBody       `json:"error"`
	Notice *gallery.Notice `json:"notice,omitempty"`
}

type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the status for err's kind. Only unclassified
// failures are logged here; the components log their own.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notice *gallery.Notice) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context(), s.logger).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	msg := err.Error()
	var e *apperr.Error
	if errors.As(err, &e) && e.Text() != "" {
		msg = e.Text()
	}

	writeJSON(w, status, ErrorResponse{
		Error:  ErrorBody{Kind: apperr.KindOf(err).String(), Message: msg},
		Notice: notice,
	})
}
