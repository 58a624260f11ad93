package server

import (
	"net/http"

	"wallcraft/internal/gallery"
	"wallcraft/internal/logger"
	"wallcraft/internal/model"
	"wallcraft/internal/share"

	"go.uber.org/zap"
)

func (s *Server) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	var wp model.Wallpaper
	if err := decodeAndValidate(r, "server.Download", &wp); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	saved, err := s.downloader.Download(r.Context(), wp)
	if err != nil {
		notice := gallery.NoticeFor(err)
		s.writeError(w, r, err, &notice)
		return
	}

	writeJSON(w, http.StatusOK, DownloadResponse{Notice: gallery.NoticeFor(nil), Saved: &saved})
}

// ShareHandler returns the payload for the client's share sheet. A failing
// sharer still answers 200 with the payload, plus a notice for the user.
func (s *Server) ShareHandler(w http.ResponseWriter, r *http.Request) {
	var wp model.Wallpaper
	if err := decodeAndValidate(r, "server.Share", &wp); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	res := ShareResponse{Payload: share.Build(wp)}
	if err := s.sharer.Share(r.Context(), res.Payload); err != nil {
		logger.FromContext(r.Context(), s.logger).Error("share error", zap.Int64("id", wp.ID), zap.Error(err))
		notice := share.NoticeFailed
		res.Notice = &notice
	}

	writeJSON(w, http.StatusOK, res)
}
