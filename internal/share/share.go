// Package share builds the payload handed to the platform share sheet.
package share

import (
	"context"
	"fmt"

	"wallcraft/internal/apperr"
	"wallcraft/internal/gallery"
	"wallcraft/internal/model"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const Title = "Share Wallpaper"

// NoticeFailed is shown when the share sheet could not be presented.
var NoticeFailed = gallery.Notice{Title: "Share Failed", Message: "Could not share the wallpaper. Please try again."}

type Payload struct {
	Message string `json:"message"`
	URL     string `json:"url"`
	Title   string `json:"title"`
}

func Build(w model.Wallpaper) Payload {
	return Payload{
		Message: fmt.Sprintf("Check out this amazing wallpaper by %s! %s", w.Photographer, w.URL),
		URL:     w.URL,
		Title:   Title,
	}
}

// Sharer hands a payload to whatever presents it. Errors are logged by the
// caller and answered with NoticeFailed.
type Sharer interface {
	Share(ctx context.Context, p Payload) error
}

// LogSharer records shares; the payload itself goes back to the client.
type LogSharer struct {
	Logger *zap.Logger
}

func (s LogSharer) Share(ctx context.Context, p Payload) error {
	if p.URL == "" {
		return apperr.ShareError("share.Share", errors.New("nothing to share"))
	}
	s.Logger.Info("wallpaper shared", zap.String("url", p.URL))
	return nil
}
