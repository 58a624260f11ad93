// Package gallery saves a wallpaper's full-resolution image into the user's
// media library.
package gallery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"wallcraft/internal/apperr"
	"wallcraft/internal/model"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	op                  = "gallery.Download"
	instrumentationName = "wallcraft/internal/gallery"
)

// Notice is the title and message shown to the user after a download attempt.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

var (
	NoticeSaved            = Notice{Title: "Success!", Message: "Wallpaper saved to your gallery in HD quality!"}
	NoticePermissionDenied = Notice{Title: "Permission Denied", Message: "We need permission to save images to your gallery."}
	NoticeFailed           = Notice{Title: "Download Failed", Message: "Could not download the wallpaper. Please try again."}
)

// ErrInProgress is returned while the same wallpaper is already downloading.
var ErrInProgress = apperr.New(apperr.Invalid, op, "download already in progress")

// NoticeFor picks the notice for the outcome of Download.
func NoticeFor(err error) Notice {
	switch {
	case err == nil:
		return NoticeSaved
	case apperr.KindOf(err) == apperr.PermissionDenied:
		return NoticePermissionDenied
	default:
		return NoticeFailed
	}
}

// Permissions grants or refuses write access to the media library.
type Permissions interface {
	Request(ctx context.Context) (bool, error)
}

// MediaLibrary stores an image under name and returns where it ended up.
type MediaLibrary interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// Saved describes a completed download.
type Saved struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Source   string `json:"source"`
}

type Downloader struct {
	HC          *http.Client
	Library     MediaLibrary
	Permissions Permissions
	Logger      *zap.Logger

	// now is swapped in tests.
	now func() time.Time

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewDownloader(hc *http.Client, lib MediaLibrary, perms Permissions, logger *zap.Logger) *Downloader {
	return &Downloader{
		HC:          hc,
		Library:     lib,
		Permissions: perms,
		Logger:      logger,
		now:         time.Now,
		inFlight:    make(map[int64]struct{}),
	}
}

// FileName is the gallery file name for a download started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("wallcraft_%d.jpg", t.UnixMilli())
}

// Download asks for permission, fetches the best available rendition of w
// and inserts it into the library. There is no retry.
func (d *Downloader) Download(ctx context.Context, w model.Wallpaper) (Saved, error) {
	if !d.begin(w.ID) {
		return Saved{}, ErrInProgress
	}
	defer d.end(w.ID)

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, op, trace.WithAttributes(
		attribute.Int64("wallpaper.id", w.ID),
	))
	defer span.End()

	saved, err := d.download(ctx, w)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		d.Logger.Error("download failed", zap.Int64("id", w.ID), zap.Error(err))
		return Saved{}, err
	}

	d.Logger.Info("wallpaper saved",
		zap.Int64("id", w.ID),
		zap.String("name", saved.Name),
		zap.String("location", saved.Location),
	)
	return saved, nil
}

func (d *Downloader) download(ctx context.Context, w model.Wallpaper) (Saved, error) {
	granted, err := d.Permissions.Request(ctx)
	if err != nil {
		return Saved{}, apperr.DownloadError(op, errors.Wrap(err, "request permission"))
	}
	if !granted {
		return Saved{}, apperr.PermissionDeniedError(op, NoticePermissionDenied.Message)
	}

	src := w.Src.Best()
	if src == "" {
		return Saved{}, apperr.DownloadError(op, errors.Errorf("wallpaper %d has no image source", w.ID))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return Saved{}, apperr.DownloadError(op, errors.Wrap(err, "build request"))
	}

	hc := d.HC
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return Saved{}, apperr.DownloadError(op, errors.Wrap(err, "fetch image"))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Saved{}, apperr.DownloadError(op, errors.Errorf("fetch image: %s", resp.Status))
	}

	now := d.now
	if now == nil {
		now = time.Now
	}
	name := FileName(now())

	loc, err := d.Library.Save(ctx, name, resp.Body)
	if err != nil {
		return Saved{}, apperr.DownloadError(op, errors.Wrap(err, "save to library"))
	}

	return Saved{Name: name, Location: loc, Source: src}, nil
}

func (d *Downloader) begin(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight == nil {
		d.inFlight = make(map[int64]struct{})
	}
	if _, ok := d.inFlight[id]; ok {
		return false
	}
	d.inFlight[id] = struct{}{}
	return true
}

func (d *Downloader) end(id int64) {
	d.mu.Lock()
	delete(d.inFlight, id)
	d.mu.Unlock()
}
