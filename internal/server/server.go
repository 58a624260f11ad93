package server

import (
	"context"
	"net/http"
	"time"

	"wallcraft/internal/feed"
	"wallcraft/internal/gallery"
	"wallcraft/internal/model"
	"wallcraft/internal/share"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	rscors "github.com/rs/cors"
	"go.uber.org/zap"
)

const serviceName = "wallcraft"

// Favorites is the favorites store as seen by the handlers.
type Favorites interface {
	List() []model.Wallpaper
	Count() int
	Get(id int64) (model.Wallpaper, bool)
	Toggle(w model.Wallpaper) bool
	Remove(id int64)
	Clear()
}

type Downloader interface {
	Download(ctx context.Context, w model.Wallpaper) (gallery.Saved, error)
}

type Deps struct {
	Feeds          *feed.Registry
	Favorites      Favorites
	Downloader     Downloader
	Sharer         share.Sharer
	Logger         *zap.Logger
	AllowedOrigins []string
}

type Server struct {
	*http.Server
	feeds      *feed.Registry
	favorites  Favorites
	downloader Downloader
	sharer     share.Sharer
	logger     *zap.Logger
}

func New(port string, d Deps) Server {
	s := Server{
		feeds:      d.Feeds,
		favorites:  d.Favorites,
		downloader: d.Downloader,
		sharer:     d.Sharer,
		logger:     d.Logger,
	}

	cors := rscors.New(rscors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
		Debug:            false,
	})

	r := chi.NewRouter()
	r.Use(Recovery(d.Logger))
	r.Use(RequestLogger(d.Logger))
	r.Use(Metrics(serviceName))
	r.Use(cors.Handler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(""))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/categories", s.ListCategoriesHandler)

	r.Route("/feeds", func(r chi.Router) {
		r.Post("/", s.OpenFeedHandler)
		r.Route("/{id}", func(r chi.Router) {
			r.With(ETag).Get("/", s.GetFeedHandler)
			r.Post("/more", s.LoadMoreHandler)
			r.Post("/refresh", s.RefreshFeedHandler)
			r.Post("/query", s.NewQueryHandler)
			r.Delete("/", s.CloseFeedHandler)
		})
	})

	r.Route("/favorites", func(r chi.Router) {
		r.With(ETag).Get("/", s.ListFavoritesHandler)
		r.Delete("/", s.ClearFavoritesHandler)
		r.Post("/toggle", s.ToggleFavoriteHandler)
		r.Get("/{id}", s.GetFavoriteHandler)
		r.Delete("/{id}", s.RemoveFavoriteHandler)
	})

	r.Route("/wallpapers", func(r chi.Router) {
		r.Post("/download", s.DownloadHandler)
		r.Post("/share", s.ShareHandler)
	})

	s.Server = &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}
