package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"wallcraft/internal/client"
	"wallcraft/internal/config"
	"wallcraft/internal/events"
	"wallcraft/internal/favorites"
	"wallcraft/internal/feed"
	"wallcraft/internal/gallery"
	"wallcraft/internal/kv"
	kvfirestore "wallcraft/internal/kv/firestore"
	"wallcraft/internal/kv/memory"
	kvredis "wallcraft/internal/kv/redis"
	"wallcraft/internal/kv/sqlite"
	"wallcraft/internal/logger"
	"wallcraft/internal/pexels"
	"wallcraft/internal/server"
	"wallcraft/internal/share"

	"cloud.google.com/go/pubsub"
	firebase "firebase.google.com/go"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func Bootstrap() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New("wallcraft", cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "logger")
	}
	defer func() { _ = log.Sync() }()

	opts, err := client.Credentials(cfg.FirestoreSA)
	if err != nil {
		return err
	}
	app := sync.OnceValues(func() (*firebase.App, error) {
		return client.Firebase(ctx, cfg.ProjectID, opts...)
	})

	storage, err := OpenStorage(ctx, cfg, app)
	if err != nil {
		return err
	}
	defer storage.Close()

	var favOpts []favorites.Option
	if cfg.EventsTopic != "" {
		psClient, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
		if err != nil {
			return errors.Wrap(err, "pubsub client")
		}
		defer psClient.Close()

		pub, err := events.NewPublisher(ctx, psClient, cfg.EventsTopic, log)
		if err != nil {
			return err
		}
		defer pub.Stop()
		favOpts = append(favOpts, favorites.WithNotifier(pub))
	}

	favs := favorites.New(ctx, storage, log, favOpts...)
	defer favs.Close()

	lib, perms, err := openGallery(ctx, cfg, app)
	if err != nil {
		return err
	}

	catalog := pexels.New(cfg.PexelsBaseURL, cfg.PexelsAPIKey, &http.Client{Timeout: cfg.HTTPTimeout})

	srv := server.New(cfg.Port, server.Deps{
		Feeds:     feed.NewRegistry(catalog, log),
		Favorites: favs,
		// image downloads are bounded by the request context only
		Downloader:     gallery.NewDownloader(&http.Client{}, lib, perms, log),
		Sharer:         share.LogSharer{Logger: log},
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	errs := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-exit:
		log.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// OpenStorage returns the kv backend named by STORAGE_DRIVER.
func OpenStorage(ctx context.Context, cfg config.Config, app func() (*firebase.App, error)) (kv.Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverRedis:
		s, err := kvredis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverFirestore:
		a, err := app()
		if err != nil {
			return nil, err
		}
		fs, err := a.Firestore(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "firestore client")
		}
		return kvfirestore.New(cfg.FirestoreCollection, fs), nil
	default:
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func openGallery(ctx context.Context, cfg config.Config, app func() (*firebase.App, error)) (gallery.MediaLibrary, gallery.Permissions, error) {
	if cfg.GalleryBucket == "" {
		lib := gallery.NewDirLibrary(cfg.GalleryDir)
		return lib, lib, nil
	}

	a, err := app()
	if err != nil {
		return nil, nil, err
	}
	storageClient, err := a.Storage(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "storage client")
	}
	bucket, err := storageClient.Bucket(cfg.GalleryBucket)
	if err != nil {
		return nil, nil, errors.Wrap(err, "bucket")
	}

	lib := gallery.NewBucketLibrary(bucket, cfg.GalleryBucket, "wallpapers")
	return lib, lib, nil
}
