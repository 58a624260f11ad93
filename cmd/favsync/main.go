// Command favsync mirrors favorites change events into Firestore.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"wallcraft/internal/client"
	"wallcraft/internal/config"
	"wallcraft/internal/events"
	kvfirestore "wallcraft/internal/kv/firestore"
	"wallcraft/internal/logger"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := Bootstrap(); err != nil {
		log.Fatal("bootstrap error: ", err)
	}
}

func Bootstrap() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.EventsTopic == "" {
		return errors.New("EVENTS_TOPIC is not set")
	}

	l, err := logger.New("wallcraft-favsync", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	opts, err := client.Credentials(cfg.FirestoreSA)
	if err != nil {
		return err
	}

	app, err := client.Firebase(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return err
	}
	fs, err := app.Firestore(ctx)
	if err != nil {
		return errors.Wrap(err, "firestore client")
	}
	backup := kvfirestore.New(cfg.FirestoreCollection, fs)
	defer backup.Close()

	mirror := events.NewMirror(backup, l)
	err = events.Start(ctx, cfg.ProjectID, cfg.EventsTopic, cfg.EventsSubscription, mirror.Apply, l, opts...)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
