package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-faster/errors"
)

const (
	DriverSQLite    = "sqlite"
	DriverFirestore = "firestore"
	DriverRedis     = "redis"
	DriverMemory    = "memory"
)

// Config is read from the environment; see .env.example.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	PexelsAPIKey  string        `env:"PEXELS_API_KEY,required,notEmpty"`
	PexelsBaseURL string        `env:"PEXELS_BASE_URL" envDefault:"https://api.pexels.com/v1"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`

	StorageDriver       string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath          string `env:"SQLITE_PATH"`
	RedisAddr           string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	FirestoreCollection string `env:"FIRESTORE_COLLECTION" envDefault:"WallcraftStorage"`
	FirestoreSA         string `env:"FIRESTORE_SA"`
	ProjectID           string `env:"PROJECT_ID"`

	GalleryDir    string `env:"GALLERY_DIR"`
	GalleryBucket string `env:"GALLERY_BUCKET"`

	EventsTopic        string `env:"EVENTS_TOPIC"`
	EventsSubscription string `env:"EVENTS_SUBSCRIPTION" envDefault:"favorites-sync-sub"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:8081"`
}

// Load parses the environment and fills path defaults under the user's home.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}

	switch cfg.StorageDriver {
	case DriverSQLite, DriverFirestore, DriverRedis, DriverMemory:
	default:
		return Config{}, errors.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = homePath("wallcraft.db", ".wallcraft", "wallcraft.db")
	}
	if cfg.GalleryDir == "" {
		cfg.GalleryDir = homePath("gallery", "Pictures", "Wallcraft")
	}

	return cfg, nil
}

func homePath(fallback string, elem ...string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(append([]string{homeDir}, elem...)...)
}
