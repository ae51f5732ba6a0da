package Database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DefaultUnsplashURL = "https://api.unsplash.com"
const DefaultIconDir = "icons"

type Configuration struct {
	AccessKey   string
	UnsplashURL string
	IconDir     string

	MatchAspectRatio bool
	SkipFailedImages bool
	DedupeDistance   int
	HTTPTimeout      time.Duration
	LogLevel         log.Level

	RedisHost     string
	RedisPassword string
	RedisDB       int

	MeiliHost string
	MeiliKey  string
}

// DefaultConfiguration returns the settings used when the environment is empty.
func DefaultConfiguration() Configuration {
	return Configuration{
		UnsplashURL: DefaultUnsplashURL,
		IconDir:     DefaultIconDir,
		LogLevel:    log.InfoLevel,
	}
}

// LoadConfiguration reads .env (if any) into the process environment and builds
// the configuration from it.
func LoadConfiguration(envFiles ...string) (Configuration, error) {
	err := godotenv.Load(envFiles...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Configuration{}, fmt.Errorf("loading env file: %w", err)
	}

	return ConfigurationFromLookup(os.LookupEnv)
}

func ConfigurationFromLookup(lookup func(string) (string, bool)) (Configuration, error) {
	cfg := DefaultConfiguration()
	var err error

	if v, ok := lookup("UNSPLASH_ACCESS_KEY"); ok {
		cfg.AccessKey = v
	}
	if v, ok := lookup("UNSPLASH_API_URL"); ok && v != "" {
		cfg.UnsplashURL = v
	}
	if v, ok := lookup("ICON_DIR"); ok && v != "" {
		cfg.IconDir = v
	}

	if v, ok := lookup("MATCH_ASPECT_RATIO"); ok && v != "" {
		if cfg.MatchAspectRatio, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("MATCH_ASPECT_RATIO: %w", err)
		}
	}
	if v, ok := lookup("SKIP_FAILED_IMAGES"); ok && v != "" {
		if cfg.SkipFailedImages, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("SKIP_FAILED_IMAGES: %w", err)
		}
	}
	if v, ok := lookup("DEDUPE_DISTANCE"); ok && v != "" {
		if cfg.DedupeDistance, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("DEDUPE_DISTANCE: %w", err)
		}
		if cfg.DedupeDistance < 0 {
			return cfg, fmt.Errorf("DEDUPE_DISTANCE must not be negative, got %d", cfg.DedupeDistance)
		}
	}
	if v, ok := lookup("HTTP_TIMEOUT"); ok && v != "" {
		if cfg.HTTPTimeout, err = time.ParseDuration(v); err != nil {
			return cfg, fmt.Errorf("HTTP_TIMEOUT: %w", err)
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		if cfg.LogLevel, err = log.ParseLevel(v); err != nil {
			return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	if v, ok := lookup("REDIS_HOST"); ok {
		cfg.RedisHost = v
	}
	if v, ok := lookup("REDIS_PASSWORD"); ok {
		cfg.RedisPassword = v
	}
	if v, ok := lookup("REDIS_DB"); ok && v != "" {
		if cfg.RedisDB, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("REDIS_DB: %w", err)
		}
	}

	if v, ok := lookup("MEILI_HOST"); ok {
		cfg.MeiliHost = v
	}
	if v, ok := lookup("MEILI_KEY"); ok {
		cfg.MeiliKey = v
	}

	if cfg.AccessKey == "" {
		log.Warning("UNSPLASH_ACCESS_KEY is not set, searches will be rejected by Unsplash")
	}

	return cfg, nil
}

func (c Configuration) CacheEnabled() bool {
	return c.RedisHost != ""
}

func (c Configuration) IndexEnabled() bool {
	return c.MeiliHost != ""
}
