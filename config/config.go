// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultAddr             = "127.0.0.1:8080"
	defaultLogLevel         = "debug"
	defaultSnapshotInterval = 5 * time.Minute
)

type Config struct {
	Addr           string
	LogLevel       logrus.Level
	AllowedOrigins string

	// DatabaseURL enables the Postgres catalog mirror when set.
	DatabaseURL      string
	SnapshotInterval time.Duration

	R2 R2Config
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	CDNBaseURL      string
}

// Enabled reports whether snapshots can be uploaded to the bucket.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.AccessKeyID != "" && r.AccessKeySecret != "" && r.Bucket != ""
}

// Endpoint is the S3 compatible endpoint of the account.
func (r R2Config) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.AccountID)
}

// PublicBaseURL prefers the CDN and falls back to the account endpoint.
func (r R2Config) PublicBaseURL() string {
	if r.CDNBaseURL != "" {
		return strings.TrimRight(r.CDNBaseURL, "/")
	}
	return r.Endpoint()
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Addr:             valueOr(getenv("LISTEN_ADDR"), defaultAddr),
		AllowedOrigins:   parseOrigins(getenv("ALLOWED_ORIGINS")),
		DatabaseURL:      getenv("DATABASE_URL"),
		SnapshotInterval: defaultSnapshotInterval,
		R2: R2Config{
			AccountID:       getenv("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
			AccessKeySecret: getenv("R2_ACCESS_KEY_SECRET"),
			Bucket:          getenv("R2_BUCKET_NAME"),
			CDNBaseURL:      getenv("CDN_BASE_URL"),
		},
	}

	level, err := logrus.ParseLevel(valueOr(getenv("LOG_LEVEL"), defaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if raw := getenv("SNAPSHOT_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SNAPSHOT_INTERVAL: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid SNAPSHOT_INTERVAL %q: must be positive", raw)
		}
		cfg.SnapshotInterval = d
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// parseOrigins trims a comma separated origin list; empty means any origin.
func parseOrigins(raw string) string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
