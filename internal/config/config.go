package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CloudinaryConfig targets the hosted image CDN used for cover uploads.
type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	BaseURL      string
}

// ObjectStoreConfig targets an S3-compatible bucket used as an alternative
// cover upload backend.
type ObjectStoreConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// Config captures the runtime configuration for the bb client.
type Config struct {
	APIBaseURL      string
	HTTPTimeout     time.Duration
	LogLevel        string
	CredentialsPath string
	CredentialsKey  string

	// Client-side throttle for API calls. Zero disables it.
	RequestsPerMinute int
	RequestBurst      int

	UploadBackend string // "cloudinary" or "s3"
	Cloudinary    CloudinaryConfig
	ObjectStore   ObjectStoreConfig
}

// Load reads configuration from the environment, applying sensible defaults
// for local development while allowing overrides through environment variables.
// A .env file in the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:        getString("BB_API_BASE_URL", "http://localhost:8000"),
		HTTPTimeout:       getDuration("BB_HTTP_TIMEOUT", 15*time.Second),
		LogLevel:          getString("BB_LOG_LEVEL", "info"),
		CredentialsPath:   getString("BB_CREDENTIALS_PATH", defaultCredentialsPath()),
		CredentialsKey:    getString("BB_CREDENTIALS_KEY", ""),
		RequestsPerMinute: getInt("BB_REQUESTS_PER_MINUTE", 0),
		RequestBurst:      getInt("BB_REQUEST_BURST", 5),
		UploadBackend:     getString("BB_UPLOAD_BACKEND", "cloudinary"),
		Cloudinary: CloudinaryConfig{
			CloudName:    getString("BB_CLOUDINARY_CLOUD_NAME", ""),
			UploadPreset: getString("BB_CLOUDINARY_UPLOAD_PRESET", ""),
			BaseURL:      getString("BB_CLOUDINARY_BASE_URL", "https://api.cloudinary.com"),
		},
		ObjectStore: ObjectStoreConfig{
			Bucket:        getString("BB_S3_BUCKET", ""),
			Region:        getString("BB_S3_REGION", "us-east-1"),
			Endpoint:      getString("BB_S3_ENDPOINT", ""),
			PublicBaseURL: getString("BB_S3_PUBLIC_BASE_URL", ""),
		},
	}

	switch cfg.UploadBackend {
	case "cloudinary", "s3":
	default:
		return Config{}, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}

	return cfg, nil
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".bb-credentials.json")
	}
	return filepath.Join(dir, "bb", "credentials.json")
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// SlogLevel maps the configured log level onto slog's leveler values.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
