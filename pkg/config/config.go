package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis     RedisConfig
	Cache     CacheConfig
	CORS      CORSConfig
	Log       LogConfig
	SearchAPI SearchAPIConfig
	Map       MapConfig
	Sessions  SessionConfig
	Workers   WorkerConfig
	Exports   ExportConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig governs caching of upstream search responses.
type CacheConfig struct {
	Enabled      bool
	SearchTTL    time.Duration
	ProvidersTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SearchAPIConfig points at the upstream search/providers API.
type SearchAPIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	Backoff    time.Duration
	MaxBackoff time.Duration
	UserAgent  string
}

// MapConfig holds the initial camera and marker focus behaviour.
type MapConfig struct {
	DefaultLat     float64
	DefaultLng     float64
	DefaultZoom    float64
	FocusZoom      float64
	ViewportWidth  int
	ViewportHeight int
}

// SessionConfig controls the lifetime of client sessions.
type SessionConfig struct {
	IdleTTL         time.Duration
	CleanupInterval time.Duration
	MaxSessions     int
	DisplayTimezone string
}

// WorkerConfig sizes the asynchronous search queue.
type WorkerConfig struct {
	SearchConcurrency int
	SearchBuffer      int
	SearchRetries     int
}

// ExportConfig controls shareable export downloads.
type ExportConfig struct {
	Dir        string
	LinkSecret string
	LinkTTL    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled:      v.GetBool("ENABLE_CACHE"),
		SearchTTL:    parseDuration(v.GetString("SEARCH_CACHE_TTL"), time.Minute),
		ProvidersTTL: parseDuration(v.GetString("PROVIDERS_CACHE_TTL"), 30*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.SearchAPI = SearchAPIConfig{
		BaseURL:    strings.TrimRight(v.GetString("SEARCH_API_BASE_URL"), "/"),
		Timeout:    parseDuration(v.GetString("SEARCH_API_TIMEOUT"), 10*time.Second),
		Retries:    v.GetInt("SEARCH_API_RETRIES"),
		Backoff:    parseDuration(v.GetString("SEARCH_API_BACKOFF"), 250*time.Millisecond),
		MaxBackoff: parseDuration(v.GetString("SEARCH_API_MAX_BACKOFF"), 2*time.Second),
		UserAgent:  v.GetString("SEARCH_API_USER_AGENT"),
	}

	cfg.Map = MapConfig{
		DefaultLat:     v.GetFloat64("MAP_DEFAULT_LAT"),
		DefaultLng:     v.GetFloat64("MAP_DEFAULT_LNG"),
		DefaultZoom:    v.GetFloat64("MAP_DEFAULT_ZOOM"),
		FocusZoom:      v.GetFloat64("MAP_FOCUS_ZOOM"),
		ViewportWidth:  v.GetInt("MAP_VIEWPORT_WIDTH"),
		ViewportHeight: v.GetInt("MAP_VIEWPORT_HEIGHT"),
	}

	cfg.Sessions = SessionConfig{
		IdleTTL:         parseDuration(v.GetString("SESSION_IDLE_TTL"), 2*time.Hour),
		CleanupInterval: parseDuration(v.GetString("SESSION_CLEANUP_INTERVAL"), 5*time.Minute),
		MaxSessions:     v.GetInt("SESSION_MAX"),
		DisplayTimezone: v.GetString("DISPLAY_TIMEZONE"),
	}

	cfg.Workers = WorkerConfig{
		SearchConcurrency: v.GetInt("SEARCH_WORKER_CONCURRENCY"),
		SearchBuffer:      v.GetInt("SEARCH_WORKER_BUFFER"),
		SearchRetries:     v.GetInt("SEARCH_WORKER_RETRIES"),
	}

	cfg.Exports = ExportConfig{
		Dir:        v.GetString("EXPORT_DIR"),
		LinkSecret: v.GetString("EXPORT_LINK_SECRET"),
		LinkTTL:    parseDuration(v.GetString("EXPORT_LINK_TTL"), time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8081)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("SEARCH_CACHE_TTL", "1m")
	v.SetDefault("PROVIDERS_CACHE_TTL", "30m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SEARCH_API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("SEARCH_API_TIMEOUT", "10s")
	v.SetDefault("SEARCH_API_RETRIES", 3)
	v.SetDefault("SEARCH_API_BACKOFF", "250ms")
	v.SetDefault("SEARCH_API_MAX_BACKOFF", "2s")
	v.SetDefault("SEARCH_API_USER_AGENT", "wazai-maps/0.1")

	// Taipei 101
	v.SetDefault("MAP_DEFAULT_LAT", 25.0330)
	v.SetDefault("MAP_DEFAULT_LNG", 121.5654)
	v.SetDefault("MAP_DEFAULT_ZOOM", 9)
	v.SetDefault("MAP_FOCUS_ZOOM", 15)
	v.SetDefault("MAP_VIEWPORT_WIDTH", 1280)
	v.SetDefault("MAP_VIEWPORT_HEIGHT", 800)

	v.SetDefault("SESSION_IDLE_TTL", "2h")
	v.SetDefault("SESSION_CLEANUP_INTERVAL", "5m")
	v.SetDefault("SESSION_MAX", 1000)
	v.SetDefault("DISPLAY_TIMEZONE", "Asia/Taipei")

	v.SetDefault("SEARCH_WORKER_CONCURRENCY", 4)
	v.SetDefault("SEARCH_WORKER_BUFFER", 64)
	v.SetDefault("SEARCH_WORKER_RETRIES", 1)

	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("EXPORT_LINK_SECRET", "")
	v.SetDefault("EXPORT_LINK_TTL", "1h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// viper reports a missing explicit config file as a plain fs error.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
