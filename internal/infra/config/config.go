package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Weather    WeatherConfig    `yaml:"weather"`
	Photos     PhotosConfig     `yaml:"photos"`
	ImageGen   ImageGenConfig   `yaml:"imageGen"`
	Transcript TranscriptConfig `yaml:"transcript"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	CORS         CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CORSConfig controls browser cross-origin access.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// WeatherConfig contains OpenWeather settings.
type WeatherConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
}

// PhotosConfig contains Unsplash settings and the URL cache.
type PhotosConfig struct {
	AccessKey string        `yaml:"accessKey"`
	BaseURL   string        `yaml:"baseUrl"`
	CacheTTL  time.Duration `yaml:"cacheTtl"`
	Valkey    ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// ImageGenConfig contains image generation API and polling settings.
type ImageGenConfig struct {
	APIKey       string        `yaml:"apiKey"`
	BaseURL      string        `yaml:"baseUrl"`
	PollInterval time.Duration `yaml:"pollInterval"`
	MaxAttempts  int           `yaml:"maxAttempts"`
	Archive      ArchiveConfig `yaml:"archive"`
}

// ArchiveConfig contains object storage settings for generated images.
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// TranscriptConfig controls conversation persistence.
type TranscriptConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("UNSPLASH_ACCESS_KEY"); v != "" {
		cfg.Photos.AccessKey = v
	}
	if v := os.Getenv("UNSPLASH_BASE_URL"); v != "" {
		cfg.Photos.BaseURL = v
	}
	if v := os.Getenv("PHOTO_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Photos.CacheTTL = parsed
		}
	}
	if v := os.Getenv("PHOTO_VALKEY_ENABLED"); v != "" {
		cfg.Photos.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("PHOTO_VALKEY_ADDR"); v != "" {
		cfg.Photos.Valkey.Addr = v
	}
	if v := os.Getenv("KIE_AI_API_KEY"); v != "" {
		cfg.ImageGen.APIKey = v
	}
	if v := os.Getenv("KIE_AI_BASE_URL"); v != "" {
		cfg.ImageGen.BaseURL = v
	}
	if v := os.Getenv("IMAGE_GEN_POLL_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.ImageGen.PollInterval = parsed
		}
	}
	if v := os.Getenv("IMAGE_GEN_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.ImageGen.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("IMAGE_ARCHIVE_ENABLED"); v != "" {
		cfg.ImageGen.Archive.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("IMAGE_ARCHIVE_ENDPOINT"); v != "" {
		cfg.ImageGen.Archive.Endpoint = v
	}
	if v := os.Getenv("IMAGE_ARCHIVE_ACCESS_KEY"); v != "" {
		cfg.ImageGen.Archive.AccessKey = v
	}
	if v := os.Getenv("IMAGE_ARCHIVE_SECRET_KEY"); v != "" {
		cfg.ImageGen.Archive.SecretKey = v
	}
	if v := os.Getenv("IMAGE_ARCHIVE_BUCKET"); v != "" {
		cfg.ImageGen.Archive.Bucket = v
	}
	if v := os.Getenv("IMAGE_ARCHIVE_REGION"); v != "" {
		cfg.ImageGen.Archive.Region = v
	}
	if v := os.Getenv("TRANSCRIPT_POSTGRES_DSN"); v != "" {
		cfg.Transcript.Postgres.DSN = v
	}
	if v := os.Getenv("TRANSCRIPT_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Transcript.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("TRANSCRIPT_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Transcript.Postgres.MinConns = int32(parsed)
		}
	}
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
			},
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5/weather",
		},
		Photos: PhotosConfig{
			BaseURL:  "https://api.unsplash.com",
			CacheTTL: 6 * time.Hour,
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
			},
		},
		ImageGen: ImageGenConfig{
			BaseURL:      "https://api.kie.ai",
			PollInterval: 5 * time.Second,
			MaxAttempts:  120,
		},
		Transcript: TranscriptConfig{
			Postgres: PostgresConfig{
				DSN:      "",
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Weather.BaseURL == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if c.Photos.BaseURL == "" {
		return errors.New("photos.baseUrl cannot be empty")
	}
	if c.Photos.CacheTTL < 0 {
		return errors.New("photos.cacheTtl cannot be negative")
	}
	if c.Photos.Valkey.Enabled && strings.TrimSpace(c.Photos.Valkey.Addr) == "" {
		return errors.New("photos.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if c.ImageGen.BaseURL == "" {
		return errors.New("imageGen.baseUrl cannot be empty")
	}
	if c.ImageGen.PollInterval <= 0 {
		return errors.New("imageGen.pollInterval must be positive")
	}
	if c.ImageGen.MaxAttempts <= 0 {
		return errors.New("imageGen.maxAttempts must be positive")
	}
	if c.ImageGen.Archive.Enabled {
		if strings.TrimSpace(c.ImageGen.Archive.Endpoint) == "" {
			return errors.New("imageGen.archive.endpoint cannot be empty when archiving is enabled")
		}
		if strings.TrimSpace(c.ImageGen.Archive.Bucket) == "" {
			return errors.New("imageGen.archive.bucket cannot be empty when archiving is enabled")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
